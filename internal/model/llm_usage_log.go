package model

type LLMUsageLog struct {
	ID               int64   `json:"id"`
	WorkflowName     string  `json:"workflow_name"`
	NodeName         string  `json:"node_name"`
	Model            string  `json:"model"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	TotalTokens      int64   `json:"total_tokens"`
	LatencyMs        int64   `json:"latency_ms"`
	Cost             float64 `json:"cost"`
	Ctime            int64   `json:"ctime"`
}
