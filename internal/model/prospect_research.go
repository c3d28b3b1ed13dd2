package model

type ProspectResearch struct {
	ID                   int64    `json:"id"`
	ProspectID           int64    `json:"prospect_id"`
	ResearchSummary      string   `json:"research_summary"`
	KeyInsights          []string `json:"key_insights"`
	RecommendedSolutions []string `json:"recommended_solutions"`
	ConfidenceScore      float64  `json:"confidence_score"`
	Ctime                int64    `json:"ctime"`
	Mtime                int64    `json:"mtime"`
}
