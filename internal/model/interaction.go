package model

const (
	InteractionTypeEmail    = "email"
	InteractionTypeMeeting  = "meeting"
	InteractionTypeCall     = "call"
	InteractionTypeEvent    = "event"
	InteractionTypeLinkedin = "linkedin"
)

type Interaction struct {
	ID              int64  `json:"id"`
	ProspectID      int64  `json:"prospect_id"`
	EventID         int64  `json:"event_id"`
	InteractionType string `json:"interaction_type"`
	InteractionDate int64  `json:"interaction_date"`
	Subject         string `json:"subject"`
	Content         string `json:"content"`
	Sentiment       string `json:"sentiment"`
	Outcome         string `json:"outcome"`
	Ctime           int64  `json:"ctime"`
	Mtime           int64  `json:"mtime"`
}
