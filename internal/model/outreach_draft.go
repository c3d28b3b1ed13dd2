package model

const (
	DraftStatusPending  = "pending"
	DraftStatusApproved = "approved"
	DraftStatusSent     = "sent"
	DraftStatusRejected = "rejected"
)

type OutreachDraft struct {
	ID         int64  `json:"id"`
	ProspectID int64  `json:"prospect_id"`
	EventID    int64  `json:"event_id"`
	DraftType  string `json:"draft_type"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	Ctime      int64  `json:"ctime"`
	Mtime      int64  `json:"mtime"`
}
