package model

type Event struct {
	ID                int64    `json:"id"`
	EventType         string   `json:"event_type"`
	EventDate         int64    `json:"event_date"`
	Description       string   `json:"description"`
	Location          string   `json:"location"`
	TargetIndustries  []string `json:"target_industries"`
	TargetRoles       []string `json:"target_roles"`
	SolutionsFeatured []string `json:"solutions_featured"`
	Status            string   `json:"status"`
	Ctime             int64    `json:"ctime"`
	Mtime             int64    `json:"mtime"`
}
