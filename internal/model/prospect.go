package model

const (
	ProspectStatusNew        = "new"
	ProspectStatusResearched = "researched"
	ProspectStatusContacted  = "contacted"
	ProspectStatusEngaged    = "engaged"
	ProspectStatusQualified  = "qualified"
	ProspectStatusInactive   = "inactive"
)

type Prospect struct {
	ID              int64  `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	LinkedinURL     string `json:"linkedin_url"`
	Location        string `json:"location"`
	CompanyID       int64  `json:"company_id"`
	LastContactedAt int64  `json:"last_contacted_at"`
	IsActive        bool   `json:"is_active"`
	Status          string `json:"status"`
	Ctime           int64  `json:"ctime"`
	Mtime           int64  `json:"mtime"`
}
