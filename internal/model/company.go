package model

type Company struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IndustryID int64  `json:"industry_id"`
	Size       string `json:"size"`
	Website    string `json:"website"`
	Ctime      int64  `json:"ctime"`
	Mtime      int64  `json:"mtime"`
}
