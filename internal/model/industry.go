package model

type Industry struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Ctime int64  `json:"ctime"`
	Mtime int64  `json:"mtime"`
}

// IndustrySolution links a solution to an industry it is sold into. The pair
// is the primary key.
type IndustrySolution struct {
	IndustryID int64 `json:"industry_id"`
	SolutionID int64 `json:"solution_id"`
	Ctime      int64 `json:"ctime"`
}
