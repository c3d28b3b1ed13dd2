package model

// Collection selects which vector table a search runs against.
type Collection string

const (
	CollectionSolutions    Collection = "solution_vectors"
	CollectionInteractions Collection = "interaction_vectors"
)

// SolutionVector is one embedded chunk of a solution's name+description text.
// A solution owns zero or more vector rows.
type SolutionVector struct {
	ID         int64     `json:"id"`
	SolutionID int64     `json:"solution_id"`
	Embedding  []float32 `json:"embedding"`
}

// InteractionVector is one embedded chunk of an interaction's subject+content.
type InteractionVector struct {
	ID            int64     `json:"id"`
	InteractionID int64     `json:"interaction_id"`
	Embedding     []float32 `json:"embedding"`
}

// SearchResult is a ranked match from a similarity search, ordered by
// ascending cosine distance.
type SearchResult struct {
	VectorID int64   `json:"id"`
	ParentID int64   `json:"parent_id"`
	Distance float64 `json:"distance"`
}
