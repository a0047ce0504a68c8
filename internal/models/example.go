package models

// EmbeddingDim is the dimensionality of example embeddings (pgvector column).
const EmbeddingDim = 1536

// Example is a labeled historical complaint used for nearest-neighbor
// voting and few-shot prompting.
type Example struct {
	ID         int       `db:"id"`
	CategoryID string    `db:"category_id"`
	Text       string    `db:"text"`
	IsUrgent   bool      `db:"is_urgent"`
	Embedding  []float32 `db:"embedding"`
}

// ScoredExample is an example paired with its cosine distance to a query,
// as returned by nearest-neighbor search (nearest first).
type ScoredExample struct {
	Example
	Distance float64
}

// ExampleFilter restricts the nearest-neighbor candidate set to an
// inclusive id range. The historical dataset contains stretches of
// unreviewed labels; the trusted range is a data limitation, not a
// general-purpose predicate.
type ExampleFilter struct {
	IDFrom int
	IDTo   int
}
