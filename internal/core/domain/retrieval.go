package domain

// ScoredRecord is an index record paired with its cosine similarity to a
// query. Results are ordered by descending score; exact ties keep the
// original record order.
type ScoredRecord struct {
	Record IndexRecord
	Score  float64
}

// ContextResult is the assembled, budget-limited context handed to a
// downstream completion provider.
type ContextResult struct {
	// Block is the formatted context text. Empty when no retrieval is
	// available; callers must treat that as "no context", not an error.
	Block string

	// Sources is the ordered list of distinct document titles whose
	// snippets were actually included in the block.
	Sources []string
}
