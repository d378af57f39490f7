package driven

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// VectorIndex provides cosine similarity search over the persisted index.
// Implementations hold an immutable RAM snapshot: a reload swaps in a new
// snapshot atomically and the search path never observes a partial rebuild.
type VectorIndex interface {
	// Search finds the k highest-scoring records for the query vector,
	// ordered by descending cosine similarity. Exact ties keep original
	// record order. An empty index returns an empty result.
	Search(ctx context.Context, query []float32, k int) ([]domain.ScoredRecord, error)

	// Size returns the number of loaded records.
	Size() int

	// EnsureFresh reloads the snapshot when the backing file's
	// modification time has changed since the last load.
	EnsureFresh() error

	// Reload rebuilds the snapshot unconditionally, for use after
	// out-of-band re-ingestion.
	Reload() error
}

// IndexWriter publishes ingestion output as the persisted index.
// The previous index file is replaced wholesale; there is no
// incremental update.
type IndexWriter interface {
	// WriteAll atomically replaces the index file with the given records.
	// Zero records still produce a valid empty index file.
	WriteAll(ctx context.Context, records []domain.IndexRecord) error
}
