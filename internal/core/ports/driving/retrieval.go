package driving

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// Retriever assembles bounded-size context blocks for queries.
type Retriever interface {
	// AssembleContext runs top-k search for the query, deduplicates by
	// document title, enforces the character budget and formats the
	// result. An empty index or blank query yields an empty block.
	AssembleContext(ctx context.Context, query string, topK, charBudget int) (*domain.ContextResult, error)

	// Search returns the raw top-k scored records for a query.
	Search(ctx context.Context, query string, topK int) ([]domain.ScoredRecord, error)

	// Reload forces an immediate index reload regardless of the
	// modification-time comparison.
	Reload() error

	// Size returns the number of records currently loaded.
	Size() int
}
