package driven

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// PostProcessor processes document content to produce chunks.
// PostProcessors are chained in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and returns chunks.
	// A processor that creates chunks (the chunker) receives nil and
	// returns new chunks; a processor that modifies chunks receives and
	// returns them.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
