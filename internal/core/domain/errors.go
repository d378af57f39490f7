package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction indicates a single document failed to parse.
	// The document is logged and skipped; the ingestion run continues.
	ErrExtraction = errors.New("extraction failed")

	// ErrEmbedding indicates a batch embedding call failed.
	// This is fatal to the ingestion run: a partial index must never be
	// published as complete.
	ErrEmbedding = errors.New("embedding failed")

	// ErrIndexParse indicates a malformed persisted index record.
	// Fatal on load: a corrupt index must not silently serve partial data.
	ErrIndexParse = errors.New("index parse failed")

	// ErrUnsupportedProvider indicates an unknown embedding backend was
	// configured. Fatal at provider construction, not at first use.
	ErrUnsupportedProvider = errors.New("unsupported embedding provider")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Retrieval and ingestion both require it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrUnsupportedType indicates a file extension with no registered
	// normaliser.
	ErrUnsupportedType = errors.New("unsupported type")
)
