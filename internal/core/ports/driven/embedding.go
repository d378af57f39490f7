package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The core depends only on this interface, never on a concrete model.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via compatible inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for a single query text.
	// Semantically equivalent to EmbedBatch([]string{text})[0].
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	// The result has the same length and order as the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used at startup so misconfiguration fails fast, not at first use.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
