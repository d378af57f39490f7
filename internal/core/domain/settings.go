package domain

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// BatchSize bounds how many chunk texts are embedded per call batch.
	BatchSize int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings holds chunk packing configuration.
type ChunkingSettings struct {
	// TargetTokens is the approximate token budget per chunk.
	TargetTokens int

	// OverlapTokens is the approximate overlap carried between chunks.
	OverlapTokens int
}

// RetrievalSettings holds context assembly configuration.
type RetrievalSettings struct {
	// TopK is the number of candidates requested from the index.
	TopK int

	// MaxContextChars is the shared character budget for the block.
	MaxContextChars int
}

// Default settings values.
const (
	DefaultTargetTokens    = 1000
	DefaultOverlapTokens   = 120
	DefaultBatchSize       = 256
	DefaultTopK            = 6
	DefaultMaxContextChars = 4000
)

// DefaultChunkingSettings returns chunking defaults.
func DefaultChunkingSettings() ChunkingSettings {
	return ChunkingSettings{
		TargetTokens:  DefaultTargetTokens,
		OverlapTokens: DefaultOverlapTokens,
	}
}

// DefaultRetrievalSettings returns retrieval defaults.
func DefaultRetrievalSettings() RetrievalSettings {
	return RetrievalSettings{
		TopK:            DefaultTopK,
		MaxContextChars: DefaultMaxContextChars,
	}
}
