package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// configFileName is the TOML file inside the config directory.
const configFileName = "config.toml"

// Config is the persisted CLI configuration.
type Config struct {
	Paths     PathsConfig     `toml:"paths"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// PathsConfig locates the document tree and the index file.
type PathsConfig struct {
	DocsDir   string `toml:"docs_dir"`
	IndexPath string `toml:"index_path"`
}

// ChunkingConfig holds chunk packing parameters.
type ChunkingConfig struct {
	TargetTokens  int `toml:"target_tokens"`
	OverlapTokens int `toml:"overlap_tokens"`
}

// EmbeddingConfig holds embedding provider parameters.
type EmbeddingConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	BatchSize int    `toml:"batch_size"`
}

// RetrievalConfig holds context assembly parameters.
type RetrievalConfig struct {
	TopK            int `toml:"top_k"`
	MaxContextChars int `toml:"max_context_chars"`
}

// ConfigStore loads and saves the TOML configuration file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.corpus.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".corpus")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, configFileName),
		config:   DefaultConfig(),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// DefaultConfig returns the configuration used before any file exists.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			DocsDir:   "docs",
			IndexPath: "rag_index.jsonl",
		},
		Chunking: ChunkingConfig{
			TargetTokens:  domain.DefaultTargetTokens,
			OverlapTokens: domain.DefaultOverlapTokens,
		},
		Embedding: EmbeddingConfig{
			Provider:  string(domain.AIProviderOllama),
			Model:     "nomic-embed-text",
			BatchSize: domain.DefaultBatchSize,
		},
		Retrieval: RetrievalConfig{
			TopK:            domain.DefaultTopK,
			MaxContextChars: domain.DefaultMaxContextChars,
		},
	}
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update applies fn to the configuration and persists the result.
func (s *ConfigStore) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.config)
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return err
	}

	// Write with restricted permissions: the file may hold an API key.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. Missing file keeps the
// defaults; fields absent from the file keep their default values.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.config = DefaultConfig()
			return nil
		}
		return err
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.config = config
	return nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// EmbeddingSettings converts the persisted embedding section to
// domain settings. The API key may also come from the environment.
func (c Config) EmbeddingSettings() domain.EmbeddingSettings {
	apiKey := c.Embedding.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	return domain.EmbeddingSettings{
		Provider:  domain.AIProvider(c.Embedding.Provider),
		Model:     c.Embedding.Model,
		BaseURL:   c.Embedding.BaseURL,
		APIKey:    apiKey,
		BatchSize: c.Embedding.BatchSize,
	}
}

// ChunkingSettings converts the persisted chunking section. Load merges
// the file over DefaultConfig, so an absent overlap keeps the default
// while an explicit zero means no overlap; only negatives are clamped.
func (c Config) ChunkingSettings() domain.ChunkingSettings {
	settings := domain.DefaultChunkingSettings()
	if c.Chunking.TargetTokens > 0 {
		settings.TargetTokens = c.Chunking.TargetTokens
	}
	if c.Chunking.OverlapTokens >= 0 {
		settings.OverlapTokens = c.Chunking.OverlapTokens
	}
	return settings
}

// RetrievalSettings converts the persisted retrieval section.
func (c Config) RetrievalSettings() domain.RetrievalSettings {
	settings := domain.DefaultRetrievalSettings()
	if c.Retrieval.TopK > 0 {
		settings.TopK = c.Retrieval.TopK
	}
	if c.Retrieval.MaxContextChars > 0 {
		settings.MaxContextChars = c.Retrieval.MaxContextChars
	}
	return settings
}
