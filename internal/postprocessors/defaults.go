package postprocessors

import (
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/postprocessors/chunker"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - target_tokens (int): Approximate tokens per chunk (default: 1000)
//   - overlap_tokens (int): Approximate overlap between chunks (default: 120)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if cfg != nil {
		if target := getIntFromConfig(cfg, "target_tokens"); target > 0 {
			opts = append(opts, chunker.WithTargetTokens(target))
		}
		if overlap := getIntFromConfig(cfg, "overlap_tokens"); overlap >= 0 {
			opts = append(opts, chunker.WithOverlapTokens(overlap))
		}
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
