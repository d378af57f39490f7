// Package ai provides factory functions for creating embedding service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/corpus-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/corpus-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the appropriate embedding service based on settings.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: embedding settings are nil", domain.ErrInvalidInput)
	}
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: provider %s is missing credentials", domain.ErrInvalidInput, settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a
// service and pinging it.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
