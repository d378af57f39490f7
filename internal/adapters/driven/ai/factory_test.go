package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantErr  error
	}{
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "empty provider",
			settings: &domain.EmbeddingSettings{},
			wantErr:  domain.ErrUnsupportedProvider,
		},
		{
			name: "unknown provider",
			settings: &domain.EmbeddingSettings{
				Provider: "anthropic",
				APIKey:   "test-key",
			},
			wantErr: domain.ErrUnsupportedProvider,
		},
		{
			name: "openai without key",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "text-embedding-3-small",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, svc)
			assert.Equal(t, tt.settings.Model, svc.ModelName())
			svc.Close()
		})
	}
}

func TestCreateEmbeddingService_Dimensions(t *testing.T) {
	t.Run("ollama default", func(t *testing.T) {
		svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    "nomic-embed-text",
		})
		require.NoError(t, err)
		defer svc.Close()

		assert.Equal(t, 768, svc.Dimensions())
	})

	t.Run("openai known model", func(t *testing.T) {
		svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "test-key",
			Model:    "text-embedding-3-large",
		})
		require.NoError(t, err)
		defer svc.Close()

		assert.Equal(t, 3072, svc.Dimensions())
	})
}

func TestCreateAndValidateEmbeddingService_UnsupportedProvider(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{
		Provider: "bedrock",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
	assert.Nil(t, svc)
}

func TestValidateEmbeddingConfig_UnsupportedProvider(t *testing.T) {
	err := ValidateEmbeddingConfig(&domain.EmbeddingSettings{Provider: "unknown"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}
