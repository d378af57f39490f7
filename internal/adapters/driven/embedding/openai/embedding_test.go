package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewEmbeddingService(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewEmbeddingService(Config{})
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "test-key"})
		require.NoError(t, err)

		assert.Equal(t, DefaultModel, svc.ModelName())
		assert.Equal(t, 1536, svc.Dimensions())
	})

	t.Run("large model dimensions", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "test-key", Model: "text-embedding-3-large"})
		require.NoError(t, err)
		assert.Equal(t, 3072, svc.Dimensions())
	})
}

func TestEmbedBatch(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"first", "second"}, req.Input)
		assert.Equal(t, 1536, req.Dimensions)

		// Return data out of order; the adapter must reorder by index.
		resp := embeddingResponse{}
		resp.Data = []struct {
			Embedding []float64 `json:"embedding"`
			Index     int       `json:"index"`
		}{
			{Embedding: []float64{2.0}, Index: 1},
			{Embedding: []float64{1.0}, Index: 0},
		}
		json.NewEncoder(w).Encode(resp)
	})

	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	vecs, err := svc.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1.0}, vecs[0])
	assert.Equal(t, []float32{2.0}, vecs[1])
}

func TestEmbedBatch_APIError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key", "type": "auth"},
		})
	})

	svc, err := NewEmbeddingService(Config{APIKey: "bad-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = svc.EmbedBatch(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestEmbed(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		resp := embeddingResponse{}
		resp.Data = []struct {
			Embedding []float64 `json:"embedding"`
			Index     int       `json:"index"`
		}{
			{Embedding: []float64{0.5, 0.5}, Index: 0},
		}
		json.NewEncoder(w).Encode(resp)
	})

	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	vec, err := svc.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, vec)
}

func TestPing(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		})

		svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: srv.URL})
		require.NoError(t, err)
		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("rejected key", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})

		svc, err := NewEmbeddingService(Config{APIKey: "bad", BaseURL: srv.URL})
		require.NoError(t, err)
		assert.Error(t, svc.Ping(context.Background()))
	})
}
