package ollama

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

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
}

func TestEmbed(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello world", req.Prompt)

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	})

	svc := NewEmbeddingService(Config{BaseURL: srv.URL})

	vec, err := svc.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_ServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	svc := NewEmbeddingService(Config{BaseURL: srv.URL})

	_, err := svc.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestEmbedBatch_Sequential(t *testing.T) {
	var calls int
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Echo a vector derived from the prompt length so order is visible.
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{float64(len(req.Prompt))}})
	})

	svc := NewEmbeddingService(Config{BaseURL: srv.URL})

	vecs, err := svc.EmbedBatch(context.Background(), []string{"a", "bb", "ccc"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []float32{1}, vecs[0])
	assert.Equal(t, []float32{2}, vecs[1])
	assert.Equal(t, []float32{3}, vecs[2])
}

func TestEmbedBatch_Empty(t *testing.T) {
	svc := NewEmbeddingService(Config{})
	vecs, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestPing(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/tags", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})

		svc := NewEmbeddingService(Config{BaseURL: srv.URL})
		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		svc := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})
		assert.Error(t, svc.Ping(context.Background()))
	})
}
