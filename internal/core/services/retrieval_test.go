package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// stubIndex serves canned hits and tracks refresh calls.
type stubIndex struct {
	hits        []domain.ScoredRecord
	size        int
	freshCalls  int
	reloadCalls int
	lastK       int
}

func (i *stubIndex) Search(_ context.Context, _ []float32, k int) ([]domain.ScoredRecord, error) {
	i.lastK = k
	if k > len(i.hits) {
		k = len(i.hits)
	}
	return i.hits[:k], nil
}

func (i *stubIndex) Size() int          { return i.size }
func (i *stubIndex) EnsureFresh() error { i.freshCalls++; return nil }
func (i *stubIndex) Reload() error      { i.reloadCalls++; return nil }

// countingEmbedder fails the test intent if an empty index still
// triggers an embedding call.
type countingEmbedder struct {
	stubEmbedder
	calls int
}

func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	return e.stubEmbedder.Embed(ctx, text)
}

func hit(title, text string, score float64) domain.ScoredRecord {
	return domain.ScoredRecord{
		Record: domain.IndexRecord{
			Chunk: domain.Chunk{
				ID:       "chunk-" + title + "-" + text[:1],
				DocID:    "doc-" + title,
				DocTitle: title,
				Kind:     domain.KindPDF,
				Text:     text,
			},
			Vector: []float32{1, 0},
		},
		Score: score,
	}
}

func TestSearch(t *testing.T) {
	t.Run("blank query returns nothing", func(t *testing.T) {
		index := &stubIndex{size: 3}
		embedder := &countingEmbedder{}
		s := NewRetrievalService(index, embedder)

		hits, err := s.Search(context.Background(), "   ", 5)
		require.NoError(t, err)
		assert.Nil(t, hits)
		assert.Zero(t, embedder.calls)
	})

	t.Run("empty index skips embedding", func(t *testing.T) {
		index := &stubIndex{size: 0}
		embedder := &countingEmbedder{}
		s := NewRetrievalService(index, embedder)

		hits, err := s.Search(context.Background(), "query", 5)
		require.NoError(t, err)
		assert.Nil(t, hits)
		assert.Zero(t, embedder.calls)
		assert.Equal(t, 1, index.freshCalls, "freshness check must run before answering")
	})

	t.Run("returns scored hits", func(t *testing.T) {
		index := &stubIndex{
			size: 2,
			hits: []domain.ScoredRecord{
				hit("alpha", "alpha text", 0.9),
				hit("beta", "beta text", 0.7),
			},
		}
		s := NewRetrievalService(index, &countingEmbedder{})

		hits, err := s.Search(context.Background(), "query", 2)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "alpha", hits[0].Record.DocTitle)
	})

	t.Run("non-positive k uses default", func(t *testing.T) {
		index := &stubIndex{size: 1, hits: []domain.ScoredRecord{hit("a", "text", 0.5)}}
		s := NewRetrievalService(index, &countingEmbedder{})

		_, err := s.Search(context.Background(), "query", 0)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultTopK, index.lastK)
	})
}

func TestAssembleContext(t *testing.T) {
	t.Run("dedupes by title keeping score order", func(t *testing.T) {
		index := &stubIndex{
			size: 3,
			hits: []domain.ScoredRecord{
				hit("alpha", "best alpha chunk", 0.9),
				hit("beta", "best beta chunk", 0.85),
				hit("alpha", "second alpha chunk", 0.8),
			},
		}
		s := NewRetrievalService(index, &countingEmbedder{})

		result, err := s.AssembleContext(context.Background(), "query", 3, 4000)
		require.NoError(t, err)

		assert.Equal(t, []string{"alpha", "beta"}, result.Sources)
		assert.True(t, strings.HasPrefix(result.Block, "## Context Materials\n\n"))

		alphaAt := strings.Index(result.Block, "### alpha (pdf)\nbest alpha chunk")
		betaAt := strings.Index(result.Block, "### beta (pdf)\nbest beta chunk")
		require.GreaterOrEqual(t, alphaAt, 0)
		require.GreaterOrEqual(t, betaAt, 0)
		assert.Less(t, alphaAt, betaAt)
		assert.NotContains(t, result.Block, "second alpha chunk")
		assert.Contains(t, result.Block, "\n\n---\n\n")
	})

	t.Run("budget truncates and limits sources", func(t *testing.T) {
		index := &stubIndex{
			size: 2,
			hits: []domain.ScoredRecord{
				hit("alpha", strings.Repeat("a", 100), 0.9),
				hit("beta", strings.Repeat("b", 100), 0.8),
			},
		}
		s := NewRetrievalService(index, &countingEmbedder{})

		result, err := s.AssembleContext(context.Background(), "query", 2, 60)
		require.NoError(t, err)

		// Alpha consumes the whole budget; beta never makes it in.
		assert.Equal(t, []string{"alpha"}, result.Sources)
		assert.Contains(t, result.Block, strings.Repeat("a", 60))
		assert.NotContains(t, result.Block, "beta")
	})

	t.Run("empty index yields empty result", func(t *testing.T) {
		s := NewRetrievalService(&stubIndex{size: 0}, &countingEmbedder{})

		result, err := s.AssembleContext(context.Background(), "query", 5, 4000)
		require.NoError(t, err)
		assert.Empty(t, result.Block)
		assert.Empty(t, result.Sources)
	})

	t.Run("blank query yields empty result", func(t *testing.T) {
		s := NewRetrievalService(&stubIndex{size: 5}, &countingEmbedder{})

		result, err := s.AssembleContext(context.Background(), "", 5, 4000)
		require.NoError(t, err)
		assert.Empty(t, result.Block)
		assert.Empty(t, result.Sources)
	})

	t.Run("candidate whose snippet truncates to nothing is excluded", func(t *testing.T) {
		index := &stubIndex{
			size: 2,
			hits: []domain.ScoredRecord{
				hit("alpha", "aaaa", 0.9),
				hit("beta", strings.Repeat("é", 10), 0.8),
			},
		}
		s := NewRetrievalService(index, &countingEmbedder{})

		// Alpha leaves 1 byte of budget; beta's leading rune needs 2,
		// so beta must get neither a section nor a sources entry.
		result, err := s.AssembleContext(context.Background(), "query", 2, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha"}, result.Sources)
		assert.NotContains(t, result.Block, "beta")
	})

	t.Run("multibyte text is never split mid-rune", func(t *testing.T) {
		index := &stubIndex{
			size: 1,
			hits: []domain.ScoredRecord{hit("doc", strings.Repeat("é", 50), 0.9)},
		}
		s := NewRetrievalService(index, &countingEmbedder{})

		result, err := s.AssembleContext(context.Background(), "query", 1, 21)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(result.Block, "é"))
	})
}

func TestRetrievalService_ReloadAndSize(t *testing.T) {
	index := &stubIndex{size: 7}
	s := NewRetrievalService(index, &countingEmbedder{})

	assert.Equal(t, 7, s.Size())
	require.NoError(t, s.Reload())
	assert.Equal(t, 1, index.reloadCalls)
}
