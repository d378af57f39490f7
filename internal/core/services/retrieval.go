package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// contextHeader opens every non-empty context block.
const contextHeader = "## Context Materials"

// sectionSeparator joins per-document sections.
const sectionSeparator = "\n\n---\n\n"

// RetrievalService answers queries against the vector index and
// assembles bounded-size context blocks.
type RetrievalService struct {
	index    driven.VectorIndex
	embedder driven.EmbeddingService
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(index driven.VectorIndex, embedder driven.EmbeddingService) *RetrievalService {
	return &RetrievalService{
		index:    index,
		embedder: embedder,
	}
}

// Search returns the raw top-k scored records for a query.
// The index is refreshed first if the backing file changed on disk.
func (s *RetrievalService) Search(ctx context.Context, query string, topK int) ([]domain.ScoredRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	if err := s.index.EnsureFresh(); err != nil {
		return nil, fmt.Errorf("refreshing index: %w", err)
	}

	// An empty index answers without touching the embedding service.
	if s.index.Size() == 0 {
		logger.Debug("Search %q: index is empty", query)
		return nil, nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", domain.ErrEmbeddingUnavailable, err)
	}

	hits, err := s.index.Search(ctx, vector, topK)
	if err != nil {
		return nil, err
	}

	logger.Debug("Search %q: %d hits from %d records", query, len(hits), s.index.Size())
	return hits, nil
}

// AssembleContext runs top-k search, deduplicates hits by document
// title, enforces the character budget and formats the block. Hits are
// walked in score order; each new title claims the remaining budget,
// truncating its snippet if needed. An empty index or blank query
// yields an empty block.
func (s *RetrievalService) AssembleContext(ctx context.Context, query string, topK, charBudget int) (*domain.ContextResult, error) {
	if charBudget <= 0 {
		charBudget = domain.DefaultMaxContextChars
	}

	hits, err := s.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return &domain.ContextResult{}, nil
	}

	seen := make(map[string]bool)
	var sections []string
	var sources []string
	budget := charBudget

	for _, hit := range hits {
		if budget <= 0 {
			break
		}

		title := hit.Record.DocTitle
		if seen[title] {
			continue
		}
		seen[title] = true

		// Rune-safe truncation can leave nothing when the remaining
		// budget is smaller than the snippet's leading rune; such a
		// candidate contributes no text and gets no section.
		snippet := truncate(hit.Record.Text, budget)
		if snippet == "" {
			continue
		}
		budget -= len(snippet)

		sections = append(sections, fmt.Sprintf("### %s (%s)\n%s", title, hit.Record.Kind, snippet))
		sources = append(sources, title)
	}

	if len(sections) == 0 {
		return &domain.ContextResult{}, nil
	}

	block := contextHeader + "\n\n" + strings.Join(sections, sectionSeparator)
	logger.Debug("Assembled context: %d sections, %d chars", len(sections), len(block))

	return &domain.ContextResult{
		Block:   block,
		Sources: sources,
	}, nil
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Reload forces an immediate index reload.
func (s *RetrievalService) Reload() error {
	return s.index.Reload()
}

// Size returns the number of records currently loaded.
func (s *RetrievalService) Size() int {
	return s.index.Size()
}
