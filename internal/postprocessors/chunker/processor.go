// Package chunker provides a paragraph-aware chunk packing processor.
package chunker

import (
	"context"
	"strings"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// CharsPerToken approximates tokens from character counts for English
// prose. A real tokenizer could be substituted without changing the
// packing contract.
const CharsPerToken = 4

// MinWindowChars is the smallest target window regardless of the
// requested token count.
const MinWindowChars = 200

// Processor packs document paragraphs into overlapping token-budgeted
// windows. It implements the PostProcessor interface.
type Processor struct {
	targetTokens  int
	overlapTokens int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithTargetTokens sets the approximate token budget per chunk.
func WithTargetTokens(tokens int) Option {
	return func(p *Processor) {
		if tokens > 0 {
			p.targetTokens = tokens
		}
	}
}

// WithOverlapTokens sets the approximate overlap carried between chunks.
func WithOverlapTokens(tokens int) Option {
	return func(p *Processor) {
		if tokens >= 0 {
			p.overlapTokens = tokens
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		targetTokens:  domain.DefaultTargetTokens,
		overlapTokens: domain.DefaultOverlapTokens,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into paragraphs and packs them
// into overlapping windows. Input chunks are ignored; this processor
// creates new chunks from document content. Chunk IDs are deterministic
// given the document ID and packing position.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	paragraphs := SplitParagraphs(doc.Content)
	texts := PackChunks(paragraphs, p.targetTokens, p.overlapTokens)

	chunks := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, domain.Chunk{
			ID:       domain.ChunkID(doc.ID, i),
			DocID:    doc.ID,
			DocTitle: doc.Title,
			Kind:     doc.Kind,
			Path:     doc.Path,
			Text:     text,
			Position: i,
		})
	}

	return chunks, nil
}

// SplitParagraphs groups consecutive non-blank lines into paragraphs,
// using blank lines as boundaries. Lines within a paragraph are joined
// by a single space; empty paragraphs are dropped.
func SplitParagraphs(text string) []string {
	lines := strings.Split(text, "\n")

	var parts []string
	var buf []string
	flush := func() {
		if len(buf) == 0 {
			return
		}
		if p := strings.TrimSpace(strings.Join(buf, " ")); p != "" {
			parts = append(parts, p)
		}
		buf = buf[:0]
	}

	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			buf = append(buf, strings.TrimRight(line, " \t\r"))
		} else {
			flush()
		}
	}
	flush()

	return parts
}

// PackChunks packs paragraphs into windows of roughly targetTokens,
// carrying a whole-paragraph suffix of at least overlapTokens back into
// the next window. A single paragraph longer than the window is never
// split; it is emitted as its own oversized chunk.
func PackChunks(paragraphs []string, targetTokens, overlapTokens int) []string {
	targetChars := targetTokens * CharsPerToken
	if targetChars < MinWindowChars {
		targetChars = MinWindowChars
	}
	overlapChars := overlapTokens * CharsPerToken
	if overlapChars < 0 {
		overlapChars = 0
	}

	var raw []string
	var window []string
	windowLen := 0

	for _, p := range paragraphs {
		if len(window) > 0 && windowLen+len(p)+1 > targetChars {
			raw = append(raw, strings.Join(window, "\n"))

			// Carry the tail overlap forward, walking backward by whole
			// paragraphs and preserving original order.
			var carry []string
			carryLen := 0
			for i := len(window) - 1; i >= 0; i-- {
				carry = append([]string{window[i]}, carry...)
				carryLen += len(window[i]) + 1
				if carryLen >= overlapChars {
					break
				}
			}
			window = carry
			windowLen = carryLen
		}

		window = append(window, p)
		windowLen += len(p) + 1
	}

	if len(window) > 0 {
		raw = append(raw, strings.Join(window, "\n"))
	}

	chunks := make([]string, 0, len(raw))
	for _, c := range raw {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks
}
