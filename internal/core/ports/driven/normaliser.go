package driven

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// Normaliser transforms raw document bytes into extracted text.
// Each normaliser handles specific file extensions (e.g., PDF, DOCX).
type Normaliser interface {
	// SupportedExtensions returns the lowercase file extensions this
	// normaliser handles, including the leading dot.
	SupportedExtensions() []string

	// Normalise extracts text and metadata from a raw document.
	// Failures wrap domain.ErrExtraction so callers can skip the
	// document and continue the run.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Chunking is handled separately by the PostProcessor pipeline.
type NormaliseResult struct {
	// Document is the parsed document with Content, ContentHash, Title,
	// Kind and (for PDFs) Pages populated. ID assignment is left to the
	// ingestion orchestrator.
	Document domain.Document
}

// NormaliserRegistry selects the appropriate normaliser for a file.
type NormaliserRegistry interface {
	// Normalise transforms a raw document using the normaliser registered
	// for its extension. Returns domain.ErrUnsupportedType when none is.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedExtensions returns all extensions that can be normalised.
	SupportedExtensions() []string
}
