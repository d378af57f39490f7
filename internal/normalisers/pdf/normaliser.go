// Package pdf extracts text from PDF documents using the poppler
// pdftotext utility.
package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// CommandRunner executes an external command and returns its stdout.
// Injectable for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser handles PDF documents. Text is extracted page by page in
// reading order; layout analysis is not attempted.
type Normaliser struct {
	runner CommandRunner
}

// New creates a new PDF normaliser using pdftotext.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}}
}

// NewWithRunner creates a normaliser with a custom command runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Normalise converts a PDF into extracted text plus metadata.
// pdftotext writes a form feed after each page; the page count is
// recovered from those separators.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	out, err := n.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", raw.Path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrExtraction, filepath.Base(raw.Path), err)
	}

	content, pages := joinPages(string(out))

	doc := domain.Document{
		Title:       titleStem(raw.Path),
		Kind:        domain.KindPDF,
		Path:        raw.Path,
		Content:     content,
		ContentHash: domain.HashBytes(raw.Content),
		Pages:       pages,
	}

	return &driven.NormaliseResult{Document: doc}, nil
}

// joinPages splits pdftotext output on form feeds, trims each page and
// joins them with newlines, preserving page order.
func joinPages(out string) (string, int) {
	raw := strings.Split(out, "\f")

	pages := make([]string, 0, len(raw))
	for _, page := range raw {
		if trimmed := strings.TrimSpace(page); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	count := strings.Count(out, "\f")
	if count == 0 && strings.TrimSpace(out) != "" {
		count = 1
	}

	return strings.Join(pages, "\n"), count
}

// titleStem returns the filename without its extension.
func titleStem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
