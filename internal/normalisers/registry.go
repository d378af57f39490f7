package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the normaliser registered for
// their file extension.
type Registry struct {
	byExtension map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: make(map[string]driven.Normaliser),
	}
}

// Register adds a normaliser for each of its supported extensions.
// A later registration for the same extension wins.
func (r *Registry) Register(normaliser driven.Normaliser) {
	for _, ext := range normaliser.SupportedExtensions() {
		r.byExtension[strings.ToLower(ext)] = normaliser
	}
}

// Normalise transforms a raw document using the normaliser for its
// extension. The extension match is case-insensitive.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	ext := strings.ToLower(filepath.Ext(raw.Path))
	normaliser, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}

	return normaliser.Normalise(ctx, raw)
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether the path's extension has a registered
// normaliser.
func (r *Registry) Supports(path string) bool {
	_, ok := r.byExtension[strings.ToLower(filepath.Ext(path))]
	return ok
}
