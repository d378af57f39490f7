package jsonl

import (
	"fmt"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// record is the persisted form of one index line.
type record struct {
	ID       string              `json:"id"`
	DocID    string              `json:"doc_id"`
	DocTitle string              `json:"doc_title"`
	Kind     domain.DocumentKind `json:"kind"`
	Path     string              `json:"path"`
	Text     string              `json:"text"`
	Position int                 `json:"position"`
	Vector   []float32           `json:"vector"`
}

// fromDomain converts an index record for persistence.
func fromDomain(r domain.IndexRecord) record {
	return record{
		ID:       r.ID,
		DocID:    r.DocID,
		DocTitle: r.DocTitle,
		Kind:     r.Kind,
		Path:     r.Path,
		Text:     r.Text,
		Position: r.Position,
		Vector:   r.Vector,
	}
}

// toDomain validates a parsed line and converts it back.
// A record missing its identity, text or vector is corrupt.
func (r record) toDomain() (domain.IndexRecord, error) {
	if r.ID == "" {
		return domain.IndexRecord{}, fmt.Errorf("%w: record has no id", domain.ErrIndexParse)
	}
	if r.DocID == "" {
		return domain.IndexRecord{}, fmt.Errorf("%w: record %s has no doc_id", domain.ErrIndexParse, r.ID)
	}
	if r.DocTitle == "" {
		return domain.IndexRecord{}, fmt.Errorf("%w: record %s has no doc_title", domain.ErrIndexParse, r.ID)
	}
	if !r.Kind.IsValid() {
		return domain.IndexRecord{}, fmt.Errorf("%w: record %s has kind %q", domain.ErrIndexParse, r.ID, r.Kind)
	}
	if r.Path == "" {
		return domain.IndexRecord{}, fmt.Errorf("%w: record %s has no path", domain.ErrIndexParse, r.ID)
	}
	if r.Text == "" {
		return domain.IndexRecord{}, fmt.Errorf("%w: record %s has no text", domain.ErrIndexParse, r.ID)
	}
	if len(r.Vector) == 0 {
		return domain.IndexRecord{}, fmt.Errorf("%w: record %s has no vector", domain.ErrIndexParse, r.ID)
	}

	return domain.IndexRecord{
		Chunk: domain.Chunk{
			ID:       r.ID,
			DocID:    r.DocID,
			DocTitle: r.DocTitle,
			Kind:     r.Kind,
			Path:     r.Path,
			Text:     r.Text,
			Position: r.Position,
		},
		Vector: r.Vector,
	}, nil
}
