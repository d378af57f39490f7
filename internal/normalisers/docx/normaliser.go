// Package docx extracts text from Word (OOXML) documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents. Inline images and objects are
// ignored; only paragraph text in document order is kept.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".docx"}
}

// Normalise converts a DOCX document into extracted text plus metadata.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrExtraction, filepath.Base(raw.Path), err)
	}

	content, err := extractDocumentText(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrExtraction, filepath.Base(raw.Path), err)
	}

	doc := domain.Document{
		Title:       titleStem(raw.Path),
		Kind:        domain.KindDOCX,
		Path:        raw.Path,
		Content:     content,
		ContentHash: domain.HashBytes(raw.Content),
	}

	return &driven.NormaliseResult{Document: doc}, nil
}

// extractDocumentText extracts paragraph text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		return parseDocumentXML(content)
	}
	return "", errors.New("missing word/document.xml")
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML joins non-empty paragraphs in document order with
// newlines.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", err
	}

	paras := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		var text strings.Builder
		for _, r := range para.Runs {
			for _, t := range r.Text {
				text.WriteString(t.Content)
			}
		}
		if trimmed := strings.TrimSpace(text.String()); trimmed != "" {
			paras = append(paras, trimmed)
		}
	}

	return strings.TrimSpace(strings.Join(paras, "\n")), nil
}

// titleStem returns the filename without its extension.
func titleStem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
