package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.IndexWriter = (*Writer)(nil)

// Writer persists ingestion output as the JSONL index file.
type Writer struct {
	path string
}

// NewWriter creates a writer targeting the given index file path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteAll atomically replaces the index file with the given records.
// The records are written to a temporary file in the same directory and
// renamed over the target, so readers never observe a partial index.
// Zero records produce a valid empty file.
func (w *Writer) WriteAll(ctx context.Context, records []domain.IndexRecord) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp index file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	buf := bufio.NewWriter(tmp)
	enc := json.NewEncoder(buf)
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			tmp.Close()
			return err
		}
		if err := enc.Encode(fromDomain(rec)); err != nil {
			tmp.Close()
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}

	if err := buf.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing index file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp index file: %w", err)
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		return fmt.Errorf("replacing index file: %w", err)
	}
	return nil
}

// Path returns the index file path.
func (w *Writer) Path() string {
	return w.path
}
