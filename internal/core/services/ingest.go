package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.Ingestor = (*IngestOrchestrator)(nil)

// IngestOrchestrator coordinates one ingestion run: walk the document
// tree, normalise, chunk, embed and publish the index wholesale.
type IngestOrchestrator struct {
	registry  driven.NormaliserRegistry
	pipeline  driven.PostProcessorPipeline
	embedder  driven.EmbeddingService
	writer    driven.IndexWriter
	batchSize int
	progress  io.Writer
}

// IngestOption configures an IngestOrchestrator.
type IngestOption func(*IngestOrchestrator)

// WithBatchSize sets how many chunk texts are embedded per call batch.
func WithBatchSize(n int) IngestOption {
	return func(o *IngestOrchestrator) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithProgress sets the writer for per-document progress lines.
func WithProgress(w io.Writer) IngestOption {
	return func(o *IngestOrchestrator) {
		if w != nil {
			o.progress = w
		}
	}
}

// NewIngestOrchestrator creates a new ingest orchestrator.
func NewIngestOrchestrator(
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	writer driven.IndexWriter,
	opts ...IngestOption,
) *IngestOrchestrator {
	o := &IngestOrchestrator{
		registry:  registry,
		pipeline:  pipeline,
		embedder:  embedder,
		writer:    writer,
		batchSize: domain.DefaultBatchSize,
		progress:  io.Discard,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Ingest processes every supported document under docsDir.
// A document that fails extraction is logged and skipped; a failed
// embedding batch aborts the whole run and the previous index file is
// left untouched. Zero surviving documents still publish a valid empty
// index.
func (o *IngestOrchestrator) Ingest(ctx context.Context, docsDir string) (*driving.IngestReport, error) {
	if docsDir == "" {
		return nil, fmt.Errorf("%w: docs dir is empty", domain.ErrInvalidInput)
	}

	absDir, err := filepath.Abs(docsDir)
	if err != nil {
		return nil, fmt.Errorf("resolving docs dir: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("reading docs dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, absDir)
	}

	report := &driving.IngestReport{RunID: uuid.NewString()}

	paths, err := o.collectPaths(absDir)
	if err != nil {
		return nil, err
	}

	logger.Info("Ingest run %s: %d candidate files under %s", report.RunID, len(paths), absDir)

	var records []domain.IndexRecord
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunks, err := o.processDocument(ctx, path)
		if err != nil {
			if errors.Is(err, domain.ErrExtraction) || errors.Is(err, domain.ErrUnsupportedType) {
				report.Skipped++
				logger.Warn("Skipping %s: %v", path, err)
				fmt.Fprintf(o.progress, "skip  %s (%v)\n", path, err)
				continue
			}
			return nil, err
		}

		report.Documents++
		fmt.Fprintf(o.progress, "parse %s (%d chunks)\n", path, len(chunks))

		embedded, err := o.embedChunks(ctx, chunks)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrEmbedding, path, err)
		}
		records = append(records, embedded...)
	}

	report.Chunks = len(records)
	if len(records) > 0 {
		report.Dimensions = len(records[0].Vector)
	}

	if err := o.writer.WriteAll(ctx, records); err != nil {
		return nil, fmt.Errorf("publishing index: %w", err)
	}

	logger.Info("Ingest run %s complete: %d documents, %d skipped, %d chunks",
		report.RunID, report.Documents, report.Skipped, report.Chunks)
	fmt.Fprintf(o.progress, "done  %d documents, %d skipped, %d chunks\n",
		report.Documents, report.Skipped, report.Chunks)

	return report, nil
}

// collectPaths walks the tree and returns supported file paths in
// deterministic lexical order.
func (o *IngestOrchestrator) collectPaths(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportsExtension(o.registry.SupportedExtensions(), path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking docs dir: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// processDocument reads, normalises and chunks a single file.
func (o *IngestOrchestrator) processDocument(ctx context.Context, path string) ([]domain.Chunk, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrExtraction, path, err)
	}

	result, err := o.registry.Normalise(ctx, &domain.RawDocument{Path: path, Content: content})
	if err != nil {
		return nil, err
	}

	doc := result.Document
	doc.ID = domain.DocumentID(path, doc.ContentHash)

	return o.pipeline.Process(ctx, &doc)
}

// embedChunks runs the chunk texts through the embedding service in
// batches and pairs each chunk with its vector.
func (o *IngestOrchestrator) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]domain.IndexRecord, error) {
	records := make([]domain.IndexRecord, 0, len(chunks))

	for start := 0; start < len(chunks); start += o.batchSize {
		end := start + o.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := o.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding returned %d vectors for %d texts", len(vectors), len(batch))
		}
		fmt.Fprintf(o.progress, "embed %d/%d chunks\n", end, len(chunks))

		for i, c := range batch {
			records = append(records, domain.IndexRecord{Chunk: c, Vector: vectors[i]})
		}
	}

	return records, nil
}

// supportsExtension reports whether the path's extension is in the
// registry's supported set. The match is case-insensitive.
func supportsExtension(exts []string, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
