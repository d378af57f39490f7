package driving

import "context"

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// RunID identifies the run in progress output.
	RunID string

	// Documents is the number of documents successfully parsed.
	Documents int

	// Skipped is the number of documents that failed extraction.
	Skipped int

	// Chunks is the number of index records published.
	Chunks int

	// Dimensions is the embedding vector size, zero for an empty run.
	Dimensions int
}

// Ingestor walks a document tree, extracts, chunks, embeds and publishes
// the index file wholesale.
type Ingestor interface {
	// Ingest processes every .pdf and .docx under docsDir. A single bad
	// document is skipped; a failed embedding batch aborts the run
	// without publishing.
	Ingest(ctx context.Context, docsDir string) (*IngestReport, error)
}
