package domain

// DocumentKind identifies the source document format.
type DocumentKind string

// Supported document kinds.
const (
	// KindPDF is a PDF document.
	KindPDF DocumentKind = "pdf"

	// KindDOCX is a Word (OOXML) document.
	KindDOCX DocumentKind = "docx"
)

// IsValid returns true if the kind is recognised.
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindPDF, KindDOCX:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k DocumentKind) String() string {
	return string(k)
}

// RawDocument represents opaque bytes read from disk.
// It is the input to normalisation.
type RawDocument struct {
	// Path is the resolved absolute path of the file.
	Path string

	// Content is the raw file bytes.
	Content []byte
}

// Document represents a parsed source document.
// It is the canonical representation after normalisation.
type Document struct {
	// ID is the stable identifier: sha256 of absolute path and content hash.
	// It survives re-ingestion as long as location and bytes are unchanged.
	ID string

	// Title is the filename stem.
	Title string

	// Kind is the source format.
	Kind DocumentKind

	// Path is the resolved absolute path of the source file.
	Path string

	// Content is the full extracted text.
	Content string

	// ContentHash is the sha256 of the raw file bytes.
	ContentHash string

	// Pages is the page count for PDF sources, zero otherwise.
	Pages int
}

// Chunk is a contiguous, overlap-extended packed window of paragraphs
// from one document. Chunks are the retrieval unit.
type Chunk struct {
	// ID is the stable identifier: sha256 of "docID:position".
	ID string

	// DocID links to the parent Document.
	DocID string

	// DocTitle is the parent document's title, carried for display.
	DocTitle string

	// Kind is the parent document's format.
	Kind DocumentKind

	// Path is the parent document's source path.
	Path string

	// Text is the chunk contents. Always non-empty after trimming.
	Text string

	// Position is the ordinal position within the document's packing order.
	Position int
}

// IndexRecord is a chunk plus its embedding vector. One record per line
// in the persisted index file; the file is the sole durable state and is
// rewritten wholesale on each ingestion run.
type IndexRecord struct {
	Chunk

	// Vector is the fixed-length embedding, L2-normalisable.
	Vector []float32
}
