// Package domain defines the core business entities for corpus-cli.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A parsed source document with stable identity
//   - Chunk: A packed, overlap-extended retrieval unit
//   - IndexRecord: A chunk plus its embedding vector
//   - RawDocument: Opaque bytes read from disk before normalisation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
