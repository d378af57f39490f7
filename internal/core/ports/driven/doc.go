// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser: Transforms raw document bytes into extracted text
//   - NormaliserRegistry: Selects the appropriate normaliser by extension
//   - PostProcessorPipeline: Produces chunks from a document
//   - EmbeddingService: Generates vector embeddings
//   - IndexWriter: Publishes the index file wholesale
//   - VectorIndex: RAM snapshot with cosine top-k search and hot reload
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
