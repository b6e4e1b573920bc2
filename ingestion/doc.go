// Package ingestion drives the document ingestion pipeline.
//
// The Coordinator owns the full path from raw bytes to committed state:
//   - Deduplication by content hash
//   - Text extraction and normalization
//   - Chunking via the domain's configured strategy
//   - Batched embedding over a worker pool
//   - The atomic append across the metadata store and the vector index
//
// The coordinator is the only writer of documents and chunks, and it is
// what guarantees the positional correspondence between chunk rows and
// vectors. One ingestion runs at a time per domain; a concurrent call
// fails fast with ErrDomainBusy rather than queueing.
package ingestion
