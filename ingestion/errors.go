package ingestion

import (
	"errors"
	"fmt"

	"github.com/poiesic/corpus/core"
)

var (
	// ErrMetadataStoreRequired is returned when a metadata store is not provided.
	ErrMetadataStoreRequired = errors.New("metadata store required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrExtractorRequired is returned when an extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")

	// ErrChunkerRequired is returned when a chunker is not provided.
	ErrChunkerRequired = errors.New("chunker required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrDomainBusy is returned when another ingestion is already running
	// on the domain. Callers should retry later rather than queue.
	ErrDomainBusy = errors.New("domain busy")

	// ErrNoChunks is returned when a document produced no chunks after
	// extraction and chunking.
	ErrNoChunks = errors.New("document produced no chunks")
)

// PartialIngestionError reports the one irreducible inconsistency of the
// two-phase append: the relational transaction committed but the vector
// append or persist failed afterward. The domain now has chunk rows
// without matching vectors and needs corrective re-indexing.
type PartialIngestionError struct {
	DocumentId      core.ID
	ChunksCommitted int
	Err             error
}

func (e *PartialIngestionError) Error() string {
	return fmt.Sprintf("partial ingestion: document %d committed %d chunk rows but vector persist failed: %v",
		e.DocumentId, e.ChunksCommitted, e.Err)
}

func (e *PartialIngestionError) Unwrap() error {
	return e.Err
}
