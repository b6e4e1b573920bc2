package reindex

import "errors"

var (
	// ErrMetadataStoreRequired is returned when a metadata store is not provided.
	ErrMetadataStoreRequired = errors.New("metadata store required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexNotEmpty is returned when the rebuild destination already
	// holds vectors. Rebuilding must start from a fresh index.
	ErrIndexNotEmpty = errors.New("rebuild destination index is not empty")

	// ErrOffsetGap is returned when chunk offsets are not contiguous from
	// zero. A gap means documents were deleted; the remaining rows cannot
	// be re-indexed in place and the domain needs full re-ingestion.
	ErrOffsetGap = errors.New("chunk offsets are not contiguous")
)
