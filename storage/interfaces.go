package storage

import (
	"context"

	"github.com/poiesic/corpus/core"
)

// DomainRegistry is the control store cataloging domains.
// Domain names are unique case-insensitively, and a domain's
// configuration is write-once after creation.
type DomainRegistry interface {
	// CreateDomain registers a new domain.
	// Generates an ID from sequence and sets timestamps.
	// Returns ErrDuplicateKey if a domain with the same name
	// (compared case-insensitively) already exists.
	CreateDomain(ctx context.Context, domain *core.Domain) (*core.Domain, error)

	// GetDomain retrieves a domain by name (case-insensitive).
	// Returns ErrNotFound if no such domain exists.
	GetDomain(ctx context.Context, name string) (*core.Domain, error)

	// ListDomains retrieves all registered domains ordered by name.
	ListDomains(ctx context.Context) ([]*core.Domain, error)

	// AddDocumentCount adjusts a domain's total document counter.
	// The counter is bookkeeping only; the metadata store holds the truth.
	AddDocumentCount(ctx context.Context, name string, delta int) error

	// DeleteDomain removes a domain's catalog entry. The domain's store
	// files are the caller's responsibility.
	// Returns ErrNotFound if no such domain exists.
	DeleteDomain(ctx context.Context, name string) error

	// Close closes the registry and releases resources.
	Close() error
}

// MetadataStore is the per-domain transactional store for document and
// chunk records. Implementations must enforce uniqueness on document
// hash and on chunk content within the domain.
type MetadataStore interface {
	// AddDocument inserts a document row and all of its chunk rows in one
	// transaction: either every row lands or none do. Chunks must carry
	// their vector offsets, assigned by the ingestion coordinator.
	// Generates IDs from sequence and sets timestamps.
	// Returns ErrDuplicateKey if the document hash already exists and
	// ErrDuplicateContent if any chunk's content already exists.
	AddDocument(ctx context.Context, doc *core.DocumentFile, chunks []*core.Chunk) error

	// FindDocumentByHash retrieves a document by its content hash.
	// Returns ErrNotFound if no document with the hash exists.
	FindDocumentByHash(ctx context.Context, hash string) (*core.DocumentFile, error)

	// GetDocument retrieves a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.DocumentFile, error)

	// ListDocuments retrieves all documents ordered by insertion.
	ListDocuments(ctx context.Context) ([]*core.DocumentFile, error)

	// DeleteDocument removes a document and cascades to its chunk rows
	// and their indices. The corresponding vectors stay in the vector
	// index; the offsets become tombstoned on this side only.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error

	// GetChunksByOffsets retrieves chunks by their vector offsets, in
	// input order. A missing offset yields ErrNotFound wrapping the
	// offending offset; callers treat that as an integrity fault.
	GetChunksByOffsets(ctx context.Context, offsets ...uint64) ([]*core.Chunk, error)

	// GetChunksByDocument retrieves a document's chunks ordered by offset.
	GetChunksByDocument(ctx context.Context, docID core.ID) ([]*core.Chunk, error)

	// ChunksInOffsetOrder iterates every chunk row ordered by offset,
	// calling fn for each. Iteration stops on the first error.
	ChunksInOffsetOrder(ctx context.Context, fn func(*core.Chunk) error) error

	// CountDocuments returns the number of document rows.
	CountDocuments(ctx context.Context) (uint64, error)

	// CountChunks returns the number of chunk rows.
	CountChunks(ctx context.Context) (uint64, error)

	// Close closes the store and releases resources.
	Close() error
}

// VectorIndex is the per-domain append-only positional vector index.
// There is no update or delete by offset: this is a design constraint of
// the index family, not an oversight. Appends are staged in memory and
// become visible to Search only after Persist publishes them, so readers
// never observe a torn index.
type VectorIndex interface {
	// Append stages vectors for the next Persist and returns the offset
	// the first staged vector will occupy once published.
	// Returns ErrDimensionMismatch if any vector has the wrong dimension.
	Append(vectors [][]float32) (start uint64, err error)

	// Persist publishes staged vectors and writes the whole index to
	// stable storage atomically. On error the staged vectors are
	// discarded and the published state is unchanged.
	Persist() error

	// Discard drops staged vectors without publishing them.
	Discard()

	// Search returns the k nearest published vectors to the query,
	// ordered by non-decreasing distance.
	// Returns ErrDimensionMismatch if the query has the wrong dimension.
	Search(query []float32, k int) ([]core.SearchHit, error)

	// Len returns the number of published vectors.
	Len() uint64

	// Dimension returns the fixed vector dimension.
	Dimension() int

	// Close releases resources without persisting staged vectors.
	Close() error
}
