package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from database sequences or content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// HashContent computes the content hash of raw document bytes.
// The hash is the deduplication key for documents within a domain:
// identical bytes always produce identical hashes.
func HashContent(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// IndexKind identifies the distance metric of a domain's vector index.
type IndexKind string

const (
	// IndexFlatL2 is a flat index ordered by Euclidean distance.
	IndexFlatL2 IndexKind = "flat-l2"
	// IndexFlatCosine is a flat index ordered by cosine distance (1 - similarity).
	IndexFlatCosine IndexKind = "flat-cos"
)

// ChunkStrategy identifies the text segmentation algorithm of a domain.
type ChunkStrategy string

const (
	// StrategyRecursive splits on a separator hierarchy with character overlap.
	StrategyRecursive ChunkStrategy = "recursive"
	// StrategySemanticCluster merges embedded segments by cluster cohesion.
	StrategySemanticCluster ChunkStrategy = "semantic-cluster"
)

// DomainConfig holds the immutable per-domain configuration.
// All fields are write-once: mutating them after documents have been
// ingested would desynchronize stored vectors from new ones.
type DomainConfig struct {
	EmbeddingDimension int
	IndexKind          IndexKind
	Strategy           ChunkStrategy
	ChunkSize          int     // maximum chunk size in characters (recursive)
	ChunkOverlap       int     // characters carried from one chunk into the next (recursive)
	ClusterThreshold   float32 // cosine distance bound for merging adjacent segments (semantic-cluster)
	ChunkMaxWords      int     // word bound per merged chunk (semantic-cluster)
	RetrievalK         int     // default number of neighbors fetched at query time
}

// Domain is an isolated knowledge base with its own metadata store,
// vector index, and immutable configuration.
type Domain struct {
	Id             ID
	Name           string // unique, case-insensitive
	Description    string
	Keywords       []string
	Config         DomainConfig
	MetadataPath   string // per-domain metadata store directory
	VectorPath     string // per-domain vector index file
	TotalDocuments uint64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DocumentFile represents one successfully ingested file.
// Hash is unique within a domain and is the deduplication key.
type DocumentFile struct {
	Id         ID
	Name       string
	Path       string
	Hash       string
	TotalPages int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ChunkMetadata carries provenance for a chunk.
type ChunkMetadata struct {
	Pages    []int // 1-based pages the chunk content was drawn from
	Indices  []int // segment indices within the document, in strategy order
	Keywords []string
}

// Chunk is a contiguous span of normalized document text stored as the
// unit of retrieval. Exactly one chunk corresponds to exactly one vector
// in the domain's index: the chunk at Offset N maps to the vector at
// position N. This positional correspondence is the central correctness
// property of the store and is guaranteed by the ingestion coordinator,
// never looked up from the index itself.
type Chunk struct {
	Id         ID
	DocumentId ID
	Offset     uint64 // position of the chunk's vector in the domain index
	Content    string // unique within a domain
	Metadata   ChunkMetadata
	InsertedAt time.Time
}

// ChunkCandidate is a chunk produced by a chunking strategy before it is
// assigned an offset and persisted.
type ChunkCandidate struct {
	Content  string
	Pages    []int
	Index    int // index within the document, in strategy order
	Keywords []string
}

// SearchHit is one vector index search result.
type SearchHit struct {
	Offset   uint64
	Distance float32
}

// ScoredChunk pairs a retrieved chunk with its query distance.
type ScoredChunk struct {
	Chunk    *Chunk
	Distance float32
}

// IngestionReport summarizes the outcome of one ingestion call.
type IngestionReport struct {
	DocumentId    ID
	ChunksWritten int
	Duplicate     bool // the file's hash already existed; nothing was written
}
