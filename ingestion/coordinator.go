// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/chunking"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/extract"
	"github.com/poiesic/corpus/storage"
)

const (
	defaultBatchSize  = 32
	defaultMaxRetries = 3
)

// Coordinator orchestrates document ingestion for one domain.
type Coordinator struct {
	meta       storage.MetadataStore
	index      storage.VectorIndex
	extractor  extract.Extractor
	chunker    chunking.Chunker
	embedder   ai.Embedder
	pool       *ants.Pool
	batchSize  int
	maxRetries int
	busy       sync.Mutex
	logger     *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithPoolSize sets the worker pool size for embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(c *Coordinator) error {
		if size < 1 {
			size = 1
		}
		if c.pool != nil {
			c.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		c.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of chunk texts per embedding request.
func WithBatchSize(size int) Option {
	return func(c *Coordinator) error {
		if size < 1 {
			size = 1
		}
		c.batchSize = size
		return nil
	}
}

// WithMaxRetries sets the retry budget for embedding calls.
func WithMaxRetries(retries int) Option {
	return func(c *Coordinator) error {
		if retries < 1 {
			retries = 1
		}
		c.maxRetries = retries
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCoordinator creates an ingestion coordinator over the domain's two
// stores and its collaborators.
func NewCoordinator(
	meta storage.MetadataStore,
	index storage.VectorIndex,
	extractor extract.Extractor,
	chunker chunking.Chunker,
	embedder ai.Embedder,
	opts ...Option,
) (*Coordinator, error) {
	if meta == nil {
		return nil, ErrMetadataStoreRequired
	}
	if index == nil {
		return nil, ErrVectorIndexRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		meta:       meta,
		index:      index,
		extractor:  extractor,
		chunker:    chunker,
		embedder:   embedder,
		pool:       pool,
		batchSize:  defaultBatchSize,
		maxRetries: defaultMaxRetries,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.Release()
			return nil, optErr
		}
	}

	return c, nil
}

// Release releases the worker pool.
// The coordinator should not be used after calling Release.
func (c *Coordinator) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}

// Ingest runs the full pipeline for one document: dedupe, extract,
// normalize, chunk, embed, and the atomic append across both stores.
//
// Failure semantics follow the two-phase append: everything before the
// relational commit rolls back completely. A failure persisting the
// vector index after the commit returns *PartialIngestionError; the
// committed rows are intentionally left in place so the inconsistency
// is detectable and repairable rather than hidden.
func (c *Coordinator) Ingest(ctx context.Context, name, path string, data []byte) (*core.IngestionReport, error) {
	if !c.busy.TryLock() {
		return nil, ErrDomainBusy
	}
	defer c.busy.Unlock()

	hash := core.HashContent(data)

	existing, err := c.meta.FindDocumentByHash(ctx, hash)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		c.logger.Info("document already ingested", "name", name, "documentId", existing.Id)
		return &core.IngestionReport{DocumentId: existing.Id, Duplicate: true}, nil
	}

	pages, err := c.extractor.Extract(ctx, name, data)
	if err != nil {
		return nil, err
	}
	normalized := core.NormalizePages(pages)

	candidates, err := c.chunker.Chunk(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoChunks
	}

	texts := make([]string, len(candidates))
	for i, cand := range candidates {
		texts[i] = cand.Content
	}

	vectors, err := embedBatched(ctx, c.pool, c.embedder, texts, c.batchSize, c.maxRetries)
	if err != nil {
		return nil, err
	}

	// Stage vectors first: Append validates dimensions and hands out the
	// offsets the chunk rows must carry. Staged vectors are invisible to
	// readers and discardable until Persist, so the relational commit
	// below stays the single decision point.
	start, err := c.index.Append(vectors)
	if err != nil {
		return nil, err
	}

	doc := &core.DocumentFile{
		Name:       name,
		Path:       path,
		Hash:       hash,
		TotalPages: len(pages),
	}
	chunks := make([]*core.Chunk, len(candidates))
	for i, cand := range candidates {
		chunks[i] = &core.Chunk{
			Offset:  start + uint64(i),
			Content: cand.Content,
			Metadata: core.ChunkMetadata{
				Pages:    cand.Pages,
				Indices:  []int{cand.Index},
				Keywords: cand.Keywords,
			},
		}
	}

	if err := c.meta.AddDocument(ctx, doc, chunks); err != nil {
		c.index.Discard()
		return nil, err
	}

	if err := c.index.Persist(); err != nil {
		c.logger.Error("vector persist failed after relational commit",
			"documentId", doc.Id, "chunks", len(chunks), "err", err)
		return nil, &PartialIngestionError{
			DocumentId:      doc.Id,
			ChunksCommitted: len(chunks),
			Err:             err,
		}
	}

	c.logger.Info("document ingested",
		"name", name, "documentId", doc.Id, "chunks", len(chunks), "pages", len(pages))

	return &core.IngestionReport{
		DocumentId:    doc.Id,
		ChunksWritten: len(chunks),
	}, nil
}
