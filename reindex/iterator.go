package reindex

import (
	"context"

	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

const (
	// DefaultBatchSize is the default number of chunks per batch
	DefaultBatchSize = 100
)

// ChunkIterator walks every chunk row in offset order, in batches.
type ChunkIterator struct {
	meta      storage.MetadataStore
	batchSize int
}

// NewChunkIterator creates a new chunk iterator.
// batchSize: number of chunks per batch (must be > 0)
func NewChunkIterator(meta storage.MetadataStore, batchSize int) *ChunkIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ChunkIterator{
		meta:      meta,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of chunks, ordered by offset across
// batch boundaries. Iteration stops on the first error from fn.
func (it *ChunkIterator) ForEach(ctx context.Context, fn func([]*core.Chunk) error) error {
	batch := make([]*core.Chunk, 0, it.batchSize)

	err := it.meta.ChunksInOffsetOrder(ctx, func(chunk *core.Chunk) error {
		batch = append(batch, chunk)
		if len(batch) == it.batchSize {
			if err := fn(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}
