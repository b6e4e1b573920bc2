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


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// Config holds configuration for the rebuild operation.
type Config struct {
	// BatchSize is the number of chunks to embed in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of chunks)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Rebuilder reconstructs a domain's vector index from its chunk rows.
type Rebuilder struct {
	meta      storage.MetadataStore
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *ChunkIterator
}

// NewRebuilder creates a new rebuilder.
// progress: where to write progress output (typically os.Stderr)
func NewRebuilder(meta storage.MetadataStore, embedder ai.Embedder, config *Config, progress io.Writer) (*Rebuilder, error) {
	if meta == nil {
		return nil, ErrMetadataStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Rebuilder{
		meta:      meta,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewChunkIterator(meta, config.BatchSize),
	}, nil
}

// Run re-embeds every chunk row in offset order into dest and persists
// the result atomically. dest must be a freshly opened empty index;
// until Persist succeeds the previous index file on disk is untouched,
// so an interrupted rebuild loses nothing.
//
// Chunk offsets must be contiguous from zero. A gap means documents
// were deleted and the surviving rows no longer describe index
// positions; rebuilding cannot repair that.
func (r *Rebuilder) Run(ctx context.Context, dest storage.VectorIndex) error {
	if dest == nil {
		return ErrVectorIndexRequired
	}
	if dest.Len() > 0 {
		return ErrIndexNotEmpty
	}

	total, err := r.meta.CountChunks(ctx)
	if err != nil {
		return fmt.Errorf("failed to count chunk rows: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No chunk rows found (0 chunks)\n")
		return dest.Persist()
	}

	fmt.Fprintf(r.progress, "Starting rebuild of %d chunks (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, int(total), r.config.ReportInterval)
	tracker.Start()

	var processed uint64

	err = r.iterator.ForEach(ctx, func(chunks []*core.Chunk) error {
		for _, chunk := range chunks {
			if chunk.Offset != processed {
				return fmt.Errorf("%w: expected offset %d, found %d", ErrOffsetGap, processed, chunk.Offset)
			}
			processed++
		}

		vectors, err := r.processor.Process(ctx, chunks)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		if _, err := dest.Append(vectors); err != nil {
			return err
		}

		tracker.Update(int(processed))
		return nil
	})
	if err != nil {
		dest.Discard()
		return err
	}

	if err := dest.Persist(); err != nil {
		return fmt.Errorf("failed to persist rebuilt index: %w", err)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Rebuild complete. Processed %d chunks in %v (%.1f chunks/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
