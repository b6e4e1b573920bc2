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


package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

const (
	defaultRetrievalK = 3
	defaultMaxRetries = 3

	generateRetryBaseDelay = 500 * time.Millisecond
)

// Result is the outcome of one query: the generated answer, the context
// block it was grounded on, and the retrieved chunks in rank order.
type Result struct {
	Answer  string
	Context string
	Chunks  []core.ScoredChunk
}

// Coordinator runs the retrieval path for one domain.
type Coordinator struct {
	meta       storage.MetadataStore
	index      storage.VectorIndex
	embedder   ai.Embedder
	generator  ai.Generator
	retrievalK int
	maxRetries int
	logger     *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithRetrievalK sets the number of nearest chunks fetched per query.
// Default is 3.
func WithRetrievalK(k int) Option {
	return func(c *Coordinator) error {
		if k < 1 {
			k = 1
		}
		c.retrievalK = k
		return nil
	}
}

// WithMaxRetries sets the retry budget for collaborator calls.
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

// NewCoordinator creates a query coordinator over the domain's two
// stores and its AI provider.
func NewCoordinator(
	meta storage.MetadataStore,
	index storage.VectorIndex,
	provider ai.AIProvider,
	opts ...Option,
) (*Coordinator, error) {
	if meta == nil {
		return nil, ErrMetadataStoreRequired
	}
	if index == nil {
		return nil, ErrVectorIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	c := &Coordinator{
		meta:       meta,
		index:      index,
		embedder:   provider.Embedder(),
		generator:  provider.Generator(),
		retrievalK: defaultRetrievalK,
		maxRetries: defaultMaxRetries,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Query answers the question from the domain's indexed chunks.
func (c *Coordinator) Query(ctx context.Context, question string) (*Result, error) {
	return c.QueryWithMonitor(ctx, question, nil)
}

// QueryWithMonitor answers the question with monitoring.
// The monitor receives callbacks at each stage of the query process.
//
// The question goes through the same normalization pipeline used at
// ingestion; an asymmetry there would silently degrade recall. Every
// call either returns ranked, grounded context or an explicit error,
// never a silently empty or fabricated answer.
func (c *Coordinator) QueryWithMonitor(ctx context.Context, question string, monitor QueryMonitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(question)

	normalized := core.Normalize(question)
	if normalized == "" {
		return nil, ErrEmptyQuestion
	}

	if c.index.Len() == 0 {
		return nil, ErrEmptyDomain
	}

	vector, err := c.embedder.EmbedText(ctx, normalized)
	if err != nil {
		c.logger.Error("error embedding question", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrUpstreamUnavailable, err)
	}
	if len(vector) != c.index.Dimension() {
		return nil, fmt.Errorf("%w: question embedded to %d, index has %d",
			storage.ErrDimensionMismatch, len(vector), c.index.Dimension())
	}
	monitor.AfterEmbedding(vector)

	hits, err := c.index.Search(vector, c.retrievalK)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, ErrEmptyDomain
	}
	monitor.AfterSearch(hits)

	offsets := make([]uint64, len(hits))
	for i, hit := range hits {
		offsets[i] = hit.Offset
	}

	// The positional invariant in reverse: every offset the index hands
	// back must have a chunk row. A gap means the domain is inconsistent
	// and the query is refused.
	chunks, err := c.meta.GetChunksByOffsets(ctx, offsets...)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.logger.Error("vector offset has no chunk row", "offsets", offsets, "err", err)
			return nil, &BrokenInvariantError{Offsets: offsets, Err: err}
		}
		return nil, err
	}

	scored := make([]core.ScoredChunk, len(chunks))
	for i, chunk := range chunks {
		scored[i] = core.ScoredChunk{Chunk: chunk, Distance: hits[i].Distance}
	}
	monitor.AfterChunkRetrieval(scored)

	contextText := assembleContext(scored)

	var answer string
	err = ai.RetryWithBackoff(ctx, func() error {
		var genErr error
		answer, genErr = c.generator.GenerateAnswer(ctx, contextText, question)
		return genErr
	}, c.maxRetries, generateRetryBaseDelay)
	if err != nil {
		c.logger.Error("error generating answer", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrUpstreamUnavailable, err)
	}

	result := &Result{
		Answer:  answer,
		Context: contextText,
		Chunks:  scored,
	}
	monitor.Finish(result)

	return result, nil
}
