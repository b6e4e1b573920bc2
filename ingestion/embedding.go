package ingestion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/corpus/ai"
)

const embedRetryBaseDelay = 500 * time.Millisecond

// embedBatched embeds texts in batches over the worker pool. Batching is
// purely for throughput: results come back in input order, so each
// vector is a pure function of its text regardless of batch size.
func embedBatched(
	ctx context.Context,
	pool *ants.Pool,
	embedder ai.Embedder,
	texts []string,
	batchSize, maxRetries int,
) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	type batch struct {
		start int
		texts []string
	}

	var batches []batch
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, batch{start: start, texts: texts[start:end]})
	}

	vectors := make([][]float32, len(texts))
	errs := make([]error, len(batches))
	var wg sync.WaitGroup

	for i, b := range batches {
		i, b := i, b
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			var result [][]float32
			err := ai.RetryWithBackoff(ctx, func() error {
				var embedErr error
				result, embedErr = embedder.EmbedTexts(ctx, b.texts)
				return embedErr
			}, maxRetries, embedRetryBaseDelay)
			if err != nil {
				errs[i] = fmt.Errorf("%w: %w", ai.ErrUpstreamUnavailable, err)
				return
			}
			if len(result) != len(b.texts) {
				errs[i] = fmt.Errorf("embedding result mismatch. expected %d, received %d", len(b.texts), len(result))
				return
			}
			copy(vectors[b.start:], result)
		})
		if submitErr != nil {
			wg.Done()
			// Submitted batches still write into vectors and errs;
			// wait them out before the slices go back to the caller.
			wg.Wait()
			return nil, submitErr
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return vectors, nil
}
