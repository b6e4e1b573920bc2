package reindex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/corpus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkIteratorBatching(t *testing.T) {
	meta := newTestStore(t)
	ctx := context.Background()

	contents := make([]string, 7)
	for i := range contents {
		contents[i] = fmt.Sprintf("iterated passage %d", i)
	}
	addDocumentRows(t, meta, "doc.txt", "h1", 0, contents...)

	iterator := NewChunkIterator(meta, 3)

	var batchSizes []int
	var seen []uint64
	err := iterator.ForEach(ctx, func(chunks []*core.Chunk) error {
		batchSizes = append(batchSizes, len(chunks))
		for _, chunk := range chunks {
			seen = append(seen, chunk.Offset)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 3, 1}, batchSizes)
	assert.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6}, seen)
}

func TestChunkIteratorEmptyStore(t *testing.T) {
	meta := newTestStore(t)

	iterator := NewChunkIterator(meta, 10)
	called := false
	err := iterator.ForEach(context.Background(), func([]*core.Chunk) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestChunkIteratorStopsOnError(t *testing.T) {
	meta := newTestStore(t)
	addDocumentRows(t, meta, "doc.txt", "h1", 0, "stop passage a", "stop passage b", "stop passage c")

	iterator := NewChunkIterator(meta, 1)
	wantErr := errors.New("stop here")

	calls := 0
	err := iterator.ForEach(context.Background(), func([]*core.Chunk) error {
		calls++
		if calls == 2 {
			return wantErr
		}
		return nil
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, calls)
}

func TestChunkIteratorDefaultBatchSize(t *testing.T) {
	meta := newTestStore(t)
	iterator := NewChunkIterator(meta, 0)
	assert.Equal(t, DefaultBatchSize, iterator.batchSize)
}
