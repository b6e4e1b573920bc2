package chunking

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/corpus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recursiveConfig(size, overlap int) core.DomainConfig {
	return core.DomainConfig{
		EmbeddingDimension: 8,
		IndexKind:          core.IndexFlatL2,
		Strategy:           core.StrategyRecursive,
		ChunkSize:          size,
		ChunkOverlap:       overlap,
		RetrievalK:         3,
	}
}

func TestRecursiveOverlapEquality(t *testing.T) {
	// 3000 characters of continuous prose, no paragraph breaks
	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet. ", 108))[:3000]

	chunker, err := New(recursiveConfig(1000, 200), nil)
	require.NoError(t, err)

	candidates, err := chunker.Chunk(context.Background(), []string{text})
	require.NoError(t, err)
	require.Greater(t, len(candidates), 1)

	for i := 0; i < len(candidates)-1; i++ {
		curr := []rune(candidates[i].Content)
		next := []rune(candidates[i+1].Content)
		require.GreaterOrEqual(t, len(curr), 200)

		// The tail of chunk N is exactly the head of chunk N+1
		tail := string(curr[len(curr)-200:])
		head := string(next[:200])
		assert.Equal(t, tail, head, "overlap mismatch between chunk %d and %d", i, i+1)
	}

	// The final chunk ends exactly where the input ends
	last := candidates[len(candidates)-1].Content
	assert.True(t, strings.HasSuffix(text, last))

	// No chunk exceeds the configured size
	for _, c := range candidates {
		assert.LessOrEqual(t, len([]rune(c.Content)), 1000)
	}
}

func TestRecursiveDeterministic(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 60)
	chunker, err := New(recursiveConfig(500, 100), nil)
	require.NoError(t, err)

	first, err := chunker.Chunk(context.Background(), []string{text})
	require.NoError(t, err)
	second, err := chunker.Chunk(context.Background(), []string{text})
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content)
		assert.Equal(t, first[i].Index, i)
	}
}

func TestRecursiveShortInput(t *testing.T) {
	chunker, err := New(recursiveConfig(1000, 200), nil)
	require.NoError(t, err)

	candidates, err := chunker.Chunk(context.Background(), []string{"a short document."})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a short document.", candidates[0].Content)
	assert.Equal(t, []int{1}, candidates[0].Pages)
}

func TestRecursiveEmptyInput(t *testing.T) {
	chunker, err := New(recursiveConfig(1000, 200), nil)
	require.NoError(t, err)

	candidates, err := chunker.Chunk(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = chunker.Chunk(context.Background(), []string{"   "})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRecursivePageProvenance(t *testing.T) {
	pageA := strings.Repeat("alpha beta gamma delta. ", 20) // 480 runes
	pageB := strings.Repeat("epsilon zeta eta theta. ", 20)

	chunker, err := New(recursiveConfig(400, 50), nil)
	require.NoError(t, err)

	candidates, err := chunker.Chunk(context.Background(), []string{pageA, pageB})
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	// First chunk lies entirely in page 1, last entirely in page 2
	assert.Equal(t, []int{1}, candidates[0].Pages)
	assert.Equal(t, []int{2}, candidates[len(candidates)-1].Pages)

	// Some chunk straddles the page boundary
	var straddles bool
	for _, c := range candidates {
		if len(c.Pages) == 2 {
			straddles = true
		}
	}
	assert.True(t, straddles)
}

func TestRecursivePrefersSentenceBoundaries(t *testing.T) {
	text := strings.Repeat("one two three four five six seven eight nine ten. ", 10)
	chunker, err := New(recursiveConfig(120, 20), nil)
	require.NoError(t, err)

	candidates, err := chunker.Chunk(context.Background(), []string{text})
	require.NoError(t, err)
	require.Greater(t, len(candidates), 1)

	// Every chunk but the last should end just after a sentence terminator
	for _, c := range candidates[:len(candidates)-1] {
		trimmed := strings.TrimRight(c.Content, " ")
		assert.True(t, strings.HasSuffix(trimmed, "."), "chunk does not end at a sentence boundary: %q", c.Content)
	}
}
