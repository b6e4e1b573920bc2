package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/ai/mock"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
	"github.com/poiesic/corpus/storage/badger"
	"github.com/poiesic/corpus/vecindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 4

// queryFixture is a domain seeded with chunks whose vectors lie on the
// first axis at x = offset, so a zero query vector ranks offsets in
// ascending order.
type queryFixture struct {
	meta     storage.MetadataStore
	index    *vecindex.Flat
	provider ai.AIProvider
	doc      *core.DocumentFile
}

func newQueryFixture(t *testing.T, chunkCount int) *queryFixture {
	t.Helper()

	meta, backend, err := badger.NewMemoryMetadataStore()
	require.NoError(t, err)

	index, err := vecindex.Open("", testDim, core.IndexFlatL2)
	require.NoError(t, err)

	t.Cleanup(func() {
		index.Close()
		meta.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedderWithDim(testDim)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return make([]float32, testDim), nil
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

	f := &queryFixture{meta: meta, index: index, provider: provider}
	if chunkCount > 0 {
		f.seed(t, chunkCount)
	}
	return f
}

func (f *queryFixture) seed(t *testing.T, chunkCount int) {
	t.Helper()
	ctx := context.Background()

	vectors := make([][]float32, chunkCount)
	chunks := make([]*core.Chunk, chunkCount)
	for i := 0; i < chunkCount; i++ {
		vec := make([]float32, testDim)
		vec[0] = float32(i)
		vectors[i] = vec
		chunks[i] = &core.Chunk{
			Offset:  uint64(i),
			Content: fmt.Sprintf("indexed passage number %d", i),
			Metadata: core.ChunkMetadata{
				Pages:   []int{1},
				Indices: []int{i},
			},
		}
	}

	start, err := f.index.Append(vectors)
	require.NoError(t, err)
	require.Zero(t, start)
	require.NoError(t, f.index.Persist())

	f.doc = &core.DocumentFile{
		Name:       "seed.txt",
		Path:       "/docs/seed.txt",
		Hash:       "seed-hash",
		TotalPages: 1,
	}
	require.NoError(t, f.meta.AddDocument(ctx, f.doc, chunks))
}

func TestNewCoordinator(t *testing.T) {
	f := newQueryFixture(t, 0)

	t.Run("valid configuration", func(t *testing.T) {
		coordinator, err := NewCoordinator(f.meta, f.index, f.provider)
		require.NoError(t, err)
		assert.NotNil(t, coordinator)
	})

	t.Run("nil metadata store", func(t *testing.T) {
		_, err := NewCoordinator(nil, f.index, f.provider)
		assert.Equal(t, ErrMetadataStoreRequired, err)
	})

	t.Run("nil vector index", func(t *testing.T) {
		_, err := NewCoordinator(f.meta, nil, f.provider)
		assert.Equal(t, ErrVectorIndexRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewCoordinator(f.meta, f.index, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestQueryRankedRetrieval(t *testing.T) {
	f := newQueryFixture(t, 10)
	ctx := context.Background()

	coordinator, err := NewCoordinator(f.meta, f.index, f.provider, WithRetrievalK(3))
	require.NoError(t, err)

	result, err := coordinator.Query(ctx, "What do the passages say?")
	require.NoError(t, err)
	require.Len(t, result.Chunks, 3)

	for i, scored := range result.Chunks {
		// Zero query against vectors at x = offset: rank order is offset order
		assert.Equal(t, uint64(i), scored.Chunk.Offset)
		if i > 0 {
			assert.GreaterOrEqual(t, scored.Distance, result.Chunks[i-1].Distance)
		}

		row, err := f.meta.GetChunksByOffsets(ctx, scored.Chunk.Offset)
		require.NoError(t, err)
		assert.Equal(t, row[0].Content, scored.Chunk.Content)
		assert.Contains(t, result.Context, scored.Chunk.Content)
	}

	assert.NotEmpty(t, result.Answer)
}

func TestQueryEmptyDomain(t *testing.T) {
	f := newQueryFixture(t, 0)

	coordinator, err := NewCoordinator(f.meta, f.index, f.provider)
	require.NoError(t, err)

	_, err = coordinator.Query(context.Background(), "anything indexed?")
	assert.ErrorIs(t, err, ErrEmptyDomain)
}

func TestQueryEmptyQuestion(t *testing.T) {
	f := newQueryFixture(t, 3)

	coordinator, err := NewCoordinator(f.meta, f.index, f.provider)
	require.NoError(t, err)

	_, err = coordinator.Query(context.Background(), "   \t\n ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestQueryDimensionMismatch(t *testing.T) {
	f := newQueryFixture(t, 3)

	embedder := mock.NewMockEmbedderWithDim(testDim)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 2}, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

	coordinator, err := NewCoordinator(f.meta, f.index, provider)
	require.NoError(t, err)

	_, err = coordinator.Query(context.Background(), "wrong model?")
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
}

func TestQueryBrokenInvariantAfterDelete(t *testing.T) {
	f := newQueryFixture(t, 5)
	ctx := context.Background()

	// Deleting the document cascades its chunk rows away, but the vectors
	// cannot be retracted from the append-only index
	require.NoError(t, f.meta.DeleteDocument(ctx, f.doc.Id))
	assert.Equal(t, uint64(5), f.index.Len())

	coordinator, err := NewCoordinator(f.meta, f.index, f.provider)
	require.NoError(t, err)

	_, err = coordinator.Query(ctx, "anything left?")
	require.Error(t, err)

	var broken *BrokenInvariantError
	require.ErrorAs(t, err, &broken)
	assert.NotEmpty(t, broken.Offsets)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestQueryGeneratorFailure(t *testing.T) {
	f := newQueryFixture(t, 3)

	embedder := mock.NewMockEmbedderWithDim(testDim)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return make([]float32, testDim), nil
	}
	generator := mock.NewMockGenerator()
	generator.GenerateAnswerFunc = func(ctx context.Context, contextText, question string) (string, error) {
		return "", errors.New("model not loaded")
	}
	provider := mock.NewMockProviderWithServices(embedder, generator)

	coordinator, err := NewCoordinator(f.meta, f.index, provider, WithMaxRetries(1))
	require.NoError(t, err)

	_, err = coordinator.Query(context.Background(), "still there?")
	assert.ErrorIs(t, err, ai.ErrUpstreamUnavailable)
}

// recordingMonitor captures the stages of one query.
type recordingMonitor struct {
	stages []string
	hits   []core.SearchHit
}

func (m *recordingMonitor) Start(_ string)             { m.stages = append(m.stages, "start") }
func (m *recordingMonitor) AfterEmbedding(_ []float32) { m.stages = append(m.stages, "embed") }
func (m *recordingMonitor) AfterSearch(hits []core.SearchHit) {
	m.stages = append(m.stages, "search")
	m.hits = hits
}
func (m *recordingMonitor) AfterChunkRetrieval(_ []core.ScoredChunk) {
	m.stages = append(m.stages, "retrieve")
}
func (m *recordingMonitor) Finish(_ *Result) { m.stages = append(m.stages, "finish") }

func TestQueryWithMonitor(t *testing.T) {
	f := newQueryFixture(t, 5)

	coordinator, err := NewCoordinator(f.meta, f.index, f.provider, WithRetrievalK(2))
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	_, err = coordinator.QueryWithMonitor(context.Background(), "observed?", monitor)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "embed", "search", "retrieve", "finish"}, monitor.stages)
	assert.Len(t, monitor.hits, 2)
}

func TestAssembleContext(t *testing.T) {
	chunks := []core.ScoredChunk{
		{Chunk: &core.Chunk{Content: "first passage", Metadata: core.ChunkMetadata{Pages: []int{1}}}},
		{Chunk: &core.Chunk{Content: "second passage", Metadata: core.ChunkMetadata{Pages: []int{2, 3}}}},
	}

	text := assembleContext(chunks)
	assert.Contains(t, text, "[excerpt 1, page 1]")
	assert.Contains(t, text, "[excerpt 2, pages 2-3]")
	assert.True(t, strings.Index(text, "first passage") < strings.Index(text, "second passage"))
}
