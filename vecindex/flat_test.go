package vecindex

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendStagesUntilPersist(t *testing.T) {
	idx, err := Open("", 3, core.IndexFlatL2)
	require.NoError(t, err)
	defer idx.Close()

	start, err := idx.Append([][]float32{
		{1, 0, 0},
		{0, 1, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), start)

	// Staged vectors are not searchable yet
	assert.Equal(t, uint64(0), idx.Len())
	hits, err := idx.Search([]float32{1, 0, 0}, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, idx.Persist())

	assert.Equal(t, uint64(2), idx.Len())
	hits, err = idx.Search([]float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, uint64(0), hits[0].Offset)
}

func TestAppendOffsetsAcrossBatches(t *testing.T) {
	idx, err := Open("", 2, core.IndexFlatL2)
	require.NoError(t, err)
	defer idx.Close()

	start, err := idx.Append([][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), start)

	// A second staged batch continues from the staged tail
	start, err = idx.Append([][]float32{{1, 1}})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), start)

	require.NoError(t, idx.Persist())

	start, err = idx.Append([][]float32{{2, 2}})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), start)
}

func TestSearchOrderedByDistance(t *testing.T) {
	idx, err := Open("", 2, core.IndexFlatL2)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Append([][]float32{
		{10, 0}, // offset 0, far
		{1, 0},  // offset 1, near
		{3, 0},  // offset 2, middle
	})
	require.NoError(t, err)
	require.NoError(t, idx.Persist())

	hits, err := idx.Search([]float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, uint64(1), hits[0].Offset)
	assert.Equal(t, uint64(2), hits[1].Offset)
	assert.Equal(t, uint64(0), hits[2].Offset)
	assert.InDelta(t, 1.0, hits[0].Distance, 0.0001)
	assert.InDelta(t, 9.0, hits[1].Distance, 0.0001)
	assert.InDelta(t, 100.0, hits[2].Distance, 0.0001)

	// k larger than the index clamps
	hits, err = idx.Search([]float32{0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestSearchCosine(t *testing.T) {
	idx, err := Open("", 2, core.IndexFlatCosine)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Append([][]float32{
		{0, 1},   // orthogonal
		{-1, 0},  // opposite
		{5, 0.1}, // nearly parallel
	})
	require.NoError(t, err)
	require.NoError(t, idx.Persist())

	hits, err := idx.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	// Cosine distance is insensitive to magnitude
	assert.Equal(t, uint64(2), hits[0].Offset)
	assert.Equal(t, uint64(0), hits[1].Offset)
	assert.Equal(t, uint64(1), hits[2].Offset)
	assert.InDelta(t, 1.0, hits[1].Distance, 0.0001)
	assert.InDelta(t, 2.0, hits[2].Distance, 0.0001)
}

func TestDimensionMismatch(t *testing.T) {
	idx, err := Open("", 3, core.IndexFlatL2)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Append([][]float32{{1, 0}})
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)

	_, err = idx.Search([]float32{1, 0}, 1)
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
}

func TestDiscard(t *testing.T) {
	idx, err := Open("", 2, core.IndexFlatL2)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Append([][]float32{{1, 0}})
	require.NoError(t, err)

	idx.Discard()
	require.NoError(t, idx.Persist())

	assert.Equal(t, uint64(0), idx.Len())
}

func TestPersistAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.idx")

	idx, err := Open(path, 2, core.IndexFlatL2)
	require.NoError(t, err)

	_, err = idx.Append([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.NoError(t, idx.Persist())
	require.NoError(t, idx.Close())

	reopened, err := Open(path, 2, core.IndexFlatL2)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, uint64(2), reopened.Len())

	hits, err := reopened.Search([]float32{1, 2}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, uint64(0), hits[0].Offset)
	assert.InDelta(t, 0.0, hits[0].Distance, 0.0001)
}

func TestOpenRejectsMismatchedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.idx")

	idx, err := Open(path, 2, core.IndexFlatL2)
	require.NoError(t, err)
	_, err = idx.Append([][]float32{{1, 2}})
	require.NoError(t, err)
	require.NoError(t, idx.Persist())
	require.NoError(t, idx.Close())

	_, err = Open(path, 3, core.IndexFlatL2)
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)

	_, err = Open(path, 2, core.IndexFlatCosine)
	assert.ErrorIs(t, err, core.ErrInvalidIndexKind)
}

func TestPersistFailureDropsStaged(t *testing.T) {
	idx, err := Open("", 2, core.IndexFlatL2)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Append([][]float32{{1, 0}})
	require.NoError(t, err)
	require.NoError(t, idx.Persist())

	// Point the index at an unwritable location
	idx.path = filepath.Join(t.TempDir(), "missing", "vectors.idx")

	_, err = idx.Append([][]float32{{0, 1}})
	require.NoError(t, err)

	err = idx.Persist()
	require.Error(t, err)

	// Published state survives, staged vectors are gone
	assert.Equal(t, uint64(1), idx.Len())
	require.NoError(t, func() error { idx.path = ""; return idx.Persist() }())
	assert.Equal(t, uint64(1), idx.Len())
}

func TestClosedIndex(t *testing.T) {
	idx, err := Open("", 2, core.IndexFlatL2)
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	_, err = idx.Append([][]float32{{1, 0}})
	assert.True(t, errors.Is(err, storage.ErrStorageClosed))

	_, err = idx.Search([]float32{1, 0}, 1)
	assert.True(t, errors.Is(err, storage.ErrStorageClosed))

	assert.ErrorIs(t, idx.Persist(), storage.ErrStorageClosed)
}
