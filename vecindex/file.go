package vecindex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

const (
	indexFileMagic   = "corpus-vecindex"
	indexFileVersion = 1
)

// encodeIndexFile serializes the index header and vector payload.
func encodeIndexFile(vectors [][]float32, dim int, kind core.IndexKind) []byte {
	size := ord.String.Size(indexFileMagic) +
		varint.Int.Size(indexFileVersion) +
		core.IndexKindMUS.Size(kind) +
		varint.Int.Size(dim) +
		varint.Uint64.Size(uint64(len(vectors))) +
		len(vectors)*dim*raw.Float32.Size(0)

	buf := make([]byte, size)
	n := ord.String.Marshal(indexFileMagic, buf)
	n += varint.Int.Marshal(indexFileVersion, buf[n:])
	n += core.IndexKindMUS.Marshal(kind, buf[n:])
	n += varint.Int.Marshal(dim, buf[n:])
	n += varint.Uint64.Marshal(uint64(len(vectors)), buf[n:])
	for _, vec := range vectors {
		for _, v := range vec {
			n += raw.Float32.Marshal(v, buf[n:])
		}
	}
	return buf[:n]
}

// decodeIndexFile parses an index file and validates its header against
// the expected dimension and kind.
func decodeIndexFile(data []byte, dim int, kind core.IndexKind) ([][]float32, error) {
	magic, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	if magic != indexFileMagic {
		return nil, fmt.Errorf("%w: not an index file", storage.ErrSerializationFailed)
	}

	version, n1, err := varint.Int.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	if version != indexFileVersion {
		return nil, fmt.Errorf("%w: unsupported index version %d", storage.ErrSerializationFailed, version)
	}

	fileKind, n1, err := core.IndexKindMUS.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	if fileKind != kind {
		return nil, fmt.Errorf("%w: index kind %q, expected %q", core.ErrInvalidIndexKind, fileKind, kind)
	}

	fileDim, n1, err := varint.Int.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	if fileDim != dim {
		return nil, fmt.Errorf("%w: index has %d, expected %d", storage.ErrDimensionMismatch, fileDim, dim)
	}

	count, n1, err := varint.Uint64.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	vectors := make([][]float32, 0, count)
	for i := uint64(0); i < count; i++ {
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			v, n1, err := raw.Float32.Unmarshal(data[n:])
			n += n1
			if err != nil {
				return nil, fmt.Errorf("%w: vector %d", storage.ErrTruncatedData, i)
			}
			vec[j] = v
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

// writeIndexFile writes the index atomically: serialize to a temp file
// in the same directory, fsync, then rename over the target.
func writeIndexFile(path string, vectors [][]float32, dim int, kind core.IndexKind) error {
	data := encodeIndexFile(vectors, dim, kind)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
