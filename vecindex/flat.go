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


package vecindex

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// Flat is a brute-force positional vector index.
type Flat struct {
	mu        sync.RWMutex
	path      string
	dim       int
	kind      core.IndexKind
	published [][]float32
	staged    [][]float32
	closed    bool
}

var _ storage.VectorIndex = (*Flat)(nil)

// Open opens the index file at path, or starts an empty index if the
// file doesn't exist yet. An empty path keeps the index memory-only,
// which is intended for testing.
func Open(path string, dim int, kind core.IndexKind) (*Flat, error) {
	idx, err := Create(path, dim, kind)
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else {
			vectors, err := decodeIndexFile(data, dim, kind)
			if err != nil {
				return nil, fmt.Errorf("reading index %s: %w", path, err)
			}
			idx.published = vectors
		}
	}

	return idx, nil
}

// Create opens an empty index at path without loading any existing
// file. Nothing on disk is touched until Persist, which atomically
// replaces whatever is there. This is the rebuild entry point: the old
// index file stays readable until the new one is complete.
func Create(path string, dim int, kind core.IndexKind) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidDimension, dim)
	}
	switch kind {
	case core.IndexFlatL2, core.IndexFlatCosine:
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidIndexKind, kind)
	}

	return &Flat{
		path: path,
		dim:  dim,
		kind: kind,
	}, nil
}

// Append stages vectors for the next Persist and returns the offset the
// first staged vector will occupy once published.
func (f *Flat) Append(vectors [][]float32) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, storage.ErrStorageClosed
	}

	for _, vec := range vectors {
		if len(vec) != f.dim {
			return 0, fmt.Errorf("%w: got %d, index has %d", storage.ErrDimensionMismatch, len(vec), f.dim)
		}
	}

	start := uint64(len(f.published) + len(f.staged))
	for _, vec := range vectors {
		f.staged = append(f.staged, append([]float32(nil), vec...))
	}
	return start, nil
}

// Persist publishes staged vectors and writes the whole index to stable
// storage atomically. On error the staged vectors are dropped and the
// published state is unchanged.
func (f *Flat) Persist() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return storage.ErrStorageClosed
	}

	if f.path != "" {
		all := make([][]float32, 0, len(f.published)+len(f.staged))
		all = append(all, f.published...)
		all = append(all, f.staged...)

		if err := writeIndexFile(f.path, all, f.dim, f.kind); err != nil {
			f.staged = nil
			return err
		}
	}

	f.published = append(f.published, f.staged...)
	f.staged = nil
	return nil
}

// Discard drops staged vectors without publishing them.
func (f *Flat) Discard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged = nil
}

// Search returns the k nearest published vectors to the query, ordered
// by non-decreasing distance. Ties break toward the lower offset.
func (f *Flat) Search(query []float32, k int) ([]core.SearchHit, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return nil, storage.ErrStorageClosed
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query has %d, index has %d", storage.ErrDimensionMismatch, len(query), f.dim)
	}
	if k <= 0 || len(f.published) == 0 {
		return nil, nil
	}

	hits := make([]core.SearchHit, len(f.published))
	for i, vec := range f.published {
		hits[i] = core.SearchHit{
			Offset:   uint64(i),
			Distance: f.distance(query, vec),
		}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Offset < hits[b].Offset
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of published vectors.
func (f *Flat) Len() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint64(len(f.published))
}

// Dimension returns the fixed vector dimension.
func (f *Flat) Dimension() int {
	return f.dim
}

// Kind returns the index distance kind.
func (f *Flat) Kind() core.IndexKind {
	return f.kind
}

// Close marks the index closed. Staged vectors are not persisted.
func (f *Flat) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.staged = nil
	return nil
}

func (f *Flat) distance(query, vec []float32) float32 {
	if f.kind == core.IndexFlatCosine {
		return cosineDistance(query, vec)
	}
	return l2SquaredDistance(query, vec)
}
