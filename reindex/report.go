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

	"github.com/poiesic/corpus/storage"
)

// ConsistencyReport is the result of comparing a domain's chunk rows
// against its vector index.
type ConsistencyReport struct {
	ChunkRows      uint64
	IndexedVectors uint64
}

// Consistent reports whether the row count matches the index length.
func (r *ConsistencyReport) Consistent() bool {
	return r.ChunkRows == r.IndexedVectors
}

// MissingVectors returns the number of chunk rows with no vector. This
// is the signature of a partial ingestion: the relational transaction
// committed but the vector persist failed.
func (r *ConsistencyReport) MissingVectors() uint64 {
	if r.ChunkRows > r.IndexedVectors {
		return r.ChunkRows - r.IndexedVectors
	}
	return 0
}

// OrphanedVectors returns the number of vectors with no chunk row. This
// is the signature of document deletion, since vectors cannot be
// retracted from the append-only index.
func (r *ConsistencyReport) OrphanedVectors() uint64 {
	if r.IndexedVectors > r.ChunkRows {
		return r.IndexedVectors - r.ChunkRows
	}
	return 0
}

func (r *ConsistencyReport) String() string {
	if r.Consistent() {
		return fmt.Sprintf("consistent: %d chunk rows, %d vectors", r.ChunkRows, r.IndexedVectors)
	}
	return fmt.Sprintf("inconsistent: %d chunk rows, %d vectors (%d missing, %d orphaned)",
		r.ChunkRows, r.IndexedVectors, r.MissingVectors(), r.OrphanedVectors())
}

// Verify checks the cross-store consistency of a domain by comparing
// chunk row count against vector index length. A count match does not
// prove content correctness, but every known divergence mode changes
// one count and not the other.
func Verify(ctx context.Context, meta storage.MetadataStore, index storage.VectorIndex) (*ConsistencyReport, error) {
	if meta == nil {
		return nil, ErrMetadataStoreRequired
	}
	if index == nil {
		return nil, ErrVectorIndexRequired
	}

	rows, err := meta.CountChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting chunk rows: %w", err)
	}

	return &ConsistencyReport{
		ChunkRows:      rows,
		IndexedVectors: index.Len(),
	}, nil
}
