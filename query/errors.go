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
	"errors"
	"fmt"
)

var (
	// ErrMetadataStoreRequired is returned when a metadata store is not provided.
	ErrMetadataStoreRequired = errors.New("metadata store required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuestion is returned when the question normalizes to nothing.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrEmptyDomain is returned when the domain's index holds no vectors,
	// so there is nothing to retrieve.
	ErrEmptyDomain = errors.New("domain has no indexed chunks")
)

// BrokenInvariantError reports an integrity fault: the vector index
// returned offsets for which the metadata store has no chunk rows. This
// happens when a document was deleted (its rows cascade away but its
// vectors cannot be retracted) or after a partial ingestion. The query
// is refused; the domain needs corrective re-indexing.
type BrokenInvariantError struct {
	Offsets []uint64
	Err     error
}

func (e *BrokenInvariantError) Error() string {
	return fmt.Sprintf("broken positional invariant across offsets %v: %v", e.Offsets, e.Err)
}

func (e *BrokenInvariantError) Unwrap() error {
	return e.Err
}
