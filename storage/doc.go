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


// Package storage provides the storage abstraction layer for corpus.
//
// This package defines the interfaces that decouple storage implementations
// from coordination logic. A domain is backed by two independent engines
// that do not share a transaction boundary:
//
//   - MetadataStore: transactional per-domain store for document and chunk
//     records (implemented by storage/badger)
//   - VectorIndex: append-only positional index over fixed-dimension
//     vectors (implemented by vecindex)
//
// plus the DomainRegistry control store cataloging domains.
//
// The split is deliberate: the vector index supports only append, and its
// vectors are addressed by positional offset rather than a stable key.
// Keeping the two stores consistent is the ingestion coordinator's job;
// nothing in this package attempts to hide the missing shared transaction.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return these interfaces
// to enforce abstraction and enable alternative backends:
//
//	store, err := badger.NewMetadataStore(backend)  // returns storage.MetadataStore
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
