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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDomain indicates a Domain failed validation.
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrInvalidDomainConfig indicates a DomainConfig failed validation.
	ErrInvalidDomainConfig = errors.New("invalid domain config")

	// ErrInvalidDocument indicates a DocumentFile failed validation.
	ErrInvalidDocument = errors.New("invalid document file")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyDomainName indicates the domain Name field is empty.
	ErrEmptyDomainName = errors.New("domain name cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyHash indicates the document Hash field is empty.
	ErrEmptyHash = errors.New("document hash cannot be empty")

	// ErrInvalidDimension indicates a non-positive embedding dimension.
	ErrInvalidDimension = errors.New("embedding dimension must be positive")

	// ErrInvalidIndexKind indicates an unknown IndexKind value.
	ErrInvalidIndexKind = errors.New("invalid index kind")

	// ErrInvalidStrategy indicates an unknown ChunkStrategy value.
	ErrInvalidStrategy = errors.New("invalid chunking strategy")

	// ErrInvalidChunkBounds indicates inconsistent chunk size or overlap.
	ErrInvalidChunkBounds = errors.New("chunk overlap must be non-negative and smaller than chunk size")
)
