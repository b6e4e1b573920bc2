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


package storage

import (
	"github.com/poiesic/corpus/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDomain serializes a Domain to bytes.
func MarshalDomain(domain *core.Domain) []byte {
	buf := make([]byte, core.DomainMUS.Size(*domain))
	core.DomainMUS.Marshal(*domain, buf)
	return buf
}

// UnmarshalDomain deserializes a Domain from bytes.
func UnmarshalDomain(data []byte) (*core.Domain, error) {
	domain, _, err := core.DomainMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &domain, nil
}

// MarshalDocumentFile serializes a DocumentFile to bytes.
func MarshalDocumentFile(file *core.DocumentFile) []byte {
	buf := make([]byte, core.DocumentFileMUS.Size(*file))
	core.DocumentFileMUS.Marshal(*file, buf)
	return buf
}

// UnmarshalDocumentFile deserializes a DocumentFile from bytes.
func UnmarshalDocumentFile(data []byte) (*core.DocumentFile, error) {
	file, _, err := core.DocumentFileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	buf := make([]byte, core.ChunkMUS.Size(*chunk))
	core.ChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk, _, err := core.ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}
