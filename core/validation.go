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

import "fmt"

// ValidateDomainConfig validates a DomainConfig according to domain rules.
//
// Validation rules:
//   - EmbeddingDimension must be positive
//   - IndexKind must be a known kind
//   - Strategy must be a known strategy
//   - ChunkOverlap must be non-negative and smaller than ChunkSize
//   - ClusterThreshold and ChunkMaxWords must be positive for the
//     semantic-cluster strategy
func ValidateDomainConfig(config *DomainConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidDomainConfig)
	}

	if config.EmbeddingDimension <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDomainConfig, ErrInvalidDimension)
	}

	switch config.IndexKind {
	case IndexFlatL2, IndexFlatCosine:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidDomainConfig, ErrInvalidIndexKind, config.IndexKind)
	}

	switch config.Strategy {
	case StrategyRecursive:
		if config.ChunkSize <= 0 || config.ChunkOverlap < 0 || config.ChunkOverlap >= config.ChunkSize {
			return fmt.Errorf("%w: %w", ErrInvalidDomainConfig, ErrInvalidChunkBounds)
		}
	case StrategySemanticCluster:
		if config.ChunkSize <= 0 {
			return fmt.Errorf("%w: %w", ErrInvalidDomainConfig, ErrInvalidChunkBounds)
		}
		if config.ClusterThreshold <= 0 {
			return fmt.Errorf("%w: cluster distance threshold must be positive", ErrInvalidDomainConfig)
		}
		if config.ChunkMaxWords <= 0 {
			return fmt.Errorf("%w: chunk max words must be positive", ErrInvalidDomainConfig)
		}
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidDomainConfig, ErrInvalidStrategy, config.Strategy)
	}

	if config.RetrievalK <= 0 {
		return fmt.Errorf("%w: retrieval k must be positive", ErrInvalidDomainConfig)
	}

	return nil
}

// ValidateDomain validates a Domain according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Config must validate
//
// NOT validated (populated by the registry):
//   - ID (0 is valid from database sequences)
//   - MetadataPath and VectorPath (assigned at creation time)
func ValidateDomain(domain *Domain) error {
	if domain == nil {
		return fmt.Errorf("%w: domain is nil", ErrInvalidDomain)
	}

	if domain.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDomain, ErrEmptyDomainName)
	}

	if err := ValidateDomainConfig(&domain.Config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDomain, err)
	}

	return nil
}

// ValidateDocumentFile validates a DocumentFile according to domain rules.
func ValidateDocumentFile(file *DocumentFile) error {
	if file == nil {
		return fmt.Errorf("%w: file is nil", ErrInvalidDocument)
	}

	if file.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidDocument)
	}

	if file.Hash == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyHash)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// NOT validated:
//   - Offset (0 is a valid first position; assigned by the coordinator)
//   - ID (0 is valid from database sequences)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	return nil
}
