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


// Package chunking segments normalized document text into retrieval units.
//
// Two strategies are available, selected once at domain creation and
// immutable thereafter:
//
//   - recursive: splits on a separator hierarchy (paragraph, line,
//     sentence, clause, word), subdividing any segment above the
//     configured size, with a fixed character overlap carried from the
//     tail of one chunk into the head of the next.
//   - semantic-cluster: splits text into sentences, embeds each, and
//     greedily merges adjacent sentences while the cluster stays within
//     a cohesion distance threshold, bounded by a maximum word count.
//
// Both strategies are deterministic for identical input and
// configuration. Chunk ordering is the insertion order the ingestion
// coordinator relies on, so a chunker must never reorder output.
package chunking
