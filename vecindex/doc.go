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


// Package vecindex implements the append-only positional vector index.
//
// A vector's identity is its offset: the position at which it was
// appended. There is no update or delete by offset, which is what lets
// chunk rows reference vectors by position alone. Appends are staged in
// memory and become searchable only after Persist publishes them, so
// concurrent readers never observe a half-written index.
//
// The index is flat: Search compares the query against every published
// vector. Two distance kinds are supported, squared L2 and cosine
// distance. Results are ordered by non-decreasing distance, with ties
// broken by lower offset.
package vecindex
