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


package chunking

import (
	"context"
	"strings"

	"github.com/poiesic/corpus/core"
)

// separatorClasses is the split hierarchy, strongest first. A cut is
// placed after the separator so the separator stays with the leading chunk.
var separatorClasses = []string{
	"\n\n",
	"\n",
	".!?",
	",;:",
	" ",
}

// recursive implements the recursive character splitter.
type recursive struct {
	size    int
	overlap int
}

func newRecursive(config core.DomainConfig) *recursive {
	return &recursive{
		size:    config.ChunkSize,
		overlap: config.ChunkOverlap,
	}
}

// Chunk splits the joined page text into chunks of at most size runes.
// Each chunk after the first starts exactly overlap runes before the end
// of its predecessor, so the tail of chunk N equals the head of chunk N+1.
func (r *recursive) Chunk(ctx context.Context, pages []string) ([]core.ChunkCandidate, error) {
	pt := joinPages(pages)
	text := pt.runes
	if len(text) == 0 {
		return nil, nil
	}

	var candidates []core.ChunkCandidate
	start := 0
	for {
		end := start + r.size
		if end >= len(text) {
			end = len(text)
		} else {
			end = r.cutPoint(text, start, end)
		}

		// Content is the exact span: trimming would break the tail/head
		// overlap equality between neighboring chunks
		content := string(text[start:end])
		if strings.TrimSpace(content) != "" {
			candidates = append(candidates, core.ChunkCandidate{
				Content:  content,
				Pages:    pt.pagesForSpan(start, end),
				Index:    len(candidates),
				Keywords: ExtractKeywords(content, defaultKeywordCount),
			})
		}

		if end == len(text) {
			break
		}
		start = end - r.overlap
	}
	return candidates, nil
}

// cutPoint picks the split position in (start+overlap, limit], preferring
// the strongest separator class. Falls back to a hard cut at limit.
func (r *recursive) cutPoint(text []rune, start, limit int) int {
	// The cut must leave the next start strictly past the current one
	floor := start + r.overlap + 1

	for _, class := range separatorClasses {
		if class == "\n\n" {
			for p := limit - 1; p >= floor+1; p-- {
				if text[p-1] == '\n' && text[p] == '\n' {
					return p + 1
				}
			}
			continue
		}
		for p := limit - 1; p >= floor; p-- {
			if strings.ContainsRune(class, text[p]) {
				return p + 1
			}
		}
	}
	return limit
}
