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
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
)

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// sentence is an atomic segment with its rune span in the joined text.
type sentence struct {
	text  string
	start int
	end   int
}

// semanticCluster merges adjacent sentences into chunks while the
// cluster stays cohesive.
type semanticCluster struct {
	embedder  ai.Embedder
	threshold float32
	maxWords  int
}

func newSemanticCluster(config core.DomainConfig, embedder ai.Embedder) *semanticCluster {
	return &semanticCluster{
		embedder:  embedder,
		threshold: config.ClusterThreshold,
		maxWords:  config.ChunkMaxWords,
	}
}

// Chunk embeds every sentence, then greedily grows a cluster with the
// next sentence while the sentence stays within the cohesion threshold
// of the cluster centroid and the word bound is respected.
func (s *semanticCluster) Chunk(ctx context.Context, pages []string) ([]core.ChunkCandidate, error) {
	pt := joinPages(pages)
	sentences := splitSentences(string(pt.runes))
	if len(sentences) == 0 {
		return nil, nil
	}

	texts := make([]string, len(sentences))
	for i, sent := range sentences {
		texts[i] = sent.text
	}
	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}

	var candidates []core.ChunkCandidate
	var cluster []int
	words := 0

	flush := func() {
		if len(cluster) == 0 {
			return
		}
		parts := make([]string, len(cluster))
		for i, idx := range cluster {
			parts[i] = sentences[idx].text
		}
		content := strings.Join(parts, " ")
		candidates = append(candidates, core.ChunkCandidate{
			Content:  content,
			Pages:    pt.pagesForSpan(sentences[cluster[0]].start, sentences[cluster[len(cluster)-1]].end),
			Index:    len(candidates),
			Keywords: ExtractKeywords(content, defaultKeywordCount),
		})
		cluster = nil
		words = 0
	}

	centroid := make([]float64, 0)
	for i, sent := range sentences {
		sentWords := len(strings.Fields(sent.text))
		if len(cluster) > 0 {
			dist := centroidDistance(centroid, len(cluster), vectors[i])
			if dist > s.threshold || words+sentWords > s.maxWords {
				flush()
			}
		}
		if len(cluster) == 0 {
			centroid = centroid[:0]
			for _, v := range vectors[i] {
				centroid = append(centroid, float64(v))
			}
		} else {
			for j, v := range vectors[i] {
				centroid[j] += float64(v)
			}
		}
		cluster = append(cluster, i)
		words += sentWords
	}
	flush()

	return candidates, nil
}

// centroidDistance is the cosine distance between the running centroid
// (a sum over n member vectors) and the candidate vector.
func centroidDistance(sum []float64, n int, vec []float32) float32 {
	var dot, na2, nb2 float64
	for i := range vec {
		ca := sum[i] / float64(n)
		cb := float64(vec[i])
		dot += ca * cb
		na2 += ca * ca
		nb2 += cb * cb
	}
	if na2 == 0 || nb2 == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(na2)*math.Sqrt(nb2)))
}

// splitSentences returns sentences with their rune spans. Trailing text
// without terminal punctuation becomes a final sentence.
func splitSentences(text string) []sentence {
	var out []sentence
	runeOffset := 0
	byteOffset := 0

	advance := func(to int) int {
		runeOffset += utf8.RuneCountInString(text[byteOffset:to])
		byteOffset = to
		return runeOffset
	}

	lastEnd := 0
	for _, loc := range sentencePattern.FindAllStringIndex(text, -1) {
		start := advance(loc[0])
		end := advance(loc[1])
		trimmed := strings.TrimSpace(text[loc[0]:loc[1]])
		if trimmed != "" {
			out = append(out, sentence{text: trimmed, start: start, end: end})
		}
		lastEnd = loc[1]
	}

	if rest := strings.TrimSpace(text[lastEnd:]); rest != "" {
		start := advance(lastEnd)
		end := advance(len(text))
		out = append(out, sentence{text: rest, start: start, end: end})
	}
	return out
}
