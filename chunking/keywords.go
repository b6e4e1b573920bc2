package chunking

import (
	"regexp"
	"sort"
	"strings"
)

const defaultKeywordCount = 5

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// ExtractKeywords returns the max most frequent non-stopword tokens of
// the text, most frequent first. Ties break alphabetically so the result
// is deterministic.
func ExtractKeywords(text string, max int) []string {
	if max <= 0 {
		return nil
	}

	freq := map[string]int{}
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len(tok) < 3 {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		freq[tok]++
	}
	if len(freq) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(freq))
	for tok := range freq {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] > freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	if max > len(tokens) {
		max = len(tokens)
	}
	return tokens[:max]
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"the", "and", "but", "for", "nor", "not", "are", "was", "were",
		"been", "being", "this", "that", "these", "those", "from", "down",
		"over", "under", "again", "further", "than", "such", "into",
		"about", "between", "through", "during", "before", "after",
		"above", "below", "out", "off", "own", "same", "too", "very",
		"can", "will", "just", "should", "now", "with", "you", "your",
		"they", "them", "their", "its", "his", "her", "she", "him", "has",
		"have", "had", "what", "when", "where", "which", "who", "whom",
		"why", "how", "all", "any", "both", "each", "few", "more", "most",
		"other", "some", "only", "there", "here", "then", "once", "does",
		"did", "doing",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
