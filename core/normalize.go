package core

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes text for chunking, embedding, and querying.
// The same pipeline must be applied at ingestion and at query time;
// asymmetry between the two silently degrades recall.
//
// Steps, in order: Unicode NFKC canonicalization, whitespace collapse
// (any run of whitespace becomes a single space, leading and trailing
// whitespace removed), lowercasing.
func Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = strings.Join(strings.Fields(text), " ")
	return strings.ToLower(text)
}

// NormalizePages applies Normalize to each page, preserving page order.
// Pages that normalize to the empty string are kept so page numbering
// stays aligned with the source document.
func NormalizePages(pages []string) []string {
	out := make([]string, len(pages))
	for i, page := range pages {
		out[i] = Normalize(page)
	}
	return out
}
