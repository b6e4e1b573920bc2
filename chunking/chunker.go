package chunking

import (
	"context"
	"fmt"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
)

// Chunker segments normalized page text into an ordered sequence of
// chunk candidates. Implementations must be deterministic: identical
// pages and configuration always yield identical candidates in
// identical order.
type Chunker interface {
	// Chunk produces chunk candidates from normalized pages.
	// Each candidate carries its page provenance and its index within
	// the document.
	Chunk(ctx context.Context, pages []string) ([]core.ChunkCandidate, error)
}

// New builds the chunker selected by the domain configuration.
// The embedder is required for the semantic-cluster strategy and
// ignored by the recursive strategy.
func New(config core.DomainConfig, embedder ai.Embedder) (Chunker, error) {
	if err := core.ValidateDomainConfig(&config); err != nil {
		return nil, err
	}

	switch config.Strategy {
	case core.StrategyRecursive:
		return newRecursive(config), nil
	case core.StrategySemanticCluster:
		if embedder == nil {
			return nil, fmt.Errorf("%w: semantic-cluster strategy requires an embedder", core.ErrInvalidStrategy)
		}
		return newSemanticCluster(config, embedder), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidStrategy, config.Strategy)
	}
}

// pagedText is the concatenation of pages with per-page rune ranges,
// used to attribute a chunk span back to its source pages.
type pagedText struct {
	runes  []rune
	bounds []int // bounds[i] is the first rune index of page i
}

// joinPages concatenates pages with a single space and records page
// boundaries. Empty pages keep their slot so page numbering stays stable.
func joinPages(pages []string) pagedText {
	var pt pagedText
	for _, page := range pages {
		if len(pt.runes) > 0 {
			pt.runes = append(pt.runes, ' ')
		}
		pt.bounds = append(pt.bounds, len(pt.runes))
		pt.runes = append(pt.runes, []rune(page)...)
	}
	return pt
}

// pagesForSpan returns the 1-based page numbers overlapping [start, end).
func (pt pagedText) pagesForSpan(start, end int) []int {
	var pages []int
	for i, pageStart := range pt.bounds {
		pageEnd := len(pt.runes)
		if i+1 < len(pt.bounds) {
			pageEnd = pt.bounds[i+1]
		}
		if pageStart < end && start < pageEnd {
			pages = append(pages, i+1)
		}
	}
	return pages
}
