package query

import "github.com/poiesic/corpus/core"

// QueryMonitor provides hooks to observe the query process.
// Implement this interface to track intermediate steps and results during a query.
type QueryMonitor interface {
	Start(question string)
	AfterEmbedding(vector []float32)
	AfterSearch(hits []core.SearchHit)
	AfterChunkRetrieval(chunks []core.ScoredChunk)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                           {}
func (n *noopMonitor) AfterEmbedding(_ []float32)               {}
func (n *noopMonitor) AfterSearch(_ []core.SearchHit)           {}
func (n *noopMonitor) AfterChunkRetrieval(_ []core.ScoredChunk) {}
func (n *noopMonitor) Finish(_ *Result)                         {}
