package search

import (
	"github.com/poiesic/notesearch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterParse(q *core.SearchQuery)
	AfterCandidateFetch(count int)
	Hit(note *core.Note, score float64)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                   {}
func (n *noopMonitor) AfterParse(_ *core.SearchQuery)   {}
func (n *noopMonitor) AfterCandidateFetch(_ int)        {}
func (n *noopMonitor) Hit(_ *core.Note, _ float64)      {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)    {}
