package search

import "github.com/poiesic/mergen/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to trace the stages a request goes through.
type MatchMonitor interface {
	Start(query, city string, topK int)
	AfterSemanticSearch(candidates []*core.SearchResult)
	AfterCityFilter(hotels []*core.Hotel)
	AfterFullScan(scanned int, hotels []*core.Hotel)
	DiversityRound(fetched, cities int)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string, _ int)                  {}
func (n *noopMonitor) AfterSemanticSearch(_ []*core.SearchResult) {}
func (n *noopMonitor) AfterCityFilter(_ []*core.Hotel)            {}
func (n *noopMonitor) AfterFullScan(_ int, _ []*core.Hotel)       {}
func (n *noopMonitor) DiversityRound(_, _ int)                    {}
func (n *noopMonitor) Finish(_ *Result)                           {}
