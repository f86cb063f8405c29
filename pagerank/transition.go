package pagerank

import (
	"fmt"

	"github.com/mycok/uRank/linkgraph/graph"
)

// Transition returns the probability distribution over the page the random
// surfer visits next, given that it currently is on page.
//
// With probability dampingFactor the surfer follows one of page's links,
// picked uniformly; otherwise it jumps to a page picked uniformly from the
// whole graph. A dead-end page sends the surfer to any page of the graph,
// itself included, with equal probability regardless of dampingFactor.
func Transition(g graph.LinkGraph, page string, dampingFactor float64) (Distribution, error) {
	if g.Len() == 0 {
		return nil, fmt.Errorf("transition from %q: %w", page, graph.ErrEmptyGraph)
	}

	if err := validateDampingFactor(dampingFactor); err != nil {
		return nil, fmt.Errorf("transition from %q: %w: %v", page, graph.ErrInvalidInput, err)
	}

	links, exists := g[page]
	if !exists {
		return nil, fmt.Errorf("transition from %q: %w", page, graph.ErrUnknownPage)
	}

	pageCount := float64(g.Len())
	dist := make(Distribution, g.Len())

	if len(links) == 0 {
		for p := range g {
			dist[p] = 1 / pageCount
		}

		return dist, nil
	}

	randomJumpProb := (1 - dampingFactor) / pageCount
	linkProb := dampingFactor / float64(len(links))

	for p := range g {
		dist[p] = randomJumpProb
		if links.Contains(p) {
			dist[p] += linkProb
		}
	}

	return dist, nil
}
