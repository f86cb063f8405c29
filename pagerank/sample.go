package pagerank

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mycok/uRank/linkgraph/graph"
)

// The context is checked for cancellation once every cancelCheckInterval
// samples.
const cancelCheckInterval = 1024

// Sample estimates the rank of every page in g by simulating a random surfer
// that takes Config.SampleCount steps, starting from a page picked uniformly
// at random. The rank of a page is the fraction of steps that landed on it;
// pages that were never visited get a rank of 0.
//
// Results are not rounded. Unless the calculator was configured with a
// deterministic Chooser, repeated calls produce different estimates.
func (c *Calculator) Sample(ctx context.Context, g graph.LinkGraph) (Distribution, error) {
	if g.Len() == 0 {
		return nil, fmt.Errorf("sample ranks: %w", graph.ErrEmptyGraph)
	}

	pages := g.Pages()
	visits := make(map[string]int, len(pages))

	// The transition weights of a page never change during a run so they
	// are computed once per visited page.
	weightsCache := make(map[string][]float64, len(pages))
	weightsFor := func(page string) ([]float64, error) {
		if weights, exists := weightsCache[page]; exists {
			return weights, nil
		}

		dist, err := Transition(g, page, c.cfg.DampingFactor)
		if err != nil {
			return nil, err
		}

		weights := make([]float64, len(pages))
		for i, p := range pages {
			weights[i] = dist[p]
		}
		weightsCache[page] = weights

		return weights, nil
	}

	idx := c.cfg.Chooser.Uniform(len(pages))
	if idx < 0 || idx >= len(pages) {
		return nil, fmt.Errorf("sample ranks: pick start page: %w (%d)", ErrInvalidChoice, idx)
	}
	current := pages[idx]

	for i := 0; i < c.cfg.SampleCount; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		weights, err := weightsFor(current)
		if err != nil {
			return nil, fmt.Errorf("sample ranks: %w", err)
		}

		idx = c.cfg.Chooser.Weighted(weights)
		if idx < 0 || idx >= len(pages) {
			return nil, fmt.Errorf("sample ranks: pick next page: %w (%d)", ErrInvalidChoice, idx)
		}

		current = pages[idx]
		visits[current]++
	}

	ranks := make(Distribution, len(pages))
	for _, page := range pages {
		ranks[page] = float64(visits[page]) / float64(c.cfg.SampleCount)
	}

	c.cfg.Logger.WithFields(logrus.Fields{
		"pages":         len(pages),
		"samples":       c.cfg.SampleCount,
		"visited_pages": len(visits),
	}).Debug("sampled page ranks")

	return ranks, nil
}
