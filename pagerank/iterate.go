package pagerank

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/mycok/uRank/linkgraph/graph"
)

// backLink is a single term of the PageRank sum of a page: the source page
// and the number of pages the source spreads its rank across.
type backLink struct {
	src     string
	divisor float64
}

// Iterate computes the rank of every page in g by repeatedly applying the
// PageRank recurrence
//
//	PR(p) = (1 - d) / N + d * Σ PR(q) / L(q)
//
// over all pages q linking to p, starting from a uniform 1/N rank. L(q) is
// the number of outgoing links of q; dead-end pages are treated as linking to
// every page of the graph and therefore spread their rank across all N pages.
//
// Every sweep computes the new ranks from the ranks of the previous sweep.
// Iteration stops after the first sweep in which no rank changed by more than
// Config.ConvergenceThreshold, and the ranks are then rounded to
// Config.Precision decimal digits. Rounding may make the ranks add up to
// slightly more or less than 1.
func (c *Calculator) Iterate(ctx context.Context, g graph.LinkGraph) (Distribution, error) {
	if g.Len() == 0 {
		return nil, fmt.Errorf("iterate ranks: %w", graph.ErrEmptyGraph)
	}

	initial := make(Distribution, g.Len())
	for page := range g {
		initial[page] = 1 / float64(g.Len())
	}

	return c.iterate(ctx, g, initial)
}

// IterateFrom works like Iterate but starts from the provided ranks instead
// of a uniform distribution. initial must contain a rank for every page of g;
// ranks for pages outside g are ignored.
func (c *Calculator) IterateFrom(
	ctx context.Context, g graph.LinkGraph, initial Distribution,
) (Distribution, error) {

	if g.Len() == 0 {
		return nil, fmt.Errorf("iterate ranks: %w", graph.ErrEmptyGraph)
	}

	ranks := make(Distribution, g.Len())
	for page := range g {
		rank, exists := initial[page]
		if !exists {
			return nil, fmt.Errorf(
				"iterate ranks: no initial rank for page %q: %w",
				page, graph.ErrInvalidInput,
			)
		}

		ranks[page] = rank
	}

	return c.iterate(ctx, g, ranks)
}

func (c *Calculator) iterate(
	ctx context.Context, g graph.LinkGraph, ranks Distribution,
) (Distribution, error) {

	var (
		pages         = g.Pages()
		pageCount     = float64(len(pages))
		dampingFactor = c.cfg.DampingFactor
		leadingTerm   = (1 - dampingFactor) / pageCount
		backLinks     = resolveBackLinks(g, graph.BuildInverse(g))
		next          = make(Distribution, len(pages))
	)

	for sweep := 1; sweep <= c.cfg.MaxSweeps; sweep++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var maxDelta float64
		for _, page := range pages {
			var sum float64
			for _, bl := range backLinks[page] {
				sum += ranks[bl.src] / bl.divisor
			}

			next[page] = leadingTerm + dampingFactor*sum
			maxDelta = math.Max(maxDelta, math.Abs(next[page]-ranks[page]))
		}

		ranks, next = next, ranks

		if maxDelta <= c.cfg.ConvergenceThreshold {
			c.cfg.Logger.WithFields(logrus.Fields{
				"pages":     len(pages),
				"sweeps":    sweep,
				"max_delta": maxDelta,
			}).Debug("page ranks converged")

			return ranks.Round(c.cfg.Precision), nil
		}
	}

	return nil, fmt.Errorf("iterate ranks: %w after %d sweeps", ErrNotConverged, c.cfg.MaxSweeps)
}

// resolveBackLinks flattens the inverse graph into per-page back-link lists
// sorted by source page. Back-links created by the dead-end fallback divide
// the source rank by the number of pages in the graph, all others by the
// out-degree of the source page.
func resolveBackLinks(g graph.LinkGraph, inverse graph.InverseLinkGraph) map[string][]backLink {
	resolved := make(map[string][]backLink, len(inverse))
	for page, links := range inverse {
		list := make([]backLink, 0, len(links))
		for _, src := range links.Sources() {
			divisor := float64(g.OutDegree(src))
			if links[src] == graph.OriginDeadEnd {
				divisor = float64(g.Len())
			}

			list = append(list, backLink{src: src, divisor: divisor})
		}

		resolved[page] = list
	}

	return resolved
}
