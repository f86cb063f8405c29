/*
	pagerank package computes the relative importance of the pages of a link
	graph using two independent algorithms:
		- Sample estimates ranks by letting a random surfer walk the graph
		  and counting how often each page gets visited.
		- Iterate repeatedly applies the PageRank recurrence over the
		  inverse link graph until the ranks stop changing.
	Both return a Distribution containing every page of the graph.
*/

package pagerank

import (
	"errors"
	"fmt"

	"github.com/mycok/uRank/linkgraph/graph"
)

var (
	// ErrNotConverged is returned when the iterative algorithm exhausts its
	// sweep budget before the ranks converge.
	ErrNotConverged = errors.New("ranks did not converge")

	// ErrInvalidChoice is returned when a Chooser returns an index that is
	// out of range.
	ErrInvalidChoice = errors.New("chooser returned an out of range index")
)

// Calculator ranks the pages of link graphs. A Calculator holds no per-graph
// state, so the same instance may rank any number of graphs.
type Calculator struct {
	cfg Config
}

// NewCalculator returns a new Calculator instance using the provided config
// options.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf(
			"PageRank calculator config validation failed: %w: %w",
			graph.ErrInvalidInput, err,
		)
	}

	return &Calculator{cfg: cfg}, nil
}

// Config returns a copy of the calculator's configuration with all defaults
// applied.
func (c *Calculator) Config() Config {
	return c.cfg
}
