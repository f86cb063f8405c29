package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/uRank/crawler"
	"github.com/mycok/uRank/pagerank"
	"github.com/mycok/uRank/report"
)

// CorpusLoader defines the API for turning a corpus directory into a link
// graph.
type CorpusLoader interface {
	// Crawl builds the corpus found in directory dir.
	Crawl(ctx context.Context, dir string) (*crawler.Corpus, error)
}

// Reporter defines the API for publishing the results of a ranking pass.
type Reporter interface {
	// Report publishes res.
	Report(ctx context.Context, res *report.Results) error
}

// RankerConfig defines configurations for the re-ranking service.
type RankerConfig struct {
	// CorpusDir is the directory holding the corpus documents.
	CorpusDir string

	// API for loading the corpus link graph.
	Loader CorpusLoader

	// API for publishing the ranks.
	Reporter Reporter

	// Calculator configures both ranking algorithms. Unset fields fall back
	// to the pagerank package defaults. If no logger is set, the service
	// logger is used.
	Calculator pagerank.Config

	// Changes, when set, triggers a ranking pass for every value received
	// (see CorpusWatcher.Changes).
	Changes <-chan struct{}

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The duration between subsequent ranking passes. Zero disables
	// periodic passes. Without periodic passes and Changes, the service
	// performs a single pass.
	UpdateInterval time.Duration

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *RankerConfig) validate() error {
	var err error

	if cfg.CorpusDir == "" {
		err = multierror.Append(err, fmt.Errorf("corpus directory not provided"))
	}

	if cfg.Loader == nil {
		err = multierror.Append(err, fmt.Errorf("corpus loader not provided"))
	}

	if cfg.Reporter == nil {
		err = multierror.Append(err, fmt.Errorf("reporter not provided"))
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	if cfg.UpdateInterval < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for update interval, must be >= 0"))
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	if cfg.Calculator.Logger == nil {
		cfg.Calculator.Logger = cfg.Logger
	}

	return err
}
