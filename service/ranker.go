package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mycok/uRank/linkgraph/graph"
	"github.com/mycok/uRank/pagerank"
	"github.com/mycok/uRank/report"
)

// Ranker periodically crawls a corpus, ranks its pages with both algorithms
// and hands the results to a Reporter. It satisfies the Service interface.
type Ranker struct {
	cfg        RankerConfig
	calculator *pagerank.Calculator
}

// NewRanker creates and returns a fully configured re-ranking service.
func NewRanker(cfg RankerConfig) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ranker: config validation failed: %w", err)
	}

	calc, err := pagerank.NewCalculator(cfg.Calculator)
	if err != nil {
		return nil, fmt.Errorf("ranker: %w", err)
	}

	return &Ranker{
		cfg:        cfg,
		calculator: calc,
	}, nil
}

// Name returns the name of the service.
func (r *Ranker) Name() string { return "ranker" }

// Run ranks the corpus once and then again after every update interval or
// change notification. It blocks until the context gets cancelled or a pass
// fails. When neither is configured, Run returns once the first pass
// completes; an empty corpus is then reported as an error.
func (r *Ranker) Run(ctx context.Context) error {
	r.cfg.Logger.WithFields(logrus.Fields{
		"corpus":          r.cfg.CorpusDir,
		"update_interval": r.cfg.UpdateInterval.String(),
		"watch":           r.cfg.Changes != nil,
	}).Info("started service")
	defer r.cfg.Logger.Info("stopped service")

	if r.cfg.UpdateInterval == 0 && r.cfg.Changes == nil {
		return r.pass(ctx)
	}

	if err := r.runPass(ctx); err != nil {
		return err
	}

	for {
		var tick <-chan time.Time
		if r.cfg.UpdateInterval > 0 {
			tick = r.cfg.Clock.After(r.cfg.UpdateInterval)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tick:
		case <-r.cfg.Changes:
		}

		if err := r.runPass(ctx); err != nil {
			return err
		}
	}
}

func (r *Ranker) runPass(ctx context.Context) error {
	err := r.pass(ctx)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		// Cancelled half-way through a pass.
		return nil
	case errors.Is(err, graph.ErrEmptyGraph):
		r.cfg.Logger.Warn("deferring ranking pass: corpus has no pages yet")

		return nil
	default:
		return err
	}
}

func (r *Ranker) pass(ctx context.Context) error {
	r.cfg.Logger.Debug("started ranking pass")

	startedAt := r.cfg.Clock.Now()

	tick := r.cfg.Clock.Now()
	corpus, err := r.cfg.Loader.Crawl(ctx, r.cfg.CorpusDir)
	if err != nil {
		return err
	}
	crawlDuration := r.cfg.Clock.Now().Sub(tick)

	tick = r.cfg.Clock.Now()
	sampled, err := r.calculator.Sample(ctx, corpus.Graph)
	if err != nil {
		return err
	}
	samplingDuration := r.cfg.Clock.Now().Sub(tick)

	tick = r.cfg.Clock.Now()
	iterated, err := r.calculator.Iterate(ctx, corpus.Graph)
	if err != nil {
		return err
	}
	iterationDuration := r.cfg.Clock.Now().Sub(tick)

	tick = r.cfg.Clock.Now()
	err = r.cfg.Reporter.Report(ctx, &report.Results{
		Corpus:      r.cfg.CorpusDir,
		SampleCount: r.calculator.Config().SampleCount,
		Sampled:     sampled,
		Iterated:    iterated,
		Titles:      corpus.Titles,
	})
	if err != nil {
		return err
	}
	reportDuration := r.cfg.Clock.Now().Sub(tick)

	r.cfg.Logger.WithFields(logrus.Fields{
		"pages":                 corpus.Graph.Len(),
		"crawl_duration":        crawlDuration,
		"sampling_duration":     samplingDuration,
		"iteration_duration":    iterationDuration,
		"report_duration":       reportDuration,
		"total_processing_time": r.cfg.Clock.Now().Sub(startedAt),
	}).Info("completed ranking pass")

	return nil
}
