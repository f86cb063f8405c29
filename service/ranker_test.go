package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/juju/clock/testclock"
	check "gopkg.in/check.v1"

	"github.com/mycok/uRank/crawler"
	"github.com/mycok/uRank/linkgraph/graph"
	"github.com/mycok/uRank/pagerank"
	"github.com/mycok/uRank/report"
	"github.com/mycok/uRank/service/mocks"
)

var (
	_ = check.Suite(new(RankerConfigTestSuite))
	_ = check.Suite(new(RankerTestSuite))
)

type RankerConfigTestSuite struct{}

func (s *RankerConfigTestSuite) TestConfigValidation(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	originalConfig := RankerConfig{
		CorpusDir:      "corpus",
		Loader:         mocks.NewMockCorpusLoader(ctrl),
		Reporter:       mocks.NewMockReporter(ctrl),
		UpdateInterval: time.Minute,
	}

	cfg := originalConfig
	c.Assert(cfg.validate(), check.IsNil)
	c.Assert(cfg.Clock, check.Not(check.IsNil), check.Commentf("default clock was not assigned"))
	c.Assert(cfg.Logger, check.Not(check.IsNil), check.Commentf("default logger was not assigned"))
	c.Assert(cfg.Calculator.Logger, check.Equals, cfg.Logger)

	cfg = originalConfig
	cfg.CorpusDir = ""
	c.Assert(cfg.validate(), check.ErrorMatches, "(?ms).*corpus directory not provided.*")

	cfg = originalConfig
	cfg.Loader = nil
	c.Assert(cfg.validate(), check.ErrorMatches, "(?ms).*corpus loader not provided.*")

	cfg = originalConfig
	cfg.Reporter = nil
	c.Assert(cfg.validate(), check.ErrorMatches, "(?ms).*reporter not provided.*")

	cfg = originalConfig
	cfg.UpdateInterval = -time.Second
	c.Assert(cfg.validate(), check.ErrorMatches, "(?ms).*invalid value for update interval.*")

	cfg = originalConfig
	cfg.UpdateInterval = 0
	c.Assert(cfg.validate(), check.IsNil)
}

func (s *RankerConfigTestSuite) TestInvalidCalculatorConfig(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	_, err := NewRanker(RankerConfig{
		CorpusDir:      "corpus",
		Loader:         mocks.NewMockCorpusLoader(ctrl),
		Reporter:       mocks.NewMockReporter(ctrl),
		UpdateInterval: time.Minute,
		Calculator:     pagerank.Config{DampingFactor: 1.5, SampleCount: 10},
	})
	c.Assert(errors.Is(err, graph.ErrInvalidInput), check.Equals, true)
}

type RankerTestSuite struct{}

// The ranks of the corpus converge to these values when the convergence
// threshold is tight enough to meet the rounding precision.
var expIterated = pagerank.Distribution{
	"1.html": 0.2199,
	"2.html": 0.4292,
	"3.html": 0.2199,
	"4.html": 0.131,
}

func testCorpus() *crawler.Corpus {
	return &crawler.Corpus{
		Graph: graph.New(map[string][]string{
			"1.html": {"2.html"},
			"2.html": {"1.html", "3.html"},
			"3.html": {"4.html", "2.html"},
			"4.html": {"2.html"},
		}),
		Titles: map[string]string{"1.html": "One"},
	}
}

func testCalculatorConfig() pagerank.Config {
	return pagerank.Config{
		DampingFactor:        pagerank.DefaultDampingFactor,
		SampleCount:          1000,
		ConvergenceThreshold: 1e-4,
		Chooser:              pagerank.NewRandChooser(42),
	}
}

func assertResults(c *check.C, res *report.Results) {
	c.Check(res.Corpus, check.Equals, "corpus")
	c.Check(res.SampleCount, check.Equals, 1000)
	c.Check(res.Sampled, check.HasLen, 4)
	c.Check(math.Abs(res.Sampled.Sum()-1) < 1e-9, check.Equals, true)
	c.Check(res.Iterated, check.DeepEquals, expIterated)
	c.Check(res.Titles, check.DeepEquals, map[string]string{"1.html": "One"})
}

func (s *RankerTestSuite) TestFullRun(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockCorpusLoader(ctrl)
	mockReporter := mocks.NewMockReporter(ctrl)
	clk := testclock.NewClock(time.Now())

	svc, err := NewRanker(RankerConfig{
		CorpusDir:      "corpus",
		Loader:         mockLoader,
		Reporter:       mockReporter,
		Calculator:     testCalculatorConfig(),
		Clock:          clk,
		UpdateInterval: time.Minute,
	})
	c.Assert(err, check.IsNil)

	ctx, cancelFn := context.WithCancel(context.TODO())
	defer cancelFn()

	// One pass on start-up and one after the update interval elapses.
	mockLoader.EXPECT().Crawl(gomock.Any(), "corpus").DoAndReturn(
		func(context.Context, string) (*crawler.Corpus, error) {
			return testCorpus(), nil
		},
	).Times(2)
	mockReporter.EXPECT().Report(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, res *report.Results) error {
			assertResults(c, res)

			return nil
		},
	).Times(2)

	go func() {
		// Wait until the main loop calls time.After (or timeout if 10
		// sec elapse) and advance the time to trigger a new ranking pass.
		c.Check(clk.WaitAdvance(time.Minute, 10*time.Second, 1), check.IsNil)

		// Wait until the main loop calls time.After again and cancel
		// the context.
		c.Check(clk.WaitAdvance(time.Millisecond, 10*time.Second, 1), check.IsNil)
		cancelFn()
	}()

	// Enter the blocking main loop.
	err = svc.Run(ctx)
	c.Assert(err, check.IsNil)
}

func (s *RankerTestSuite) TestChangeNotificationsTriggerPasses(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockCorpusLoader(ctrl)
	mockReporter := mocks.NewMockReporter(ctrl)
	changes := make(chan struct{})
	reported := make(chan struct{}, 2)

	svc, err := NewRanker(RankerConfig{
		CorpusDir:  "corpus",
		Loader:     mockLoader,
		Reporter:   mockReporter,
		Calculator: testCalculatorConfig(),
		Changes:    changes,
	})
	c.Assert(err, check.IsNil)

	mockLoader.EXPECT().Crawl(gomock.Any(), "corpus").DoAndReturn(
		func(context.Context, string) (*crawler.Corpus, error) {
			return testCorpus(), nil
		},
	).Times(2)
	mockReporter.EXPECT().Report(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, res *report.Results) error {
			assertResults(c, res)
			reported <- struct{}{}

			return nil
		},
	).Times(2)

	ctx, cancelFn := context.WithCancel(context.TODO())
	defer cancelFn()

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Run(ctx) }()

	<-reported
	changes <- struct{}{}
	<-reported
	cancelFn()

	c.Assert(<-errCh, check.IsNil)
}

func (s *RankerTestSuite) TestEmptyCorpusDefersPass(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockCorpusLoader(ctrl)
	mockReporter := mocks.NewMockReporter(ctrl)
	clk := testclock.NewClock(time.Now())

	svc, err := NewRanker(RankerConfig{
		CorpusDir:      "corpus",
		Loader:         mockLoader,
		Reporter:       mockReporter,
		Calculator:     testCalculatorConfig(),
		Clock:          clk,
		UpdateInterval: time.Minute,
	})
	c.Assert(err, check.IsNil)

	gomock.InOrder(
		mockLoader.EXPECT().Crawl(gomock.Any(), "corpus").Return(
			&crawler.Corpus{Graph: graph.LinkGraph{}}, nil,
		),
		mockLoader.EXPECT().Crawl(gomock.Any(), "corpus").Return(testCorpus(), nil),
	)
	mockReporter.EXPECT().Report(gomock.Any(), gomock.Any()).Return(nil)

	ctx, cancelFn := context.WithCancel(context.TODO())
	defer cancelFn()

	go func() {
		c.Check(clk.WaitAdvance(time.Minute, 10*time.Second, 1), check.IsNil)
		c.Check(clk.WaitAdvance(time.Millisecond, 10*time.Second, 1), check.IsNil)
		cancelFn()
	}()

	err = svc.Run(ctx)
	c.Assert(err, check.IsNil)
}

func (s *RankerTestSuite) TestFailedPassStopsService(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockCorpusLoader(ctrl)

	svc, err := NewRanker(RankerConfig{
		CorpusDir:      "corpus",
		Loader:         mockLoader,
		Reporter:       mocks.NewMockReporter(ctrl),
		Calculator:     testCalculatorConfig(),
		Clock:          testclock.NewClock(time.Now()),
		UpdateInterval: time.Minute,
	})
	c.Assert(err, check.IsNil)

	mockLoader.EXPECT().Crawl(gomock.Any(), "corpus").Return(nil, errors.New("corpus directory vanished"))

	err = svc.Run(context.TODO())
	c.Assert(err, check.ErrorMatches, "corpus directory vanished")
}

func (s *RankerTestSuite) TestSinglePass(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockCorpusLoader(ctrl)
	mockReporter := mocks.NewMockReporter(ctrl)

	svc, err := NewRanker(RankerConfig{
		CorpusDir:  "corpus",
		Loader:     mockLoader,
		Reporter:   mockReporter,
		Calculator: testCalculatorConfig(),
	})
	c.Assert(err, check.IsNil)

	mockLoader.EXPECT().Crawl(gomock.Any(), "corpus").Return(testCorpus(), nil)
	mockReporter.EXPECT().Report(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, res *report.Results) error {
			assertResults(c, res)

			return nil
		},
	)

	// Returns without waiting for the context.
	c.Assert(svc.Run(context.TODO()), check.IsNil)

	// Empty corpora are not deferred to a later pass.
	mockLoader.EXPECT().Crawl(gomock.Any(), "corpus").Return(&crawler.Corpus{Graph: graph.LinkGraph{}}, nil)

	err = svc.Run(context.TODO())
	c.Assert(errors.Is(err, graph.ErrEmptyGraph), check.Equals, true)
}
