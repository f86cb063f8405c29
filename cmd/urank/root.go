package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mycok/uRank/crawler"
	"github.com/mycok/uRank/pagerank"
	"github.com/mycok/uRank/report"
	"github.com/mycok/uRank/service"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "urank [flags] CORPUS_DIR",
		Short: "Rank the pages of a corpus of HTML documents",
		Long: "urank crawls a directory of HTML documents and ranks its pages with" +
			" two PageRank algorithms: random-surfer sampling and iteration until" +
			" convergence.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, args[0], v)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default .urank.toml)")
	flags.Float64("damping", pagerank.DefaultDampingFactor, "probability of following a link of the current page")
	flags.Int("samples", pagerank.DefaultSampleCount, "number of random-surfer samples")
	flags.Int64("seed", 0, "seed for the random surfer (0 seeds from the wall-clock)")
	flags.Float64("threshold", pagerank.DefaultConvergenceThreshold, "maximum per-page rank change between converged sweeps")
	flags.Int("precision", pagerank.DefaultPrecision, "decimal digits of the iterative ranks (0 selects the default)")
	flags.Int("max-sweeps", pagerank.DefaultMaxSweeps, "sweeps before iteration gives up")
	flags.String("format", string(report.FormatText), "report format: text or toml")
	flags.Bool("watch", false, "re-rank whenever a document of the corpus changes")
	flags.Duration("interval", 0, "re-rank periodically (0 disables)")
	flags.Int("read-workers", runtime.NumCPU(), "number of workers reading documents")
	flags.Bool("skip-nofollow", false, "ignore links marked rel=\"nofollow\"")
	flags.BoolP("verbose", "v", false, "verbose output")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})

	return cmd
}

func runRank(cmd *cobra.Command, corpusDir string, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())

	svcGroup, err := configureServices(corpusDir, cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return err
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}

	ctx, cancelFn := context.WithCancel(parentCtx)
	defer cancelFn()

	// Listen for os signals and trigger a graceful shutdown.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
		defer signal.Stop(signalChan)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("shutting down due to os signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := svcGroup.Execute(ctx); err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return err
	}

	logger.Debug("shutdown complete")

	return nil
}

func newLogger(cfg Config, out io.Writer) *logrus.Entry {
	rootLogger := logrus.New()
	rootLogger.SetOutput(out)
	if cfg.Verbose {
		rootLogger.SetLevel(logrus.DebugLevel)
	}

	host, _ := os.Hostname()

	return rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"SHA":  appSHA,
		"host": host,
	})
}

func configureServices(
	corpusDir string, cfg Config, out io.Writer, logger *logrus.Entry,
) (service.Group, error) {

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	reporter, err := report.NewWriter(out, format)
	if err != nil {
		return nil, err
	}

	corpusCrawler, err := crawler.New(crawler.Config{
		NumOfReadWorkers: cfg.ReadWorkers,
		SkipNoFollow:     cfg.SkipNoFollow,
		Logger:           logger.WithField("component", "crawler"),
	})
	if err != nil {
		return nil, err
	}

	calcConfig := pagerank.Config{
		DampingFactor:        cfg.Damping,
		SampleCount:          cfg.Samples,
		ConvergenceThreshold: cfg.Threshold,
		Precision:            cfg.Precision,
		MaxSweeps:            cfg.MaxSweeps,
		Logger:               logger.WithField("component", "pagerank"),
	}
	if cfg.Seed != 0 {
		calcConfig.Chooser = pagerank.NewRandChooser(cfg.Seed)
	}

	var svcGroup service.Group

	rankerConfig := service.RankerConfig{
		CorpusDir:      corpusDir,
		Loader:         corpusCrawler,
		Reporter:       reporter,
		Calculator:     calcConfig,
		UpdateInterval: cfg.Interval,
		Logger:         logger.WithField("service", "ranker"),
	}

	if cfg.Watch {
		watcher, err := service.NewCorpusWatcher(service.WatcherConfig{
			Dir:    corpusDir,
			IsPage: corpusCrawler.IsPage,
			Logger: logger.WithField("service", "corpus-watcher"),
		})
		if err != nil {
			return nil, err
		}

		rankerConfig.Changes = watcher.Changes()
		svcGroup = append(svcGroup, watcher)
	}

	ranker, err := service.NewRanker(rankerConfig)
	if err != nil {
		return nil, err
	}

	return append(svcGroup, ranker), nil
}
