package pagerank

import (
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Default values for the PageRank calculator configuration.
const (
	DefaultDampingFactor        = 0.85
	DefaultSampleCount          = 10000
	DefaultConvergenceThreshold = 0.001
	DefaultPrecision            = 4
	DefaultMaxSweeps            = 1000
)

// Config encapsulates the configuration options for the PageRank calculator.
type Config struct {
	// DampingFactor is the probability that the random surfer follows one
	// of the links of the current page rather than jumping to a random
	// page. Must be in the (0, 1) range.
	DampingFactor float64

	// SampleCount is the number of steps taken by the random surfer when
	// estimating ranks by sampling. Must be > 0.
	SampleCount int

	// ConvergenceThreshold is the maximum per-page rank change allowed in
	// a sweep for the iterative algorithm to consider the ranks converged.
	// If not specified, DefaultConvergenceThreshold is used.
	ConvergenceThreshold float64

	// Precision is the number of decimal digits iterative ranks are rounded
	// to once they converge. If not specified (0), DefaultPrecision is used;
	// rounding to whole numbers is not supported.
	Precision int

	// MaxSweeps bounds the number of sweeps the iterative algorithm may
	// execute before giving up. If not specified, DefaultMaxSweeps is used.
	MaxSweeps int

	// Chooser provides the random choices made by the sampling algorithm.
	// If not specified, a chooser seeded from the wall-clock is used.
	Chooser Chooser

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

// DefaultConfig returns a Config populated with the default damping factor
// and sample count.
func DefaultConfig() Config {
	return Config{
		DampingFactor:        DefaultDampingFactor,
		SampleCount:          DefaultSampleCount,
		ConvergenceThreshold: DefaultConvergenceThreshold,
		Precision:            DefaultPrecision,
		MaxSweeps:            DefaultMaxSweeps,
	}
}

func (cfg *Config) validate() error {
	var err error

	if dErr := validateDampingFactor(cfg.DampingFactor); dErr != nil {
		err = multierror.Append(err, dErr)
	}

	if cfg.SampleCount <= 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for sample count, must be > 0"))
	}

	switch {
	case !(cfg.ConvergenceThreshold >= 0):
		err = multierror.Append(err, fmt.Errorf("invalid value for convergence threshold, must be >= 0"))
	case cfg.ConvergenceThreshold == 0:
		cfg.ConvergenceThreshold = DefaultConvergenceThreshold
	}

	switch {
	case cfg.Precision < 0:
		err = multierror.Append(err, fmt.Errorf("invalid value for precision, must be >= 0"))
	case cfg.Precision == 0:
		cfg.Precision = DefaultPrecision
	}

	switch {
	case cfg.MaxSweeps < 0:
		err = multierror.Append(err, fmt.Errorf("invalid value for max sweeps, must be >= 0"))
	case cfg.MaxSweeps == 0:
		cfg.MaxSweeps = DefaultMaxSweeps
	}

	if cfg.Chooser == nil {
		cfg.Chooser = NewRandChooser(time.Now().UnixNano())
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

func validateDampingFactor(dampingFactor float64) error {
	// Written so that NaN fails the check.
	if !(dampingFactor > 0 && dampingFactor < 1) {
		return fmt.Errorf(
			"invalid value for damping factor %v, must be in the (0, 1) range",
			dampingFactor,
		)
	}

	return nil
}
