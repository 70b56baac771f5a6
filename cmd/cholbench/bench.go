package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/katalvlaran/cholesky/matrix"
	"github.com/katalvlaran/cholesky/store"
	"github.com/rs/zerolog"
)

const (
	defaultOrder = 16
	defaultIters = 1000

	// verifyTol bounds |L·Lᵀ - A| when -verify is set.
	verifyTol = 1e-6

	progressSteps = 100
)

var (
	errBadOrder = errors.New("cholbench: -n must be positive")
	errBadIters = errors.New("cholbench: -iters must be positive")
	errNoFactor = errors.New("cholbench: no successful factorization to save")
	errMismatch = errors.New("cholbench: L·Lᵀ differs from input")
)

type config struct {
	n        int
	iters    int
	seed     int64
	out      string
	level    zerolog.Level
	progress bool
	verify   bool
}

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	var (
		cfg      config
		logLevel string
	)
	fs.IntVar(&cfg.n, "n", defaultOrder, "matrix order")
	fs.IntVar(&cfg.iters, "iters", defaultIters, "number of generate+factorize iterations")
	fs.Int64Var(&cfg.seed, "seed", 0, "random seed (0 = unseeded)")
	fs.StringVar(&cfg.out, "out", "", "save the last factorized matrix to this file")
	fs.StringVar(&logLevel, "log-level", zerolog.InfoLevel.String(), "log level (trace, debug, info, warn, error)")
	fs.BoolVar(&cfg.progress, "progress", false, "show live progress")
	fs.BoolVar(&cfg.verify, "verify", false, "check L·Lᵀ against the input after every factorization")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.n <= 0 {
		return config{}, fmt.Errorf("%w: got %d", errBadOrder, cfg.n)
	}
	if cfg.iters <= 0 {
		return config{}, fmt.Errorf("%w: got %d", errBadIters, cfg.iters)
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return config{}, fmt.Errorf("cholbench: -log-level: %w", err)
	}
	cfg.level = level

	return cfg, nil
}

type report struct {
	n           int
	iters       int
	failures    int
	mismatches  int
	elapsed     time.Duration
	interrupted bool
}

// mean is the average duration of one factorization, failures included.
func (r report) mean() time.Duration {
	if r.iters == 0 {
		return 0
	}

	return r.elapsed / time.Duration(r.iters)
}

func (r report) log(logger zerolog.Logger) {
	ev := logger.Info()
	if r.interrupted {
		ev = logger.Warn().Bool("interrupted", true)
	}
	ev.Int("n", r.n).
		Int("iters", r.iters).
		Int("failures", r.failures).
		Int("mismatches", r.mismatches).
		Dur("total", r.elapsed).
		Dur("mean", r.mean()).
		Msg("cholesky benchmark")
}

// run executes cfg.iters rounds of GeneratePositiveDefinite followed by an
// in-place Cholesky. Only the factorization is timed. A non positive-definite
// draw is counted and logged; any other error aborts the run. Cancelling ctx
// stops between iterations and returns the partial report.
func run(ctx context.Context, cfg config, logger zerolog.Logger, progress io.Writer) (report, error) {
	rep := report{n: cfg.n}

	var opts []matrix.Option
	if cfg.seed != 0 {
		opts = append(opts, matrix.WithRand(rand.New(rand.NewSource(cfg.seed))))
	}

	step := cfg.iters / progressSteps
	if step == 0 {
		step = 1
	}

	var last *matrix.Dense
	for it := 0; it < cfg.iters; it++ {
		if ctx.Err() != nil {
			rep.interrupted = true
			break
		}

		a, err := matrix.GeneratePositiveDefinite(cfg.n, cfg.n, opts...)
		if err != nil {
			return rep, err
		}
		var input *matrix.Dense
		if cfg.verify {
			input = a.Clone().(*matrix.Dense)
		}

		start := time.Now()
		err = a.Cholesky()
		rep.elapsed += time.Since(start)
		rep.iters++

		switch {
		case errors.Is(err, matrix.ErrNotPositiveDefinite):
			rep.failures++
			logger.Debug().Int("iter", it).Err(err).Msg("factorization failed")
		case err != nil:
			return rep, err
		default:
			last = a
			if cfg.verify {
				if err = verify(a, input); err != nil {
					rep.mismatches++
					logger.Warn().Int("iter", it).Err(err).Msg("reconstruction mismatch")
				}
			}
		}

		if progress != nil && (rep.iters%step == 0 || rep.iters == cfg.iters) {
			fmt.Fprintf(progress, "factorized %d/%d (failures %d)\n", rep.iters, cfg.iters, rep.failures)
		}
	}

	if cfg.out != "" {
		if last == nil {
			return rep, errNoFactor
		}
		if err := store.Save(cfg.out, last); err != nil {
			return rep, err
		}
		logger.Info().Str("path", cfg.out).Msg("saved last factor")
	}

	return rep, nil
}

func verify(factored, input *matrix.Dense) error {
	rec, err := matrix.Reconstruct(factored)
	if err != nil {
		return err
	}
	ok, err := matrix.AllClose(rec, input, 0, verifyTol)
	if err != nil {
		return err
	}
	if !ok {
		return errMismatch
	}

	return nil
}
