// Command cholbench repeatedly generates random positive-definite matrices
// and factorizes them in place, reporting how long the factorizations took.
//
//	cholbench -n 16 -iters 1000 -seed 42 -progress
//	cholbench -n 64 -out last.mat -verify
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/gosuri/uilive"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := realMain(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// realMain runs the command and returns its exit code. The final progress
// frame is flushed before it returns.
func realMain(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("cholbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := parseFlags(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := newLogger(stderr, cfg.level)

	var (
		progress io.Writer
		writer   *uilive.Writer
	)
	if cfg.progress {
		writer = uilive.New()
		writer.Out = stderr
		writer.Start()
		progress = writer
	}

	rep, err := run(ctx, cfg, logger, progress)
	if writer != nil {
		// flush the last frame before anything else reaches stderr
		writer.Stop()
	}
	if err != nil {
		logger.Error().Err(err).Msg("benchmark aborted")
		return 1
	}
	rep.log(logger)

	return 0
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
