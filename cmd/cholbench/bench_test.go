package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/cholesky/matrix"
	"github.com/katalvlaran/cholesky/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("cholbench", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	return fs
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(newFlagSet(), nil)
	require.NoError(t, err)
	require.Equal(t, defaultOrder, cfg.n)
	require.Equal(t, defaultIters, cfg.iters)
	require.Zero(t, cfg.seed)
	require.Empty(t, cfg.out)
	require.Equal(t, zerolog.InfoLevel, cfg.level)
	require.False(t, cfg.progress)
	require.False(t, cfg.verify)
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags(newFlagSet(), []string{
		"-n", "8", "-iters", "5", "-seed", "7", "-out", "x.mat",
		"-log-level", "debug", "-progress", "-verify",
	})
	require.NoError(t, err)
	require.Equal(t, config{
		n: 8, iters: 5, seed: 7, out: "x.mat",
		level: zerolog.DebugLevel, progress: true, verify: true,
	}, cfg)
}

func TestParseFlagsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"zero order", []string{"-n", "0"}, errBadOrder},
		{"negative iters", []string{"-iters", "-3"}, errBadIters},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFlags(newFlagSet(), tc.args)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	_, err := parseFlags(newFlagSet(), []string{"-log-level", "loud"})
	require.Error(t, err)

	_, err = parseFlags(newFlagSet(), []string{"-bogus"})
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	var progress bytes.Buffer
	cfg := config{n: 6, iters: 20, seed: 11, verify: true}

	rep, err := run(context.Background(), cfg, zerolog.Nop(), &progress)
	require.NoError(t, err)
	require.Equal(t, 6, rep.n)
	require.Equal(t, 20, rep.iters)
	require.False(t, rep.interrupted)
	require.Zero(t, rep.mismatches)
	require.LessOrEqual(t, rep.failures, rep.iters)
	require.Positive(t, rep.elapsed)
	require.Equal(t, rep.elapsed/20, rep.mean())

	lines := strings.Split(strings.TrimSpace(progress.String()), "\n")
	require.Len(t, lines, 20)
	require.Contains(t, lines[len(lines)-1], "factorized 20/20")
}

func TestRunReproducible(t *testing.T) {
	cfg := config{n: 4, iters: 10, seed: 3}

	first, err := run(context.Background(), cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	second, err := run(context.Background(), cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	require.Equal(t, first.failures, second.failures)
}

func TestRunSavesLastFactor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.mat")
	cfg := config{n: 5, iters: 10, seed: 5, out: path}

	var logs bytes.Buffer
	rep, err := run(context.Background(), cfg, zerolog.New(&logs), nil)
	require.NoError(t, err)
	if rep.failures == rep.iters {
		t.Skip("every draw was numerically non positive-definite")
	}
	require.Contains(t, logs.String(), "saved last factor")

	saved, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, saved.Rows())
	require.Equal(t, 5, saved.Cols())
	for i := 0; i < 5; i++ {
		d, err := saved.At(i, i)
		require.NoError(t, err)
		require.Positive(t, d, "diagonal of L")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := run(ctx, config{n: 4, iters: 100}, zerolog.Nop(), nil)
	require.NoError(t, err)
	require.True(t, rep.interrupted)
	require.Zero(t, rep.iters)
	require.Zero(t, rep.mean())

	_, err = run(ctx, config{n: 4, iters: 100, out: filepath.Join(t.TempDir(), "x.mat")}, zerolog.Nop(), nil)
	require.ErrorIs(t, err, errNoFactor)
}

func TestVerify(t *testing.T) {
	a, err := matrix.FromRows([][]float64{{4, 2}, {2, 3}})
	require.NoError(t, err)
	input := a.Clone().(*matrix.Dense)
	require.NoError(t, a.Cholesky())
	require.NoError(t, verify(a, input))

	other, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	require.ErrorIs(t, verify(a, other), errMismatch)
}

func TestReportLog(t *testing.T) {
	var buf bytes.Buffer
	rep := report{n: 16, iters: 4, failures: 1, interrupted: true}
	rep.log(zerolog.New(&buf))

	out := buf.String()
	require.Contains(t, out, `"level":"warn"`)
	require.Contains(t, out, `"interrupted":true`)
	require.Contains(t, out, `"failures":1`)
}
