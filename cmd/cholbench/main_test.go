package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRealMain(t *testing.T) {
	var stderr bytes.Buffer
	code := realMain(context.Background(), []string{"-n", "3", "-iters", "4", "-seed", "1", "-progress"}, &stderr)
	require.Equal(t, 0, code)
	require.Contains(t, stderr.String(), "factorized 4/4")
	require.Contains(t, stderr.String(), "cholesky benchmark")
}

func TestRealMainFlushesProgressOnError(t *testing.T) {
	var stderr bytes.Buffer
	out := filepath.Join(t.TempDir(), "missing", "last.mat")
	code := realMain(context.Background(), []string{"-n", "3", "-iters", "2", "-seed", "1", "-progress", "-out", out}, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "factorized 2/2")
	require.Contains(t, stderr.String(), "benchmark aborted")
}

func TestRealMainBadFlags(t *testing.T) {
	var stderr bytes.Buffer
	require.Equal(t, 2, realMain(context.Background(), []string{"-n", "0"}, &stderr))
	require.Contains(t, stderr.String(), "-n must be positive")

	stderr.Reset()
	require.Equal(t, 0, realMain(context.Background(), []string{"-h"}, &stderr))
	require.Contains(t, stderr.String(), "-iters")
}
