// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and utilities for kernels.
//   • Keep random data reproducible through explicit seeds.

package matrix_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/katalvlaran/cholesky/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the At/Set fallback paths and compare them
// against the *Dense fast paths.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// NewFilledDense wraps column-major vals into an r×c *Dense or fails the test.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromData(r, c, vals)
	require.NoError(t, err, "FromData(%d,%d)", r, c)

	return m
}

// MustFromRows builds a *Dense from a row-major literal or fails the test.
func MustFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads m(i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// MustSet writes m(i,j) = v or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d,%v)", i, j, v)
}

// CompareClose asserts a and b have equal shape and AllClose(a, b, rtol, atol).
// On failure the first offending element is reported.
func CompareClose(t *testing.T, want, got matrix.Matrix, rtol, atol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	ok, err := matrix.AllClose(got, want, rtol, atol)
	require.NoError(t, err)
	if ok {
		return
	}
	for j := 0; j < want.Cols(); j++ {
		for i := 0; i < want.Rows(); i++ {
			require.InDelta(t, MustAt(t, want, i, j), MustAt(t, got, i, j), atol, "(%d,%d)", i, j)
		}
	}
	t.Fatalf("AllClose reported a mismatch InDelta did not reproduce")
}

// RequireLowerClose compares only the lower triangle (diagonal included).
func RequireLowerClose(t *testing.T, want, got matrix.Matrix, atol float64) {
	t.Helper()
	n := want.Rows()
	for j := 0; j < n; j++ {
		for i := j; i < n; i++ {
			require.InDelta(t, MustAt(t, want, i, j), MustAt(t, got, i, j), atol, "L(%d,%d)", i, j)
		}
	}
}

// seeded returns a reproducible random source.
func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandDense returns an r×c uniform [0,1) matrix drawn from seed.
func RandDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.Random(r, c, matrix.WithRand(seeded(seed)))
	require.NoError(t, err)

	return m
}

// FactorizablePD returns an n×n M·Mᵀ matrix that Cholesky accepts.
// Strict definiteness of M·Mᵀ holds with probability 1 but not by construction,
// so a draw that fails is replaced by the next one from the same source.
func FactorizablePD(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	const attempts = 5
	rng := seeded(seed)
	for a := 0; a < attempts; a++ {
		pd, err := matrix.GeneratePositiveDefinite(n, n, matrix.WithRand(rng))
		require.NoError(t, err)
		probe := pd.Clone()
		err = matrix.Cholesky(probe)
		if err == nil {
			return pd
		}
		require.True(t, errors.Is(err, matrix.ErrNotPositiveDefinite), "unexpected error: %v", err)
	}
	t.Fatalf("no factorizable %d×%d matrix in %d draws", n, n, attempts)

	return nil
}

// ---------- bench helpers ----------

func mustDense(b *testing.B, r, c int, seed int64) *matrix.Dense {
	b.Helper()
	m, err := matrix.Random(r, c, matrix.WithRand(seeded(seed)))
	if err != nil {
		b.Fatalf("Random(%d,%d): %v", r, c, err)
	}

	return m
}
