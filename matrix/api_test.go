package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/cholesky/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, id.Data())

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	z, err := matrix.NewZeros(2, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, z.Data())
}

func TestLowerTriangle(t *testing.T) {
	m := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	want := MustFromRows(t, [][]float64{{1, 0, 0}, {4, 5, 0}, {7, 8, 9}})

	l, err := matrix.LowerTriangle(m)
	require.NoError(t, err)
	CompareClose(t, want, l, 0, 0)

	viaAt, err := matrix.LowerTriangle(hide{m})
	require.NoError(t, err)
	CompareClose(t, want, viaAt, 0, 0)

	wide, err := matrix.LowerTriangle(MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 4, 0, 5, 0, 0}, wide.Data())
}

func TestAllClose(t *testing.T) {
	a := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFromRows(t, [][]float64{{1, 2}, {3, 4.001}})

	ok, err := matrix.AllClose(a, b, 0, 1e-6)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-2)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(hide{a}, b, 1e-3, 0)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, 2, 3), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestReconstruct_IgnoresUpperTriangle(t *testing.T) {
	f := MustFromRows(t, [][]float64{{2, 99}, {1, 3}}) // L = [[2,0],[1,3]]
	got, err := matrix.Reconstruct(f)
	require.NoError(t, err)
	CompareClose(t, MustFromRows(t, [][]float64{{4, 2}, {2, 10}}), got, 0, 0)
}
