// Package ops builds on a finished Cholesky factorization: solving A·X = B,
// inverting A and taking log|A|, all from the factor L stored in A's lower triangle.
package ops

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/cholesky/matrix"
)

const (
	ZeroSum   = 0.0 // accumulator start
	ZeroPivot = 0.0 // a factor diagonal must stay strictly above this
)

// ErrSingular is returned when a factor diagonal is not strictly positive,
// i.e. the input was not produced by a successful Cholesky.
var ErrSingular = errors.New("ops: factor has a non-positive diagonal")

// checkFactor validates that factored is square and returns its diagonal,
// every entry of which must be strictly positive.
func checkFactor(op string, factored matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateSquare(factored); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var (
		i   int
		err error
	)
	pivots := make([]float64, factored.Rows())
	for i = range pivots {
		if pivots[i], err = factored.At(i, i); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !(pivots[i] > ZeroPivot) {
			return nil, fmt.Errorf("%s: diagonal %d is %g: %w", op, i, pivots[i], ErrSingular)
		}
	}

	return pivots, nil
}

// SolveCholesky solves A·X = B where factored holds L from matrix.Cholesky(A).
// Only the lower triangle of factored is read, so its upper triangle may hold anything.
// Blueprint:
//
//	Stage 1 (Validate): factored square with a positive diagonal, B.Rows() == n.
//	Stage 2 (Prepare): allocate X and one scratch column.
//	Stage 3 (Execute): per column b of B, solve L·y = b then Lᵀ·x = y.
//	Stage 4 (Finalize): return X.
//
// Complexity: O(n²·k) time for B of shape n×k, O(n·k) memory.
func SolveCholesky(factored, b matrix.Matrix) (*matrix.Dense, error) {
	// Stage 1: Validate
	pivots, err := checkFactor("SolveCholesky", factored)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateNotNil(b); err != nil {
		return nil, fmt.Errorf("SolveCholesky: %w", err)
	}
	n := len(pivots)
	if b.Rows() != n {
		return nil, fmt.Errorf("SolveCholesky: rhs %dx%d for order %d: %w",
			b.Rows(), b.Cols(), n, matrix.ErrDimensionMismatch)
	}

	// Stage 2: Prepare
	x, err := matrix.NewDense(n, b.Cols())
	if err != nil {
		return nil, fmt.Errorf("SolveCholesky: %w", err)
	}
	y := make([]float64, n)
	xs := make([]float64, n)

	// Stage 3: Execute
	var (
		col, i, k int
		sum, lVal float64
		bVal      float64
	)
	for col = 0; col < b.Cols(); col++ {
		// Forward substitution: L·y = b[:,col]
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				if lVal, err = factored.At(i, k); err != nil {
					return nil, fmt.Errorf("SolveCholesky: %w", err)
				}
				sum += lVal * y[k]
			}
			if bVal, err = b.At(i, col); err != nil {
				return nil, fmt.Errorf("SolveCholesky: %w", err)
			}
			y[i] = (bVal - sum) / pivots[i]
		}

		// Backward substitution: Lᵀ·x = y, with Lᵀ(i,k) = L(k,i)
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				if lVal, err = factored.At(k, i); err != nil {
					return nil, fmt.Errorf("SolveCholesky: %w", err)
				}
				sum += lVal * xs[k]
			}
			xs[i] = (y[i] - sum) / pivots[i]
		}

		for i = 0; i < n; i++ {
			if err = x.Set(i, col, xs[i]); err != nil {
				return nil, fmt.Errorf("SolveCholesky: %w", err)
			}
		}
	}

	// Stage 4: Finalize
	return x, nil
}

// InverseCholesky returns A⁻¹ given the factored form of A.
//
// Complexity: O(n³) time, O(n²) memory.
func InverseCholesky(factored matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(factored); err != nil {
		return nil, fmt.Errorf("InverseCholesky: %w", err)
	}
	id, err := matrix.NewIdentity(factored.Rows())
	if err != nil {
		return nil, fmt.Errorf("InverseCholesky: %w", err)
	}
	inv, err := SolveCholesky(factored, id)
	if err != nil {
		return nil, fmt.Errorf("InverseCholesky: %w", err)
	}

	return inv, nil
}

// LogDet returns log|A| = 2·Σ log L(i,i).
func LogDet(factored matrix.Matrix) (float64, error) {
	pivots, err := checkFactor("LogDet", factored)
	if err != nil {
		return 0, err
	}
	sum := ZeroSum
	for _, v := range pivots {
		sum += math.Log(v)
	}

	return 2 * sum, nil
}
