// Package: matrix
//
// Purpose:
//   - In-place Cholesky factorization A = L·Lᵀ of a square positive-definite matrix.
//   - Naive, unpivoted, column-by-column (j outer, k inner) reference algorithm.
//
// Contract:
//   - Reads and writes ONLY the lower triangle (including the diagonal).
//     The strict upper triangle keeps whatever the caller stored there.
//   - Non-square input fails with ErrNonSquare before any element is touched.
//   - A non-positive (or NaN) diagonal candidate fails with ErrNotPositiveDefinite;
//     prior columns are already overwritten unless WithRollback is given.

package matrix

import (
	"fmt"
	"math"
)

// Cholesky overwrites the lower triangle of m with its Cholesky factor L.
// MAIN DESCRIPTION:
//   - For each column j: L(j,k) = (A(j,k) - Σ_{i<k} L(k,i)·L(j,i)) / L(k,k) for k<j,
//     then L(j,j) = sqrt(A(j,j) - Σ_{k<j} L(j,k)²).
//   - Every L(j,k) depends only on entries finalized earlier in the same call,
//     so the j→k→i order is part of the contract.
//
// Implementation:
//   - Stage 1: ValidateSquare (and ValidateSymmetric under WithSymmetryCheck).
//   - Stage 2: snapshot under WithRollback.
//   - Stage 3: *Dense fast path on the column-major buffer, or At/Set fallback.
//   - Stage 4: on ErrNotPositiveDefinite restore the snapshot if one was taken.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry (opt-in), ErrNotPositiveDefinite
//     (wrapped with the failing column), accessor errors from custom Matrix types.
//
// Complexity:
//   - Time O(n³), Space O(1) (O(n²) with WithRollback).
//
// AI-Hints:
//   - LowerTriangle(m) after success yields a clean L with a zeroed upper triangle.
//   - Treat a failed matrix as garbage unless WithRollback was requested.
func Cholesky(m Matrix, opts ...Option) error {
	o := gatherOptions(opts...)

	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opCholesky, err)
	}
	if o.symmetryCheck {
		if err := ValidateSymmetric(m, o.symmetryEps); err != nil {
			return matrixErrorf(opCholesky, err)
		}
	}

	var snapshot Matrix
	if o.rollback {
		snapshot = m.Clone()
	}

	var err error
	if d, ok := m.(*Dense); ok {
		err = choleskyDense(d)
	} else {
		err = choleskyGeneric(m)
	}
	if err == nil {
		return nil
	}

	if snapshot != nil {
		if rerr := restore(m, snapshot); rerr != nil {
			return matrixErrorf(opCholesky, fmt.Errorf("rollback: %w", rerr))
		}
	}

	return matrixErrorf(opCholesky, err)
}

// Cholesky factorizes m in place; see the package-level Cholesky.
func (m *Dense) Cholesky(opts ...Option) error {
	return Cholesky(m, opts...)
}

// notPositiveDefinite reports the failing column and its diagonal candidate.
func notPositiveDefinite(j int, diag float64) error {
	return fmt.Errorf("column %d: diagonal %g: %w", j, diag, ErrNotPositiveDefinite)
}

// choleskyDense runs the factorization on the column-major buffer, L(i,j) = data[j*n+i].
func choleskyDense(m *Dense) error {
	n := m.r
	data := m.data

	var (
		i, j, k int
		s, d    float64
		diag    float64
	)
	for j = 0; j < n; j++ {
		d = ZeroSum
		for k = 0; k < j; k++ {
			s = ZeroSum
			for i = 0; i < k; i++ {
				s += data[i*n+k] * data[i*n+j] // L(k,i)·L(j,i)
			}
			s = (data[k*n+j] - s) / data[k*n+k]
			data[k*n+j] = s // L(j,k)
			d += s * s
		}
		diag = data[j*n+j] - d
		if !(diag > 0) {
			return notPositiveDefinite(j, diag)
		}
		data[j*n+j] = math.Sqrt(diag)
	}

	return nil
}

// choleskyGeneric is the accessor-based twin of choleskyDense for non-Dense
// implementations. Same loop order, same arithmetic.
func choleskyGeneric(m Matrix) error {
	n := m.Rows()

	var (
		i, j, k       int
		s, d, diag    float64
		lki, lji, akk float64
		ajk, ajj      float64
		err           error
	)
	for j = 0; j < n; j++ {
		d = ZeroSum
		for k = 0; k < j; k++ {
			s = ZeroSum
			for i = 0; i < k; i++ {
				if lki, err = m.At(k, i); err != nil {
					return err
				}
				if lji, err = m.At(j, i); err != nil {
					return err
				}
				s += lki * lji
			}
			if ajk, err = m.At(j, k); err != nil {
				return err
			}
			if akk, err = m.At(k, k); err != nil {
				return err
			}
			s = (ajk - s) / akk
			if err = m.Set(j, k, s); err != nil {
				return err
			}
			d += s * s
		}
		if ajj, err = m.At(j, j); err != nil {
			return err
		}
		diag = ajj - d
		if !(diag > 0) {
			return notPositiveDefinite(j, diag)
		}
		if err = m.Set(j, j, math.Sqrt(diag)); err != nil {
			return err
		}
	}

	return nil
}

// restore copies every element of snapshot back into m (same shape).
func restore(m, snapshot Matrix) error {
	if dst, ok := m.(*Dense); ok {
		if src, ok := snapshot.(*Dense); ok {
			copy(dst.data, src.data)

			return nil
		}
	}

	var v float64
	var err error
	for j := 0; j < m.Cols(); j++ {
		for i := 0; i < m.Rows(); i++ {
			if v, err = snapshot.At(i, j); err != nil {
				return err
			}
			if err = m.Set(i, j, v); err != nil {
				return err
			}
		}
	}

	return nil
}
