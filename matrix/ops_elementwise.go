// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise micro-kernels reused by the public facade (api.go) and tests.
//
// Determinism & Performance:
//   - Dense fast-paths walk the flat column-major buffer; fallbacks use j→i At loops.

package matrix

import "math"

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1).
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
//   - A NaN element never compares close.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !closeTo(da.data[idx], db.data[idx], rtol, atol) {
					return false, nil // early-exit on first violation
				}
			}

			return true, nil
		}
	}

	var av, bv float64
	var err error
	for j := 0; j < a.Cols(); j++ {
		for i := 0; i < a.Rows(); i++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if !closeTo(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

func closeTo(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}

// ewLowerTriangle copies the lower triangle (diagonal included) of m into a
// fresh matrix of the same shape; the strict upper triangle is zero.
// Time: O(r*c). Space: O(r*c).
func ewLowerTriangle(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opLower, err)
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opLower, err)
	}

	var i, j int
	if d, ok := m.(*Dense); ok {
		for j = 0; j < cols; j++ {
			// rows i >= j of column j
			for i = j; i < rows; i++ {
				out.data[j*rows+i] = d.data[j*rows+i]
			}
		}

		return out, nil
	}

	var v float64
	for j = 0; j < cols; j++ {
		for i = j; i < rows; i++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opLower, err)
			}
			out.data[j*rows+i] = v
		}
	}

	return out, nil
}
