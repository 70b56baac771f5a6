// Package: matrix
//
// Purpose:
//   - Column statistics that produce covariance-like inputs for Cholesky.
//
// Exposed API:
//   - CenterColumns(X) -> (Xc, means)  // subtract per-column mean
//   - Covariance(X)    -> (Cov, means) // sample covariance of columns: (Xcᵀ Xc)/(r-1)
//
// Determinism & Performance:
//   - Dense fast-paths operate on column-major flat buffers; each column is contiguous.

package matrix

// Operation name constants for unified error wrapping.
const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
)

// centerColumns subtracts the per-column mean from every element.
//
// Returns:
//   - *Dense: centered copy (r×c); X is never mutated.
//   - []float64: column means (len=c).
//
// Errors:
//   - ErrNilMatrix, wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func centerColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	r, c := X.Rows(), X.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	if d, ok := X.(*Dense); ok {
		copy(out.data, d.data)
	} else {
		var v float64
		for j := 0; j < c; j++ {
			for i := 0; i < r; i++ {
				if v, err = X.At(i, j); err != nil {
					return nil, nil, matrixErrorf(opCenterColumns, err)
				}
				out.data[j*r+i] = v
			}
		}
	}

	means := make([]float64, c)
	invR := 1.0 / float64(r)
	var col []float64
	for j := 0; j < c; j++ {
		col = out.data[j*r : (j+1)*r]
		for _, v := range col {
			means[j] += v
		}
		means[j] *= invR
		for i := range col {
			col[i] -= means[j]
		}
	}

	return out, means, nil
}

// covariance computes the sample covariance of columns: Cov = (Xcᵀ·Xc)/(r-1).
//
// Behavior highlights:
//   - Symmetric c×c output; diagonal equals per-column sample variances.
//   - Positive semi-definite; positive definite when the centered columns are
//     linearly independent (needs r > c for generic data).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r<2).
//
// Complexity:
//   - Time O(r*c²), Space O(r*c + c²).
func covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}

	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Xct, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := Mul(Xct, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	scale := 1.0 / float64(r-1)
	for idx := range cov.data {
		cov.data[idx] *= scale
	}

	return cov, means, nil
}
