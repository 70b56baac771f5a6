// Package matrix: thin public facade over the private ew*/statistics kernels.
// Kernels live in impl_*.go and ops_elementwise.go; this file only exposes them.
package matrix

// NewZeros allocates a rows×cols zero matrix. Alias of NewDense.
func NewZeros(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }

// NewIdentity returns the n×n identity matrix.
// Errors: ErrInvalidDimensions when n <= 0.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// LowerTriangle copies the lower triangle (with diagonal) of m and zeroes the rest.
// After a successful Cholesky it yields the factor L proper.
func LowerTriangle(m Matrix) (*Dense, error) { return ewLowerTriangle(m) }

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds element-wise.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// CenterColumns subtracts each column's mean; returns the centered copy and the means.
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// Covariance returns the sample covariance of X's columns and the column means.
// The result is a natural input for Cholesky when X has more rows than columns.
func Covariance(X Matrix) (*Dense, []float64, error) { return covariance(X) }

// Reconstruct returns L·Lᵀ where L is the lower triangle of a factorized matrix.
// It is the inverse of Cholesky up to rounding and is used to verify factors.
//
// Complexity: O(n³).
func Reconstruct(factored Matrix) (*Dense, error) {
	l, err := LowerTriangle(factored)
	if err != nil {
		return nil, err
	}
	lt, err := Transpose(l)
	if err != nil {
		return nil, err
	}

	return Mul(l, lt)
}
