package matrix

// Random returns a rows×cols matrix of i.i.d. uniform values in [0,1).
// Values come from the process-wide math/rand source unless WithRand is given;
// no seeding or reproducibility is promised for the default source.
//
// Errors:
//   - ErrInvalidDimensions.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Random(rows, cols int, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)

	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opRandom, err)
	}
	for idx := range m.data {
		m.data[idx] = o.float64()
	}

	return m, nil
}

// GeneratePositiveDefinite draws M = Random(rows, cols) and returns Dot(M, Mᵀ).
// MAIN DESCRIPTION:
//   - M·Mᵀ is symmetric positive semi-definite by construction and, for a
//     continuous random square M, positive definite with probability 1.
//   - The result is not verified here; Cholesky is the validity check.
//
// Errors:
//   - ErrInvalidDimensions.
//   - ErrDimensionMismatch when rows != cols: Dot requires M.Cols == Mᵀ.Cols.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func GeneratePositiveDefinite(rows, cols int, opts ...Option) (*Dense, error) {
	m, err := Random(rows, cols, opts...)
	if err != nil {
		return nil, matrixErrorf(opGenPD, err)
	}
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf(opGenPD, err)
	}
	pd, err := Dot(m, mt)
	if err != nil {
		return nil, matrixErrorf(opGenPD, err)
	}

	return pd, nil
}
