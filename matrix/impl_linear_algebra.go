// Package matrix provides operations on any Matrix implementation: transpose,
// the Dot contraction and the conventional matrix product. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches; none of them mutates its operands.
//
// Purpose:
//   - Define operation tags and shared constants for error reporting.
//   - Keep a single product kernel so Dot and Mul accumulate identically.
//
// Notes:
//   - Results are always freshly allocated *Dense values; nothing aliases an input.

package matrix

import "fmt"

// ZeroSum is the initial value for every accumulated dot product.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opTranspose = "Transpose"
	opDot       = "Dot"
	opMul       = "Mul"
	opCholesky  = "Cholesky"
	opRandom    = "Random"
	opGenPD     = "GeneratePositiveDefinite"
	opLower     = "LowerTriangle"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated and shares no storage with the result.
//
// Implementation:
//   - Stage 1: ValidateNotNil(m). Allocate Dense(cols, rows).
//   - Stage 2: If m is *Dense, map column-major offsets directly; else generic At/Set loop.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Transpose(Transpose(m)) reproduces m element-wise.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	// Fast-path: src(i,j) = data[j*rows+i] → dst(j,i) = res.data[i*cols+j].
	if dm, ok := m.(*Dense); ok {
		var baseSrc int
		for j = 0; j < cols; j++ {
			baseSrc = j * rows
			for i = 0; i < rows; i++ {
				res.data[i*cols+j] = dm.data[baseSrc+i]
			}
		}

		return res, nil
	}

	// Fallback: generic interface loop.
	var v float64
	for j = 0; j < cols; j++ {
		for i = 0; i < rows; i++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			if err = res.Set(j, i, v); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
		}
	}

	return res, nil
}

// Dot computes the contraction out(r,c) = Σ_{i<a.Cols} a(r,i)·b(i,c).
// MAIN DESCRIPTION:
//   - Operands are matched on a.Cols == b.Cols; the column count of b is the
//     contraction length. For a square b this is the ordinary product a·b.
//   - Dot(M, Transpose(M)) is the M·Mᵀ used by GeneratePositiveDefinite.
//
// Implementation:
//   - Stage 1: ValidateDotCompatible(a, b).
//   - Stage 2: shared product kernel with increasing-index accumulation.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Cols),
//     ErrOutOfRange (b has fewer rows than the contraction length).
//     Validation happens before any allocation; no partial result is returned.
//
// Complexity:
//   - Time O(a.Rows*b.Cols*a.Cols), Space O(a.Rows*b.Cols).
//
// AI-Hints:
//   - Use Mul for the textbook a.Cols == b.Rows contract on rectangular operands.
func Dot(a, b Matrix) (*Dense, error) {
	if err := ValidateDotCompatible(a, b); err != nil {
		return nil, matrixErrorf(opDot, err)
	}

	return product(a, b, opDot)
}

// Mul computes the conventional matrix product a·b (a.Cols == b.Rows).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(a.Rows*a.Cols*b.Cols), Space O(a.Rows*b.Cols).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return product(a, b, opMul)
}

// product is the naive triple loop shared by Dot and Mul:
// out(r,c) = Σ_{i=0}^{a.Cols-1} a(r,i)·b(i,c), summed in increasing i.
// Callers validate shapes; b must have at least a.Cols rows.
//
// Determinism:
//   - Fixed r→c→i order on both paths, no zero-skipping, so the *Dense
//     fast path and the At fallback accumulate in the same order.
func product(a, b Matrix, op string) (*Dense, error) {
	aRows, inner, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	var (
		r, c, i int
		sum     float64
	)
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			// da(r,i) = da.data[i*aRows+r]; db(i,c) = db.data[c*db.r+i].
			var colB []float64
			for r = 0; r < aRows; r++ {
				for c = 0; c < bCols; c++ {
					colB = db.data[c*db.r : c*db.r+inner]
					sum = ZeroSum
					for i = 0; i < inner; i++ {
						sum += da.data[i*aRows+r] * colB[i]
					}
					res.data[c*aRows+r] = sum
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple loop with full error propagation.
	var av, bv float64
	for r = 0; r < aRows; r++ {
		for c = 0; c < bCols; c++ {
			sum = ZeroSum
			for i = 0; i < inner; i++ {
				if av, err = a.At(r, i); err != nil {
					return nil, matrixErrorf(op, err)
				}
				if bv, err = b.At(i, c); err != nil {
					return nil, matrixErrorf(op, err)
				}
				sum += av * bv
			}
			res.data[c*aRows+r] = sum
		}
	}

	return res, nil
}
