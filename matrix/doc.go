// Package matrix offers a dense column-major float64 matrix and a naive,
// in-place Cholesky factorization.
//
// The matrix package provides:
//
//   - Dense: an r×c matrix whose element (i, j) lives at data[j*r+i], with
//     bounds-checked At/Set that return ErrOutOfRange instead of panicking.
//   - Transpose, Dot and Mul, each returning a freshly allocated matrix.
//   - Random and GeneratePositiveDefinite (M·Mᵀ of a uniform random M).
//   - Cholesky, which overwrites the lower triangle of a square positive-definite
//     matrix with its factor L (A = L·Lᵀ) and leaves the strict upper triangle alone.
//
// Every operation accepts the Matrix interface; *Dense takes flat-slice fast
// paths, other implementations (see package store) are served via At/Set.
//
// Errors are package-level sentinels (ErrNonSquare, ErrNotPositiveDefinite,
// ErrDimensionMismatch, ErrOutOfRange, ...) wrapped with an operation tag;
// match them with errors.Is.
//
// Values are not safe for concurrent use. A matrix must be owned by one
// goroutine at a time.
package matrix
