// Package cholesky is a small dense linear-algebra toolkit built around a
// naive, in-place Cholesky factorization.
//
// 🚀 What is in here?
//
//	• Dense column-major float64 matrices with bounds-checked access
//	• Transpose, Dot (contraction over b's columns) and the ordinary product Mul
//	• Random matrices and M·Mᵀ positive-definite generation
//	• Cholesky: A = L·Lᵀ written over A's lower triangle, optional rollback
//	• Memory-mapped matrix files that every kernel can factorize in place
//	• A benchmark command that times generate+factorize loops
//
// Under the hood, everything is organized under four packages:
//
//	matrix/         Dense, Matrix interface, Transpose/Dot/Mul, Random, Cholesky, statistics helpers
//	matrix/ops/     SolveCholesky, InverseCholesky, LogDet on a finished factor
//	store/          mmap-backed *store.File implementing matrix.Matrix, Save/Load
//	cmd/cholbench/  CLI benchmark harness (zerolog logging, uilive progress)
//
// Quick example:
//
//	a, _ := matrix.GeneratePositiveDefinite(16, 16)
//	if err := a.Cholesky(); err != nil {
//		// errors.Is(err, matrix.ErrNotPositiveDefinite)
//	}
//	l, _ := matrix.LowerTriangle(a)
//
//	go get github.com/katalvlaran/cholesky/matrix
package cholesky
