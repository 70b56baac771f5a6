package matrix_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/cholesky/matrix"
)

// ExampleCholesky factorizes a 3×3 covariance-like matrix in place and prints L.
func ExampleCholesky() {
	a, _ := matrix.FromData(3, 3, []float64{
		0.68862408, 1.14997528, 0.5580459,
		1.14997528, 1.98713229, 0.90468023,
		0.5580459, 0.90468023, 0.46998922,
	})
	if err := a.Cholesky(); err != nil {
		fmt.Println("factorization failed:", err)
		return
	}

	l, _ := matrix.LowerTriangle(a)
	for i := 0; i < l.Rows(); i++ {
		for j := 0; j < l.Cols(); j++ {
			v, _ := l.At(i, j)
			fmt.Printf("%8.4f", v)
		}
		fmt.Println()
	}

	// Output:
	//   0.8298  0.0000  0.0000
	//   1.3858  0.2583  0.0000
	//   0.6725 -0.1054  0.0815
}

// ExampleCholesky_notPositiveDefinite shows how callers detect a failed factorization.
func ExampleCholesky_notPositiveDefinite() {
	a, _ := matrix.FromRows([][]float64{{1, 2}, {2, 1}})

	err := matrix.Cholesky(a, matrix.WithRollback())
	fmt.Println(errors.Is(err, matrix.ErrNotPositiveDefinite))
	fmt.Print(a)

	// Output:
	// true
	// [1, 2]
	// [2, 1]
}

// ExampleTranspose shows the column-major layout round trip.
func ExampleTranspose() {
	a, _ := matrix.FromData(2, 2, []float64{1, 3, 2, 4})
	at, _ := matrix.Transpose(a)
	fmt.Print(a)
	fmt.Println(at.Data())

	// Output:
	// [1, 2]
	// [3, 4]
	// [1 2 3 4]
}
