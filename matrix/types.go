// Package matrix: the public Matrix interface.
// Every kernel in this package accepts Matrix. *Dense unlocks flat-slice fast
// paths; any other implementation (e.g. a memory-mapped file from package
// store) is served through At/Set with identical numeric results.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Implementations own their storage exclusively and are not safe for
// concurrent use: a value must be touched by at most one goroutine at a time.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}
