package matrix

import "fmt"

const (
	opFromRows = "FromRows"
	opToRows   = "ToRows"
)

// FromRows builds a Dense from a row-major literal: rows[i][j] becomes (i, j).
// Handy for fixtures written the way matrices are printed.
//
// Errors:
//   - ErrBadShape on an empty literal, an empty first row, or ragged rows.
//
// Time Complexity: O(r*c)
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(opFromRows, ErrBadShape)
	}
	r, c := len(rows), len(rows[0])
	m, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opFromRows, err)
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf(opFromRows, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), c, ErrBadShape))
		}
		for j, v := range row {
			m.data[j*r+i] = v
		}
	}

	return m, nil
}

// ToRows returns a row-major [][]float64 copy of m.
//
// Time Complexity: O(r*c)
func ToRows(m Matrix) ([][]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToRows, err)
	}
	r, c := m.Rows(), m.Cols()
	out := make([][]float64, r)
	var err error
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			if out[i][j], err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opToRows, err)
			}
		}
	}

	return out, nil
}
