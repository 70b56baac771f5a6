// Package store keeps dense matrices in memory-mapped files.
//
// A *File implements matrix.Matrix directly on top of the mapping, so every
// kernel of package matrix (Cholesky included) can run in place on disk:
//
//	f, _ := store.Open("cov.mat")
//	defer f.Close()
//	err := matrix.Cholesky(f)
//
// File layout (little-endian):
//
//	offset  0: magic "CHOLMAT1"
//	offset  8: rows     uint64
//	offset 16: cols     uint64
//	offset 24: reserved uint64 (zero)
//	offset 32: rows*cols float64 values in column-major order
//
// A *File is not safe for concurrent use.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/katalvlaran/cholesky/matrix"
)

const (
	magic      = "CHOLMAT1"
	headerSize = 32
	cellSize   = 8
)

var (
	// ErrBadHeader is returned when a file is too short or carries the wrong magic/shape.
	ErrBadHeader = errors.New("store: bad header")

	// ErrFileSize is returned when the file length disagrees with the header shape.
	ErrFileSize = errors.New("store: file size does not match header")

	// ErrReadOnly is returned by Set on a file opened with OpenReadOnly.
	ErrReadOnly = errors.New("store: mapping is read-only")

	// ErrClosed is returned by any access after Close.
	ErrClosed = errors.New("store: file is closed")
)

var byteOrder = binary.LittleEndian

// File is a memory-mapped column-major matrix.
type File struct {
	file       *os.File
	data       mmap.MMap
	rows, cols int
	readOnly   bool
}

var _ matrix.Matrix = (*File)(nil)

func fileSize(rows, cols int) int64 {
	return headerSize + int64(rows)*int64(cols)*cellSize
}

// Create makes (or truncates) path and maps a zero-filled rows×cols matrix read-write.
func Create(path string, rows, cols int) (*File, error) {
	if rows <= 0 || cols <= 0 || !shapeFits(uint64(rows), uint64(cols)) {
		return nil, fmt.Errorf("store: Create: %d×%d: %w", rows, cols, matrix.ErrInvalidDimensions)
	}

	f := &File{rows: rows, cols: cols}
	var err error
	if f.file, err = os.Create(path); err != nil {
		return nil, err
	}
	if err = f.file.Truncate(fileSize(rows, cols)); err != nil {
		f.abort()
		return nil, err
	}
	if f.data, err = mmap.Map(f.file, mmap.RDWR, 0); err != nil {
		f.abort()
		return nil, err
	}

	copy(f.data[:8], magic)
	byteOrder.PutUint64(f.data[8:16], uint64(rows))
	byteOrder.PutUint64(f.data[16:24], uint64(cols))
	byteOrder.PutUint64(f.data[24:32], 0)
	if err = f.data.Flush(); err != nil {
		f.abort()
		return nil, err
	}

	return f, nil
}

// Open maps an existing matrix file read-write.
func Open(path string) (*File, error) {
	return open(path, false)
}

// OpenReadOnly maps an existing matrix file read-only; Set fails with ErrReadOnly.
func OpenReadOnly(path string) (*File, error) {
	return open(path, true)
}

func open(path string, readOnly bool) (*File, error) {
	flag, prot := os.O_RDWR, mmap.RDWR
	if readOnly {
		flag, prot = os.O_RDONLY, mmap.RDONLY
	}

	f := &File{readOnly: readOnly}
	var err error
	if f.file, err = os.OpenFile(path, flag, 0); err != nil {
		return nil, err
	}
	if err = f.mapAndValidate(path, prot); err != nil {
		f.abort()
		return nil, err
	}

	return f, nil
}

// mapAndValidate checks the header against the file length, then maps the file.
func (f *File) mapAndValidate(path string, prot int) error {
	info, err := f.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < headerSize {
		return fmt.Errorf("store: %s: %d bytes: %w", path, info.Size(), ErrBadHeader)
	}

	var head [headerSize]byte
	if _, err = f.file.ReadAt(head[:], 0); err != nil {
		return err
	}
	if string(head[:8]) != magic {
		return fmt.Errorf("store: %s: magic %q: %w", path, head[:8], ErrBadHeader)
	}
	rows, cols := byteOrder.Uint64(head[8:16]), byteOrder.Uint64(head[16:24])
	if !shapeFits(rows, cols) {
		return fmt.Errorf("store: %s: shape %d×%d: %w", path, rows, cols, ErrBadHeader)
	}
	f.rows, f.cols = int(rows), int(cols)
	if want := fileSize(f.rows, f.cols); info.Size() != want {
		return fmt.Errorf("store: %s: %d bytes, want %d: %w", path, info.Size(), want, ErrFileSize)
	}

	f.data, err = mmap.Map(f.file, prot, 0)

	return err
}

// maxCells bounds rows*cols so that neither the file size nor any cell offset overflows int.
const maxCells = (math.MaxInt - headerSize) / cellSize

// shapeFits reports whether a rows×cols payload is addressable.
func shapeFits(rows, cols uint64) bool {
	if rows == 0 || cols == 0 {
		return false
	}
	hi, cells := bits.Mul64(rows, cols)

	return hi == 0 && cells <= maxCells
}

// abort releases whatever a failed constructor managed to acquire.
func (f *File) abort() {
	if f.data != nil {
		_ = f.data.Unmap()
		f.data = nil
	}
	if f.file != nil {
		_ = f.file.Close()
	}
}

// IsNil reports whether f is a typed nil, so matrix.ValidateNotNil can reject it.
func (f *File) IsNil() bool { return f == nil }

// Rows returns the number of rows.
func (f *File) Rows() int { return f.rows }

// Cols returns the number of columns.
func (f *File) Cols() int { return f.cols }

func (f *File) offset(method string, row, col int) (int, error) {
	if f.data == nil {
		return 0, fmt.Errorf("File.%s(%d,%d): %w", method, row, col, ErrClosed)
	}
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return 0, fmt.Errorf("File.%s(%d,%d): %w", method, row, col, matrix.ErrOutOfRange)
	}

	return headerSize + (col*f.rows+row)*cellSize, nil
}

// At reads element (row, col) from the mapping.
func (f *File) At(row, col int) (float64, error) {
	off, err := f.offset("At", row, col)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(byteOrder.Uint64(f.data[off : off+cellSize])), nil
}

// Set writes element (row, col) into the mapping. Durable after Flush or Close.
func (f *File) Set(row, col int, v float64) error {
	if f.readOnly {
		return fmt.Errorf("File.Set(%d,%d): %w", row, col, ErrReadOnly)
	}
	off, err := f.offset("Set", row, col)
	if err != nil {
		return err
	}
	byteOrder.PutUint64(f.data[off:off+cellSize], math.Float64bits(v))

	return nil
}

// Clone copies the mapped values into an in-memory *matrix.Dense.
// It returns nil once the file is closed.
func (f *File) Clone() matrix.Matrix {
	d, err := f.Dense()
	if err != nil {
		return nil
	}

	return d
}

// Dense copies the mapped values into an in-memory matrix.
func (f *File) Dense() (*matrix.Dense, error) {
	if f.data == nil {
		return nil, fmt.Errorf("File.Dense: %w", ErrClosed)
	}
	vals := make([]float64, f.rows*f.cols)
	payload := f.data[headerSize:]
	for idx := range vals {
		vals[idx] = math.Float64frombits(byteOrder.Uint64(payload[idx*cellSize:]))
	}

	return matrix.FromData(f.rows, f.cols, vals)
}

// Flush writes dirty pages back to the file.
func (f *File) Flush() error {
	if f.data == nil {
		return ErrClosed
	}
	if f.readOnly {
		return nil
	}

	return f.data.Flush()
}

// Close flushes, unmaps and closes the file. Closing twice is a no-op.
func (f *File) Close() (err error) {
	if f.data == nil {
		return nil
	}
	if err = f.Flush(); err != nil {
		return
	}
	if err = f.data.Unmap(); err != nil {
		return
	}
	f.data = nil

	return f.file.Close()
}

// Save writes m to path as a new matrix file.
func Save(path string, m matrix.Matrix) (err error) {
	if err = matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("store: Save: %w", err)
	}
	f, err := Create(path, m.Rows(), m.Cols())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var v float64
	for j := 0; j < m.Cols(); j++ {
		for i := 0; i < m.Rows(); i++ {
			if v, err = m.At(i, j); err != nil {
				return fmt.Errorf("store: Save: %w", err)
			}
			if err = f.Set(i, j, v); err != nil {
				return fmt.Errorf("store: Save: %w", err)
			}
		}
	}

	return nil
}

// Load reads a matrix file into memory.
func Load(path string) (*matrix.Dense, error) {
	f, err := OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Dense()
}
