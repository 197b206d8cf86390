// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package matrix provides the dense integer matrices fed to the simulator.
package matrix

import (
	"errors"

	"github.com/ezrec/spmmsim/translate"
)

var f = translate.From

var (
	ErrEmpty  = errors.New(f("matrix empty"))
	ErrRagged = errors.New(f("matrix rows differ in length"))

	errNotInteger = errors.New(f("not an integer"))
)

// ErrValue indicates a cell that does not hold an integer.
type ErrValue struct {
	Row    int
	Column int
	Value  any
}

func (err ErrValue) Error() string {
	return f("matrix cell (%d,%d) value %v is not an integer", err.Row, err.Column, err.Value)
}

// Dense is a row-major rectangular integer matrix.
type Dense [][]int64

// Example returns the 4x4 demonstration matrix used by the SpMM kernel.
func Example() Dense {
	return Dense{
		{3, 2, 0, 0},
		{0, 0, 0, 0},
		{4, 5, 1, 0},
		{0, 0, 3, 2},
	}
}

// Rows returns the number of rows.
func (m Dense) Rows() int {
	return len(m)
}

// Cols returns the number of columns, taken from the first row.
func (m Dense) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Validate checks that the matrix is non-empty and rectangular.
func (m Dense) Validate() error {
	if m.Rows() == 0 || m.Cols() == 0 {
		return ErrEmpty
	}
	cols := m.Cols()
	for _, row := range m {
		if len(row) != cols {
			return ErrRagged
		}
	}
	return nil
}

// Transpose returns a new matrix with rows and columns exchanged.
func (m Dense) Transpose() (t Dense) {
	rows, cols := m.Rows(), m.Cols()
	t = make(Dense, cols)
	for j := range cols {
		t[j] = make([]int64, rows)
		for i := range rows {
			t[j][i] = m[i][j]
		}
	}
	return
}

// Flatten returns the row-major contents.
func (m Dense) Flatten() (flat []int64) {
	flat = make([]int64, 0, m.Rows()*m.Cols())
	for _, row := range m {
		flat = append(flat, row...)
	}
	return
}

// Equal returns true if both matrices have identical shape and contents.
func (m Dense) Equal(other Dense) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}
