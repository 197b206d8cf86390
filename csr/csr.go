// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package csr encodes dense matrices in compressed-row-storage form.
package csr

import (
	"github.com/ezrec/spmmsim/matrix"
)

// CSR is a compressed-row-storage matrix.
//
// RowPtr has one entry per row plus one; row i owns the entries
// ColIdx[RowPtr[i]:RowPtr[i+1]] and Values[RowPtr[i]:RowPtr[i+1]].
type CSR struct {
	RowPtr []int64
	ColIdx []int64
	Values []int64
}

// Encode scans m in row-major order, keeping only non-zero entries.
func Encode(m matrix.Dense) (enc CSR) {
	enc.RowPtr = make([]int64, 1, len(m)+1)
	enc.ColIdx = []int64{}
	enc.Values = []int64{}

	var nnz int64
	for _, row := range m {
		for j, value := range row {
			if value == 0 {
				continue
			}
			nnz++
			enc.ColIdx = append(enc.ColIdx, int64(j))
			enc.Values = append(enc.Values, value)
		}
		enc.RowPtr = append(enc.RowPtr, nnz)
	}

	return
}

// Rows returns the number of encoded rows.
func (enc CSR) Rows() int {
	return len(enc.RowPtr) - 1
}

// NonZero returns the number of stored entries.
func (enc CSR) NonZero() int {
	return len(enc.Values)
}

// Arrays returns the row pointer, column index and value arrays, in the
// order they are placed in simulator memory.
func (enc CSR) Arrays() [3][]int64 {
	return [3][]int64{enc.RowPtr, enc.ColIdx, enc.Values}
}

// Dense reconstructs a rows x cols matrix, with zeros where no entry is stored.
func (enc CSR) Dense(cols int) (m matrix.Dense) {
	m = make(matrix.Dense, enc.Rows())
	for i := range m {
		m[i] = make([]int64, cols)
		for k := enc.RowPtr[i]; k < enc.RowPtr[i+1]; k++ {
			m[i][enc.ColIdx[k]] = enc.Values[k]
		}
	}
	return
}
