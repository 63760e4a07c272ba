package main

import (
	"fmt"
	"strconv"
	"strings"
)

// BitMatrix is a dense matrix over GF(2). Addition is XOR, so every row
// operation the synthesizer performs is an in-place XOR of one row into
// another. Entries are stored as 0/1 bytes, row-major.
type BitMatrix struct {
	rows int
	cols int
	data [][]uint8
}

// NewBitMatrix returns a zero matrix with the given dimensions.
func NewBitMatrix(rows, cols int) *BitMatrix {
	data := make([][]uint8, rows)
	for i := range data {
		data[i] = make([]uint8, cols)
	}
	return &BitMatrix{rows: rows, cols: cols, data: data}
}

// IdentityMatrix returns the n×n identity over GF(2).
func IdentityMatrix(n int) *BitMatrix {
	m := NewBitMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i][i] = 1
	}
	return m
}

// BitMatrixFromRows copies the given rows into a new matrix. All rows
// must have the same length and contain only 0/1 entries.
func BitMatrixFromRows(rows [][]uint8) (*BitMatrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("bit matrix: no rows")
	}
	cols := len(rows[0])
	m := NewBitMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("bit matrix: row %d has %d entries, want %d", i, len(row), cols)
		}
		for j, v := range row {
			if v > 1 {
				return nil, fmt.Errorf("bit matrix: entry (%d,%d) is %d, want 0 or 1", i, j, v)
			}
			m.data[i][j] = v
		}
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *BitMatrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *BitMatrix) Cols() int { return m.cols }

// Get returns the entry at (row, col).
func (m *BitMatrix) Get(row, col int) uint8 { return m.data[row][col] }

// Set assigns the entry at (row, col).
func (m *BitMatrix) Set(row, col int, v uint8) { m.data[row][col] = v }

// Row returns the backing slice for a row. Callers must not grow it.
func (m *BitMatrix) Row(i int) []uint8 { return m.data[i] }

// RowXOR XORs row src into row dst in place.
func (m *BitMatrix) RowXOR(dst, src int) {
	d, s := m.data[dst], m.data[src]
	for k := range d {
		d[k] ^= s[k]
	}
}

// Col returns a copy of column j.
func (m *BitMatrix) Col(j int) []uint8 {
	col := make([]uint8, m.rows)
	for i := 0; i < m.rows; i++ {
		col[i] = m.data[i][j]
	}
	return col
}

// ColEqualsRow reports whether column j equals row q of other.
// Both matrices must have matching dimension n.
func (m *BitMatrix) ColEqualsRow(j int, other *BitMatrix, q int) bool {
	row := other.data[q]
	for i := 0; i < m.rows; i++ {
		if m.data[i][j] != row[i] {
			return false
		}
	}
	return true
}

// RemoveCol deletes column j, shifting later columns left.
func (m *BitMatrix) RemoveCol(j int) {
	for i := range m.data {
		m.data[i] = append(m.data[i][:j], m.data[i][j+1:]...)
	}
	m.cols--
}

// RowAllOnes reports whether row i is entirely ones. A row with no
// columns does not count: the empty product carries no constraint.
func (m *BitMatrix) RowAllOnes(i int) bool {
	if m.cols == 0 {
		return false
	}
	for _, v := range m.data[i] {
		if v == 0 {
			return false
		}
	}
	return true
}

// RowBalance returns max(#zeros, #ones) over row i.
func (m *BitMatrix) RowBalance(i int) int {
	ones := 0
	for _, v := range m.data[i] {
		ones += int(v)
	}
	zeros := m.cols - ones
	if zeros > ones {
		return zeros
	}
	return ones
}

// SplitByRow partitions the columns by their bit in row i, preserving
// column order within each group.
func (m *BitMatrix) SplitByRow(i int) (zeros, ones *BitMatrix) {
	var zeroIdx, oneIdx []int
	for j := 0; j < m.cols; j++ {
		if m.data[i][j] == 0 {
			zeroIdx = append(zeroIdx, j)
		} else {
			oneIdx = append(oneIdx, j)
		}
	}
	pick := func(idx []int) *BitMatrix {
		sub := NewBitMatrix(m.rows, len(idx))
		for r := 0; r < m.rows; r++ {
			for k, j := range idx {
				sub.data[r][k] = m.data[r][j]
			}
		}
		return sub
	}
	return pick(zeroIdx), pick(oneIdx)
}

// Clone returns a deep copy.
func (m *BitMatrix) Clone() *BitMatrix {
	c := NewBitMatrix(m.rows, m.cols)
	for i := range m.data {
		copy(c.data[i], m.data[i])
	}
	return c
}

// Transpose returns a new transposed matrix.
func (m *BitMatrix) Transpose() *BitMatrix {
	t := NewBitMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[j][i] = m.data[i][j]
		}
	}
	return t
}

// Equal reports element-wise equality.
func (m *BitMatrix) Equal(other *BitMatrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		for j := range m.data[i] {
			if m.data[i][j] != other.data[i][j] {
				return false
			}
		}
	}
	return true
}

// Key returns a canonical string form, used for structural dedup.
func (m *BitMatrix) Key() string {
	var sb strings.Builder
	for i := range m.data {
		if i > 0 {
			sb.WriteByte('/')
		}
		for _, v := range m.data[i] {
			sb.WriteByte('0' + v)
		}
	}
	return sb.String()
}

// String renders the matrix for debugging.
func (m *BitMatrix) String() string {
	var sb strings.Builder
	for i := range m.data {
		for _, v := range m.data[i] {
			sb.WriteString(strconv.Itoa(int(v)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
