package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatrix(t *testing.T, rows [][]uint8) *BitMatrix {
	t.Helper()
	m, err := BitMatrixFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestBitMatrixFromRows(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 0, 1}, {0, 1, 1}})
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, uint8(1), m.Get(0, 0))
	assert.Equal(t, uint8(0), m.Get(1, 0))

	_, err := BitMatrixFromRows(nil)
	assert.Error(t, err)
	_, err = BitMatrixFromRows([][]uint8{{1, 0}, {1}})
	assert.Error(t, err)
	_, err = BitMatrixFromRows([][]uint8{{3}})
	assert.Error(t, err)
}

func TestIdentityMatrix(t *testing.T) {
	m := IdentityMatrix(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var want uint8
			if i == j {
				want = 1
			}
			assert.Equal(t, want, m.Get(i, j))
		}
	}
}

func TestRowXOR(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 1, 0}, {0, 1, 1}})
	m.RowXOR(0, 1)
	assert.Equal(t, []uint8{1, 0, 1}, m.Row(0))
	assert.Equal(t, []uint8{0, 1, 1}, m.Row(1))

	// XOR-ing again restores the original row.
	m.RowXOR(0, 1)
	assert.Equal(t, []uint8{1, 1, 0}, m.Row(0))
}

func TestColEqualsRow(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 0}, {0, 1}})
	id := IdentityMatrix(2)
	assert.True(t, m.ColEqualsRow(0, id, 0))
	assert.False(t, m.ColEqualsRow(0, id, 1))
	assert.True(t, m.ColEqualsRow(1, id, 1))
}

func TestRemoveCol(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 0, 1}, {0, 1, 1}})
	m.RemoveCol(1)
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, []uint8{1, 1}, m.Row(0))
	assert.Equal(t, []uint8{0, 1}, m.Row(1))
}

func TestRowAllOnes(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 1}, {1, 0}})
	assert.True(t, m.RowAllOnes(0))
	assert.False(t, m.RowAllOnes(1))

	empty := NewBitMatrix(2, 0)
	assert.False(t, empty.RowAllOnes(0))
}

func TestRowBalance(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 1, 1, 0}, {1, 0, 1, 0}})
	assert.Equal(t, 3, m.RowBalance(0))
	assert.Equal(t, 2, m.RowBalance(1))
}

func TestSplitByRowPreservesColumnOrder(t *testing.T) {
	m := mustMatrix(t, [][]uint8{
		{1, 0, 1, 0},
		{0, 1, 1, 1},
	})
	zeros, ones := m.SplitByRow(0)

	assert.Equal(t, 2, zeros.Cols())
	assert.Equal(t, []uint8{0, 0}, zeros.Row(0))
	assert.Equal(t, []uint8{1, 1}, zeros.Row(1))

	assert.Equal(t, 2, ones.Cols())
	assert.Equal(t, []uint8{1, 1}, ones.Row(0))
	assert.Equal(t, []uint8{0, 1}, ones.Row(1))
}

func TestCloneIsDeep(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 0}, {0, 1}})
	c := m.Clone()
	c.Set(0, 1, 1)
	assert.Equal(t, uint8(0), m.Get(0, 1))
	assert.NotEqual(t, m.Key(), c.Key())
}

func TestTranspose(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 0, 1}, {0, 1, 1}})
	tr := m.Transpose()
	assert.Equal(t, 3, tr.Rows())
	assert.Equal(t, 2, tr.Cols())
	assert.Equal(t, []uint8{1, 0}, tr.Row(0))
	assert.Equal(t, []uint8{0, 1}, tr.Row(1))
	assert.Equal(t, []uint8{1, 1}, tr.Row(2))
	assert.True(t, tr.Transpose().Equal(m))
}

func TestKey(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 0}, {0, 1}})
	assert.Equal(t, "10/01", m.Key())
	assert.Equal(t, m.Key(), m.Clone().Key())
}

func TestColCopy(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 0}, {0, 1}})
	col := m.Col(0)
	assert.Equal(t, []uint8{1, 0}, col)
	col[0] = 0
	assert.Equal(t, uint8(1), m.Get(0, 0))
}
