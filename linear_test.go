package main

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replayCNOTs applies the gates in order as row XORs starting from the
// identity. By the SynthPMH contract the result equals its input.
func replayCNOTs(n int, gates []Gate) *BitMatrix {
	m := IdentityMatrix(n)
	for _, g := range gates {
		m.RowXOR(g.Target, g.Control)
	}
	return m
}

// randomInvertible builds an invertible GF(2) matrix by applying random
// row XORs to the identity.
func randomInvertible(rng *rand.Rand, n, ops int) *BitMatrix {
	m := IdentityMatrix(n)
	for k := 0; k < ops; k++ {
		src := rng.Intn(n)
		dst := rng.Intn(n)
		if src == dst {
			continue
		}
		m.RowXOR(dst, src)
	}
	return m
}

func TestSynthPMHIdentity(t *testing.T) {
	for n := 1; n <= 5; n++ {
		gates := SynthPMH(IdentityMatrix(n), DefaultSectionSize)
		assert.Empty(t, gates, "n=%d", n)
	}
}

func TestSynthPMHLeavesInputUntouched(t *testing.T) {
	m, err := BitMatrixFromRows([][]uint8{
		{1, 1},
		{0, 1},
	})
	require.NoError(t, err)
	before := m.Clone()
	SynthPMH(m, DefaultSectionSize)
	assert.True(t, m.Equal(before))
}

func TestSynthPMHReplay(t *testing.T) {
	cases := []struct {
		name string
		rows [][]uint8
	}{
		{
			name: "upper triangular",
			rows: [][]uint8{
				{1, 1},
				{0, 1},
			},
		},
		{
			name: "swap",
			rows: [][]uint8{
				{0, 1},
				{1, 0},
			},
		},
		{
			name: "dense 3x3",
			rows: [][]uint8{
				{1, 1, 0},
				{1, 0, 1},
				{0, 1, 1},
			},
		},
		{
			name: "cyclic shift",
			rows: [][]uint8{
				{0, 0, 0, 1},
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := BitMatrixFromRows(tc.rows)
			require.NoError(t, err)
			gates := SynthPMH(m, DefaultSectionSize)
			for _, g := range gates {
				assert.Equal(t, "CX", g.Type)
				assert.GreaterOrEqual(t, g.Control, 0)
				assert.NotEqual(t, g.Control, g.Target)
			}
			assert.True(t, replayCNOTs(m.Rows(), gates).Equal(m))
		})
	}
}

func TestSynthPMHSectionSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := randomInvertible(rng, 6, 40)
	for sectionSize := 1; sectionSize <= 4; sectionSize++ {
		t.Run(fmt.Sprintf("section=%d", sectionSize), func(t *testing.T) {
			gates := SynthPMH(m, sectionSize)
			assert.True(t, replayCNOTs(m.Rows(), gates).Equal(m))
		})
	}
}

func TestSynthPMHRandomMatrices(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 30; trial++ {
		n := 2 + rng.Intn(5)
		m := randomInvertible(rng, n, 5*n)
		gates := SynthPMH(m, 1+rng.Intn(3))
		require.True(t, replayCNOTs(n, gates).Equal(m),
			"trial %d: replay mismatch for\n%s", trial, m)
	}
}
