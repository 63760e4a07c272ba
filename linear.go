package main

// SynthPMH synthesizes a CNOT-only circuit for an invertible GF(2)
// matrix using the Patel-Markov-Hayes sectioned elimination: rows are
// processed in column sections of sectionSize, duplicate sub-rows are
// collapsed first, then Gaussian elimination clears the section below
// the diagonal. A second pass on the transpose clears the rest.
//
// The returned gates, replayed in order as row XORs on an identity
// parity matrix, reproduce m. CNOTs are self-inverse, so replaying the
// list backwards implements the inverse map; GraySynth relies on that
// to return its tracked state to the identity.
func SynthPMH(m *BitMatrix, sectionSize int) []Gate {
	if sectionSize < 1 {
		sectionSize = DefaultSectionSize
	}
	work := m.Clone()
	lower := lwrCNOTSynth(work, sectionSize)
	work = work.Transpose()
	upper := lwrCNOTSynth(work, sectionSize)

	gates := make([]Gate, 0, len(lower)+len(upper))
	// The transpose pass recorded row ops on m^T; transposing an
	// elementary row XOR swaps its control and target.
	for _, op := range upper {
		gates = append(gates, Gate{Type: "CX", Control: op[1], Target: op[0]})
	}
	for i := len(lower) - 1; i >= 0; i-- {
		gates = append(gates, Gate{Type: "CX", Control: lower[i][0], Target: lower[i][1]})
	}
	return gates
}

// lwrCNOTSynth reduces m to upper triangular form in place and returns
// the recorded row operations as (control, target) pairs: each pair
// means row target ^= row control.
func lwrCNOTSynth(m *BitMatrix, sectionSize int) [][2]int {
	n := m.Rows()
	var ops [][2]int

	numSections := (n + sectionSize - 1) / sectionSize
	for sec := 0; sec < numSections; sec++ {
		start := sec * sectionSize
		end := start + sectionSize
		if end > n {
			end = n
		}

		// Collapse rows sharing the same sub-row pattern in this
		// section onto the first row that carries the pattern.
		patt := make(map[string]int)
		for row := start; row < n; row++ {
			key, zero := subRowKey(m, row, start, end)
			if zero {
				continue
			}
			if holder, ok := patt[key]; ok {
				m.RowXOR(row, holder)
				ops = append(ops, [2]int{holder, row})
			} else {
				patt[key] = row
			}
		}

		// Gaussian elimination below the diagonal for this section.
		for col := start; col < end; col++ {
			diagOne := m.Get(col, col) == 1
			for row := col + 1; row < n; row++ {
				if m.Get(row, col) == 0 {
					continue
				}
				if !diagOne {
					m.RowXOR(col, row)
					ops = append(ops, [2]int{row, col})
					diagOne = true
				}
				m.RowXOR(row, col)
				ops = append(ops, [2]int{col, row})
			}
		}
	}
	return ops
}

// subRowKey returns a map key for m[row][start:end] and whether the
// slice is all zero.
func subRowKey(m *BitMatrix, row, start, end int) (string, bool) {
	buf := make([]byte, end-start)
	zero := true
	for j := start; j < end; j++ {
		v := m.Get(row, j)
		buf[j-start] = '0' + v
		if v == 1 {
			zero = false
		}
	}
	return string(buf), zero
}
