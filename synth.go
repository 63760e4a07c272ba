package main

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultSectionSize is the row/column grouping granularity handed to
// SynthPMH when the caller does not choose one.
const DefaultSectionSize = 2

// RotationKind identifies a single-qubit phase rotation.
type RotationKind int

const (
	RotT RotationKind = iota
	RotTdg
	RotS
	RotSdg
	RotZ
	RotPhase // arbitrary angle, carried in Rotation.Angle
)

// Rotation is a parsed angle label. Labels are decided once, before any
// synthesis work starts, so a malformed label fails the whole call up
// front and the engine itself never re-parses strings.
type Rotation struct {
	Kind  RotationKind
	Angle float64 // radians, RotPhase only, already reduced
}

// ParseRotation maps an angle label to its rotation. The five symbolic
// tags name fixed gates; anything else must parse as a radian value and
// is reduced modulo pi. The reduction really is modulo pi, not 2*pi,
// matching the reference phase-polynomial synthesis this implements.
func ParseRotation(label string) (Rotation, error) {
	switch label {
	case "t":
		return Rotation{Kind: RotT}, nil
	case "tdg":
		return Rotation{Kind: RotTdg}, nil
	case "s":
		return Rotation{Kind: RotS}, nil
	case "sdg":
		return Rotation{Kind: RotSdg}, nil
	case "z":
		return Rotation{Kind: RotZ}, nil
	}
	v, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return Rotation{}, fmt.Errorf("angle label %q: %w", label, err)
	}
	return Rotation{Kind: RotPhase, Angle: math.Mod(v, math.Pi)}, nil
}

// gate returns the emitted instruction for this rotation on a qubit.
func (r Rotation) gate(qubit int) Gate {
	switch r.Kind {
	case RotT:
		return Gate{Type: "T", Target: qubit, Control: -1}
	case RotTdg:
		return Gate{Type: "T", Target: qubit, Control: -1, IsDagger: true}
	case RotS:
		return Gate{Type: "S", Target: qubit, Control: -1}
	case RotSdg:
		return Gate{Type: "S", Target: qubit, Control: -1, IsDagger: true}
	case RotZ:
		return Gate{Type: "Z", Target: qubit, Control: -1}
	default:
		return Gate{Type: "P", Target: qubit, Control: -1, Params: []float64{r.Angle}}
	}
}

// angle returns the rotation angle in radians.
func (r Rotation) angle() float64 {
	switch r.Kind {
	case RotT:
		return math.Pi / 4
	case RotTdg:
		return -math.Pi / 4
	case RotS:
		return math.Pi / 2
	case RotSdg:
		return -math.Pi / 2
	case RotZ:
		return math.Pi
	default:
		return r.Angle
	}
}

// workItem is one node of the partition search: a column subset of the
// phase-term matrix, the rows still eligible as pivots, and the row a
// CNOT may be targeted at (epsilon == n means none yet).
type workItem struct {
	m    *BitMatrix
	rows []int
	ep   int
}

// key is the canonical form used for structural queue dedup.
func (w workItem) key() string {
	s := w.m.Key() + "|"
	for _, r := range w.rows {
		s += strconv.Itoa(r) + ","
	}
	return s + "|" + strconv.Itoa(w.ep)
}

// synthesizer holds the mutable state of one GraySynth call: the global
// residual phase terms with their rotations, the parity state tracker,
// and the instruction sink.
type synthesizer struct {
	n        int
	residual *BitMatrix // n × (remaining terms); column j pairs with rots[j]
	rots     []Rotation
	state    *BitMatrix // n × n, row q = parity accumulated on qubit q
	out      []Gate
}

// GraySynth synthesizes a CNOT + phase-gate instruction list realizing
// the given phase polynomial, minimizing CNOT count with the Gray-code
// partitioning strategy of Amy, Azimzadeh and Mosca.
//
// terms is an n×m 0/1 matrix: column j is the GF(2) combination of the
// n input qubits that receives the j-th rotation. labels holds the m
// angle labels, index-aligned with the columns. sectionSize tunes the
// residual linear synthesizer; pass 0 for the default.
//
// The returned instructions contain only CX and single-qubit phase
// gates and leave the overall linear action of the circuit at the
// identity: every column is realized on some qubit exactly once,
// rotated, and unwound again.
func GraySynth(terms [][]uint8, labels []string, sectionSize int) ([]Gate, error) {
	if sectionSize == 0 {
		sectionSize = DefaultSectionSize
	}
	if sectionSize < 1 {
		return nil, fmt.Errorf("gray synth: section size %d, want >= 1", sectionSize)
	}
	residual, err := BitMatrixFromRows(terms)
	if err != nil {
		return nil, fmt.Errorf("gray synth: %w", err)
	}
	n := residual.Rows()
	if len(labels) != residual.Cols() {
		return nil, fmt.Errorf("gray synth: %d labels for %d phase terms", len(labels), residual.Cols())
	}
	for j := 0; j < residual.Cols(); j++ {
		zero := true
		for i := 0; i < n; i++ {
			if residual.Get(i, j) == 1 {
				zero = false
				break
			}
		}
		if zero {
			return nil, fmt.Errorf("gray synth: phase term %d is the zero combination", j)
		}
	}
	rots := make([]Rotation, len(labels))
	for j, label := range labels {
		if rots[j], err = ParseRotation(label); err != nil {
			return nil, fmt.Errorf("gray synth: %w", err)
		}
	}

	sy := &synthesizer{
		n:        n,
		residual: residual,
		rots:     rots,
		state:    IdentityMatrix(n),
	}
	sy.prepass()
	sy.partition(sy.residual.Clone())

	// The partition stage left the circuit's linear action at state;
	// append the inverse as CNOTs by replaying the PMH synthesis of
	// state backwards.
	lin := SynthPMH(sy.state, sectionSize)
	for i := len(lin) - 1; i >= 0; i-- {
		sy.out = append(sy.out, lin[i])
	}
	return sy.out, nil
}

// prepass scans every qubit in index order and consumes the phase terms
// already realized on its current parity. With the state tracker still
// at the identity this captures terms that are a bare input bit, but it
// is written against the live state so the same scan is reusable after
// CNOTs. Running it twice in a row is a no-op.
func (sy *synthesizer) prepass() {
	for q := 0; q < sy.n; q++ {
		sy.matchQubit(q)
	}
}

// matchQubit consumes every remaining phase term equal to the current
// parity of qubit q, emitting its rotation on q. After a removal the
// scan resumes at the same index, so runs of equal columns all match.
func (sy *synthesizer) matchQubit(q int) {
	for j := 0; j < sy.residual.Cols(); {
		if !sy.residual.ColEqualsRow(j, sy.state, q) {
			j++
			continue
		}
		sy.out = append(sy.out, sy.rots[j].gate(q))
		sy.residual.RemoveCol(j)
		sy.rots = append(sy.rots[:j], sy.rots[j+1:]...)
	}
}

// emitCNOT appends CNOT(control -> target) and applies the matching row
// XOR to the parity state. Every emitted CNOT goes through here, so the
// state always tracks the circuit history exactly.
func (sy *synthesizer) emitCNOT(control, target int) {
	sy.out = append(sy.out, Gate{Type: "CX", Control: control, Target: target})
	sy.state.RowXOR(target, control)
}

// partition runs the Gray-code work-queue search over the residual
// phase-term matrix. Each popped node is row-eliminated to a fixpoint
// (emitting CNOTs onto its excluded row), then bipartitioned on the
// most balanced eligible row. Row eliminations are broadcast into every
// queued node so pending submatrices stay consistent with the state.
func (sy *synthesizer) partition(cols *BitMatrix) {
	n := sy.n
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	stack := []workItem{{m: cols, rows: rows, ep: n}}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.m.Cols() == 0 {
			continue
		}

		if it.ep < n {
			stack, it = sy.eliminateRows(stack, it)
			if it.m.Cols() == 0 {
				continue
			}
		}
		if len(it.rows) == 0 {
			continue
		}

		// Pivot on the row maximizing the larger partition; ties go
		// to the first eligible row.
		pivot := it.rows[0]
		best := it.m.RowBalance(pivot)
		for _, r := range it.rows[1:] {
			if b := it.m.RowBalance(r); b > best {
				pivot, best = r, b
			}
		}

		cols0, cols1 := it.m.SplitByRow(pivot)
		rest := make([]int, 0, len(it.rows)-1)
		for _, r := range it.rows {
			if r != pivot {
				rest = append(rest, r)
			}
		}
		ep1 := it.ep
		if ep1 == n {
			ep1 = pivot
		}
		// cols1 first so the zero branch is processed next.
		stack = append(stack,
			workItem{m: cols1, rows: rest, ep: ep1},
			workItem{m: cols0, rows: rest, ep: it.ep})
	}
}

// eliminateRows runs the row-elimination fixpoint on it: whenever some
// row j != ep of the submatrix is entirely ones, qubit j's parity
// divides every phase term in the node, so CNOT(j -> ep) is emitted,
// freshly realizable terms are matched off the global residual, and the
// row XOR is propagated into every queued submatrix (including this
// one, re-pushed and re-popped around the dedup, as the queue may
// collapse onto an earlier identical node).
func (sy *synthesizer) eliminateRows(stack []workItem, it workItem) ([]workItem, workItem) {
	for changed := true; changed; {
		changed = false
		for j := 0; j < sy.n; j++ {
			if it.ep >= sy.n {
				return stack, it
			}
			if j == it.ep || !it.m.RowAllOnes(j) {
				continue
			}
			changed = true
			ep := it.ep

			sy.emitCNOT(j, ep)
			sy.matchQubit(ep)

			stack = append(stack, it)
			stack = dedupItems(stack)
			for _, w := range stack {
				if w.m.Cols() > 0 {
					w.m.RowXOR(j, ep)
				}
			}
			it = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}
	return stack, it
}

// dedupItems drops structurally identical work items, keeping the first
// occurrence. This runs before the row-XOR broadcast, matching the
// elimination protocol's ordering.
func dedupItems(items []workItem) []workItem {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, it := range items {
		k := it.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

// BuildCircuit embeds an instruction list into a Circuit container,
// assigning one timeline step per instruction.
func BuildCircuit(numQubits int, instructions []Gate) *Circuit {
	c := &Circuit{NumQubits: numQubits}
	for _, g := range instructions {
		g.Step = len(c.Gates)
		c.Gates = append(c.Gates, g)
		if g.Step >= c.MaxSteps {
			c.MaxSteps = g.Step + 1
		}
	}
	return c
}
