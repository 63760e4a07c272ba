package main

import (
	"math"
	"math/cmplx"
)

type Complex = complex128

type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

func (s *StateVector) ApplyGate(gateType string, target int, control int, params []float64) {
	switch gateType {
	case "H":
		s.applyH(target)
	case "X":
		s.applyX(target)
	case "Z":
		s.applyZ(target)
	case "S":
		s.applyS(target, false)
	case "SDG", "Sdg":
		s.applyS(target, true)
	case "T":
		s.applyT(target, false)
	case "TDG", "Tdg":
		s.applyT(target, true)
	case "P", "U1":
		theta := 0.0
		if len(params) > 0 {
			theta = params[0]
		}
		s.applyPhase(target, theta)
	case "CX":
		if control >= 0 {
			s.applyCX(control, target)
		}
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyS(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	factor := 1i
	if dagger {
		factor = -1i
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyT(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	var factor Complex
	if dagger {
		factor = cmplx.Exp(complex(0, -math.Pi/4))
	} else {
		factor = cmplx.Exp(complex(0, math.Pi/4))
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

// applyPhase applies P(theta) = diag(1, e^{i*theta}). Unlike RZ this
// has no phase on the |0> component, which keeps phase-polynomial
// replays exact rather than correct only up to global phase.
func (s *StateVector) applyPhase(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	n := len(s.Amplitudes)

	for i := 0; i < n; i++ {
		prob := real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

func SimulateCircuit(circuit *Circuit, upToStep int) *StateVector {
	if circuit.NumQubits == 0 {
		return NewStateVector(1)
	}
	state := NewStateVector(circuit.NumQubits)

	gates := make([]Gate, len(circuit.Gates))
	copy(gates, circuit.Gates)

	for i := range gates {
		for j := i + 1; j < len(gates); j++ {
			if gates[j].Step < gates[i].Step {
				gates[i], gates[j] = gates[j], gates[i]
			}
		}
	}

	for _, gate := range gates {
		if upToStep >= 0 && gate.Step > upToStep {
			continue
		}
		gateType := gate.Type
		if gate.IsDagger {
			gateType += "DG"
		}
		state.ApplyGate(gateType, gate.Target, gate.Control, gate.Params)
	}

	return state
}
