package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
)

// Gate represents one instruction of a synthesized program: either a
// two-qubit CNOT or a single-qubit phase rotation.
type Gate struct {
	Type     string    // "CX", "T", "S", "Z", "P"
	Target   int       // target qubit
	Control  int       // -1 unless Type is "CX"
	Step     int       // position in circuit timeline
	Params   []float64 // rotation angle for "P"
	IsDagger bool      // adjoint flag for "T" and "S"
}

// Circuit holds a synthesized program.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// AddGate appends a gate to the circuit.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddParameterizedGate appends a parameterized gate to the circuit.
func (c *Circuit) AddParameterizedGate(gateType string, target, step int, params []float64) {
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: -1,
		Step:    step,
		Params:  params,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddDaggerGate appends a dagger (adjoint) gate to the circuit.
func (c *Circuit) AddDaggerGate(gateType string, target, step int) {
	c.Gates = append(c.Gates, Gate{
		Type:     gateType,
		Target:   target,
		Control:  -1,
		Step:     step,
		IsDagger: true,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// gateReferences reports whether the gate acts on the given qubit.
func (g Gate) gateReferences(qubit int) bool {
	return g.Target == qubit || g.Control == qubit
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.gateReferences(qubit) {
			return g
		}
	}
	return nil
}

// CountCNOTs returns the number of two-qubit gates in the circuit, the
// quantity the synthesizer works to minimize.
func (c *Circuit) CountCNOTs() int {
	count := 0
	for _, g := range c.Gates {
		if g.Type == "CX" {
			count++
		}
	}
	return count
}

// CountPhases returns the number of single-qubit phase gates.
func (c *Circuit) CountPhases() int {
	return len(c.Gates) - c.CountCNOTs()
}

// ToQASM generates QASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	maxQubit := -1
	for _, gate := range c.Gates {
		maxQubit = max(maxQubit, gate.Target, gate.Control)
	}
	numQubits := max(maxQubit+1, c.NumQubits, 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", numQubits)

	for step := range c.MaxSteps {
		for _, gate := range c.Gates {
			if gate.Step != step {
				continue
			}
			gateType := strings.ToLower(gate.Type)
			switch {
			case gate.Control >= 0:
				fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", gate.Control, gate.Target)
			case len(gate.Params) > 0:
				fmt.Fprintf(&sb, "%s(%s) q[%d];\n", gateType, formatParam(gate.Params[0]), gate.Target)
			case gate.IsDagger:
				fmt.Fprintf(&sb, "%sdg q[%d];\n", gateType, gate.Target)
			default:
				fmt.Fprintf(&sb, "%s q[%d];\n", gateType, gate.Target)
			}
		}
	}

	return sb.String()
}

// ParseQASM parses QASM text and rebuilds the circuit from it. Only the
// productions this program emits are recognized: qreg, cx, single-qubit
// gates with an optional dg suffix, and parameterized phase gates.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	step := 0

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); len(matches) > 2 {
				n, _ := strconv.Atoi(matches[2])
				c.NumQubits = n
			}
			continue
		}
		if strings.HasPrefix(line, "creg") {
			continue
		}

		// Two-qubit gates: cx
		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			control, _ := strconv.Atoi(matches[2])
			target, _ := strconv.Atoi(matches[3])
			c.AddGate(strings.ToUpper(matches[1]), target, step, control)
			step++
			continue
		}

		// Parameterized phase gates: p(theta)
		if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[3])
			if param, ok := parseParamExpr(matches[2]); ok {
				c.AddParameterizedGate(gateType, target, step, []float64{param})
				step++
			}
			continue
		}

		// Single-qubit gates, including the dg forms
		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[2])
			if base, ok := strings.CutSuffix(gateType, "DG"); ok {
				c.AddDaggerGate(base, target, step)
			} else {
				c.AddGate(gateType, target, step)
			}
			step++
			continue
		}
	}

	return nil
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	gate := c.GetGateAt(step, qubit)
	if gate != nil {
		info.gate = gate
		info.isControl = gate.Control == qubit
		info.isTarget = gate.Target == qubit && gate.Control >= 0
	}

	// Vertical connections for two-qubit gates
	for _, g := range c.Gates {
		if g.Step != step || g.Control < 0 {
			continue
		}
		minQ, maxQ := min(g.Control, g.Target), max(g.Control, g.Target)
		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.vertAbove = true
			}
			if qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}
