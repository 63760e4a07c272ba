package main

import (
	"math"
	"strings"
	"testing"
)

func TestParsePhasePolynomial(t *testing.T) {
	src := `# CCZ phase network
100 t
010 t
001 t

110 tdg
101 tdg
011 tdg
111 t`

	matrix, labels, err := ParsePhasePolynomial(src)
	if err != nil {
		t.Fatalf("ParsePhasePolynomial error: %v", err)
	}

	if len(matrix) != 3 {
		t.Fatalf("expected 3 qubit rows, got %d", len(matrix))
	}
	if len(labels) != 7 {
		t.Fatalf("expected 7 labels, got %d", len(labels))
	}

	// Bit k of a line addresses qubit k: "110" sets rows 0 and 1.
	if matrix[0][3] != 1 || matrix[1][3] != 1 || matrix[2][3] != 0 {
		t.Errorf("term 3: got column (%d,%d,%d), want (1,1,0)",
			matrix[0][3], matrix[1][3], matrix[2][3])
	}
	if labels[3] != "tdg" {
		t.Errorf("term 3 label: got %q, want %q", labels[3], "tdg")
	}
	if labels[6] != "t" {
		t.Errorf("term 6 label: got %q, want %q", labels[6], "t")
	}
}

func TestParsePhasePolynomialNumericLabel(t *testing.T) {
	matrix, labels, err := ParsePhasePolynomial("11 0.7853981633974483")
	if err != nil {
		t.Fatalf("ParsePhasePolynomial error: %v", err)
	}
	if len(matrix) != 2 || len(labels) != 1 {
		t.Fatalf("got %d rows, %d labels", len(matrix), len(labels))
	}
	if labels[0] != "0.7853981633974483" {
		t.Errorf("label: got %q", labels[0])
	}
}

func TestParsePhasePolynomialErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"comments only", "# nothing here\n\n"},
		{"missing label", "101\n"},
		{"extra field", "101 t extra\n"},
		{"bad bit", "1x1 t\n"},
		{"length mismatch", "101 t\n11 s\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ParsePhasePolynomial(tc.src); err == nil {
				t.Errorf("expected error for %q", tc.src)
			}
		})
	}
}

func TestSynthesizedQASMRoundTrip(t *testing.T) {
	// Exercise every gate form the synthesizer emits.
	c := Circuit{NumQubits: 3}
	c.AddGate("T", 0, 0)
	c.AddDaggerGate("T", 1, 1)
	c.AddGate("S", 2, 2)
	c.AddDaggerGate("S", 0, 3)
	c.AddGate("Z", 1, 4)
	c.AddParameterizedGate("P", 2, 5, []float64{1.5})
	c.AddGate("CX", 2, 6, 0)

	qasm := c.ToQASM()
	for _, want := range []string{
		"qreg q[3];",
		"t q[0];",
		"tdg q[1];",
		"s q[2];",
		"sdg q[0];",
		"z q[1];",
		"p(1.5) q[2];",
		"cx q[0], q[2];",
	} {
		if !strings.Contains(qasm, want) {
			t.Errorf("expected %q in QASM output:\n%s", want, qasm)
		}
	}

	c2 := Circuit{}
	if err := c2.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if c2.NumQubits != 3 {
		t.Errorf("NumQubits: got %d, want 3", c2.NumQubits)
	}
	if len(c2.Gates) != len(c.Gates) {
		t.Fatalf("round-trip: got %d gates, want %d", len(c2.Gates), len(c.Gates))
	}
	for i, want := range c.Gates {
		got := c2.Gates[i]
		if got.Type != want.Type || got.Target != want.Target ||
			got.Control != want.Control || got.IsDagger != want.IsDagger {
			t.Errorf("gate %d: got %+v, want %+v", i, got, want)
		}
		if len(want.Params) > 0 {
			if len(got.Params) == 0 {
				t.Errorf("gate %d: lost parameter", i)
			} else if math.Abs(got.Params[0]-want.Params[0]) > 1e-10 {
				t.Errorf("gate %d param: got %g, want %g", i, got.Params[0], want.Params[0])
			}
		}
	}
}

func TestSynthesisOutputQASMRoundTrip(t *testing.T) {
	terms := [][]uint8{
		{1, 0, 1},
		{0, 1, 1},
	}
	gates, err := GraySynth(terms, []string{"s", "z", "t"}, 0)
	if err != nil {
		t.Fatalf("GraySynth error: %v", err)
	}
	c := BuildCircuit(2, gates)

	c2 := Circuit{}
	if err := c2.ParseQASM(c.ToQASM()); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if len(c2.Gates) != len(c.Gates) {
		t.Fatalf("round-trip: got %d gates, want %d", len(c2.Gates), len(c.Gates))
	}
	for i := range c.Gates {
		if c2.Gates[i].Type != c.Gates[i].Type ||
			c2.Gates[i].Target != c.Gates[i].Target ||
			c2.Gates[i].Control != c.Gates[i].Control ||
			c2.Gates[i].IsDagger != c.Gates[i].IsDagger {
			t.Errorf("gate %d: got %+v, want %+v", i, c2.Gates[i], c.Gates[i])
		}
	}
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"3.14", 3.14, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"42", 42, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"Pi", math.Pi, true},

		// Pi fractions
		{"pi/2", math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},
		{"pi/3", math.Pi / 3, true},
		{"pi/8", math.Pi / 8, true},

		// Coefficients
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"2*pi/3", 2 * math.Pi / 3, true},

		// Negative
		{"-pi", -math.Pi, true},
		{"-pi/2", -math.Pi / 2, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},
		{"-2pi", -2 * math.Pi, true},

		// Whitespace
		{" pi ", math.Pi, true},
		{" pi / 2 ", math.Pi / 2, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseParamExpr(tt.input)
		if ok != tt.ok {
			t.Errorf("parseParamExpr(%q): ok=%v, want ok=%v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("parseParamExpr(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 3, "pi/3"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi, "-pi"},
		{-math.Pi / 2, "-pi/2"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
		{0.01, "0.01"},
	}

	for _, tt := range tests {
		got := formatParam(tt.input)
		if got != tt.want {
			t.Errorf("formatParam(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
