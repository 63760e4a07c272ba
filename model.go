package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusEditor
	focusMenu
)

// maxSimQubits bounds the statevector used by the phase pane.
const maxSimQubits = 12

const defaultPolynomial = `# CCZ phase network: one term per line, "bits label".
# Labels: t tdg s sdg z, or a radian angle like 0.785398.
100 t
010 t
001 t
110 tdg
101 tdg
011 tdg
111 t
`

// Model represents the TUI application state.
type Model struct {
	polyEditor    textarea.Model // phase polynomial source, one term per line
	circuit       Circuit        // last successfully synthesized circuit
	numQubits     int
	sectionSize   int
	showPhases    bool
	focus         focus
	viewStartStep int // first step currently visible in the circuit panel
	width         int
	height        int
	statusMsg     string // transient status message (e.g. save confirmation)
	synthErr      string // last synthesis error, empty when the circuit is current
	lastSource    string

	// Preset picker state
	menuCat  int
	menuItem int
}

func initialModel() Model {
	ta := textarea.New()
	ta.Placeholder = "One term per line: bits label"
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.SetValue(defaultPolynomial)

	m := Model{
		polyEditor:  ta,
		sectionSize: DefaultSectionSize,
		focus:       focusCircuit,
	}
	m.resynthesize()
	return m
}

// resynthesize re-runs Gray-Synth on the editor contents. On failure
// the previous circuit stays on screen and the error is surfaced in the
// editor panel.
func (m *Model) resynthesize() {
	src := m.polyEditor.Value()
	m.lastSource = src

	terms, labels, err := ParsePhasePolynomial(src)
	if err != nil {
		m.synthErr = err.Error()
		return
	}
	instructions, err := GraySynth(terms, labels, m.sectionSize)
	if err != nil {
		m.synthErr = err.Error()
		return
	}

	m.synthErr = ""
	m.numQubits = len(terms)
	m.circuit = *BuildCircuit(m.numQubits, instructions)
	if m.viewStartStep >= m.circuit.MaxSteps {
		m.viewStartStep = 0
	}
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		editorW := max(msg.Width/3-6, 20)
		m.polyEditor.SetWidth(editorW)
		ctrlH := 6
		panelH := msg.Height - ctrlH - 4
		m.polyEditor.SetHeight(max(panelH-8, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusEditor
				m.polyEditor.Focus()
			case "left", "h":
				if m.viewStartStep > 0 {
					m.viewStartStep--
				}
			case "right", "l":
				if m.viewStartStep < m.circuit.MaxSteps-1 {
					m.viewStartStep++
				}
			case "home", "g":
				m.viewStartStep = 0
			case "p":
				m.showPhases = !m.showPhases
			case "+", "=":
				if m.sectionSize < 8 {
					m.sectionSize++
					m.resynthesize()
					m.statusMsg = fmt.Sprintf("Section size %d", m.sectionSize)
				}
			case "-":
				if m.sectionSize > 1 {
					m.sectionSize--
					m.resynthesize()
					m.statusMsg = fmt.Sprintf("Section size %d", m.sectionSize)
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "ctrl+s":
				qasm := m.circuit.ToQASM()
				if err := os.WriteFile("synth.qasm", []byte(qasm), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved synth.qasm"
				}
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := presetMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(presetMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := presetMenu[m.menuCat].items[m.menuItem]
				m.polyEditor.SetValue(item.source)
				m.viewStartStep = 0
				m.resynthesize()
				m.focus = focusCircuit
				m.statusMsg = "Loaded " + item.name
			}

		case focusEditor:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.polyEditor.Blur()
			default:
				var cmd tea.Cmd
				m.polyEditor, cmd = m.polyEditor.Update(msg)
				cmds = append(cmds, cmd)
				if m.polyEditor.Value() != m.lastSource {
					m.resynthesize()
				}
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	editorWidth := m.width / 3
	circuitWidth := m.width - editorWidth - 4
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, panelHeight)
	editorPanel := m.renderEditorPanel(editorWidth, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, editorPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}

	return frame
}
