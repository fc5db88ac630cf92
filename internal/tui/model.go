// Package tui is an interactive terminal editor for circuits that shows the
// analysis of the circuit being edited next to its source, canonical and
// routed forms.
package tui

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"qanalyse/internal/analyse"
	"qanalyse/internal/arch"
	"qanalyse/internal/canon"
	"qanalyse/internal/circuit"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusInputParam
	focusSelectTarget
	focusSelectControls
	focusArch
)

// viewMode selects which form of the circuit the grid shows.
type viewMode int

const (
	viewSource viewMode = iota
	viewCanonical
	viewRouted
)

var viewNames = [...]string{"source", "canonical", "routed"}

const (
	defaultQubits = 4
	defaultPath   = "circuit.qasm"
	bottomH       = 10
)

// Options configures the editor.
type Options struct {
	Canon        canon.Config
	Log          zerolog.Logger
	Path         string // file written by ctrl+s
	Source       string // initial QASM, empty for a blank circuit
	Architecture string // initial catalog architecture, empty for none
}

// Model represents the TUI application state.
type Model struct {
	opts Options
	pool *analyse.Pool

	circ     *circuit.Circuit // source of truth
	shown    *circuit.Circuit // circuit drawn in the grid for the current view
	grid     *grid
	report   *analyse.Report
	swaps    int
	unrouted bool // an architecture is picked but no router is compiled in
	parseErr error
	err      error

	archName   string
	archCursor int
	mode       viewMode

	cursorQubit int
	cursorStep  int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat  int
	menuItem int

	// Gate being placed
	pending       menuItem
	param         circuit.Parameter
	targetQubit   int
	paramInput    string
	controlQubits []int
}

// New builds the editor model. A Source that does not parse is an error.
func New(opts Options) (Model, error) {
	if opts.Path == "" {
		opts.Path = defaultPath
	}

	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	c := circuit.WithQubits(defaultQubits)
	if strings.TrimSpace(opts.Source) != "" {
		parsed, err := circuit.ParseQASM(opts.Source)
		if err != nil {
			return Model{}, err
		}
		c = parsed
	}

	name := strings.ToLower(opts.Architecture)
	if name != "" && !slices.Contains(arch.Names(), name) {
		return Model{}, fmt.Errorf("%w: %q", arch.ErrArchitectureNotFound, opts.Architecture)
	}

	m := Model{
		opts:       opts,
		pool:       analyse.NewPool(analyse.WithConfig(opts.Canon), analyse.WithLogger(opts.Log)),
		circ:       c,
		archName:   name,
		qasmEditor: ta,
		focus:      focusCircuit,
	}
	m.syncFromCircuit()
	return m, nil
}

// Circuit returns the circuit being edited.
func (m Model) Circuit() *circuit.Circuit { return m.circ }

// syncFromCircuit rewrites the editor from the circuit and reanalyses it.
func (m *Model) syncFromCircuit() {
	qasm := m.circ.QASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
	m.parseErr = nil
	m.refresh()
}

func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	m.lastQASM = qasm

	c, err := circuit.ParseQASM(qasm)
	if err != nil {
		m.parseErr = err
		return
	}
	m.parseErr = nil
	m.circ = c
	m.refresh()
}

// archQubits sizes scalable architectures to the circuit.
func (m *Model) archQubits() int {
	if m.archName != "" && arch.Scalable(m.archName) {
		return max(m.circ.Qubits(), 1)
	}
	return 0
}

// refresh recomputes the shown circuit, the grid and the report.
func (m *Model) refresh() {
	m.report, m.err, m.swaps, m.unrouted = nil, nil, 0, false
	m.shown = m.circ
	defer func() {
		m.grid = newGrid(m.shown)
		m.clampCursor()
	}()

	a, err := m.pool.Get(m.archName, m.archQubits())
	if err != nil {
		m.err = err
		return
	}
	m.unrouted = a.Architecture() != nil && !a.CanRoute()

	switch m.mode {
	case viewCanonical:
		m.shown, err = a.Canonical(m.circ)
	case viewRouted:
		if a.Architecture() == nil || m.unrouted {
			m.shown, err = a.Canonical(m.circ)
			break
		}
		routed, rerr := a.Route(m.circ, a.Architecture())
		if rerr == nil {
			m.shown, m.swaps = routed.Circuit, routed.Swaps
		}
		err = rerr
	}
	if err != nil {
		m.shown = m.circ
		m.err = err
		return
	}

	m.report, m.err = a.Analyse(m.circ)
	if m.err != nil {
		m.opts.Log.Debug().Err(m.err).Str("architecture", m.archName).Msg("analysis failed")
	}
}

func (m *Model) clampCursor() {
	m.cursorQubit = max(min(m.cursorQubit, m.grid.qubits-1), 0)
	m.cursorStep = max(min(m.cursorStep, m.grid.steps()), 0)
}

func (m Model) archChoices() []string {
	return append([]string{""}, arch.Names()...)
}

func (m *Model) clearPending() {
	m.pending = menuItem{}
	m.param = circuit.Parameter{}
	m.paramInput = ""
	m.controlQubits = nil
}

// firstFree returns the first qubit at or after from, wrapping, that is
// neither the cursor qubit nor an already chosen control.
func (m *Model) firstFree(from int) int {
	n := m.circ.Qubits()
	for i := range n {
		q := (from + i) % n
		if q != m.cursorQubit && !slices.Contains(m.controlQubits, q) {
			return q
		}
	}
	return m.cursorQubit
}

// stepTarget moves the target selection by dir, skipping taken qubits.
func (m *Model) stepTarget(dir int) {
	for next := m.targetQubit + dir; next >= 0 && next < m.circ.Qubits(); next += dir {
		if next != m.cursorQubit && !slices.Contains(m.controlQubits, next) {
			m.targetQubit = next
			return
		}
	}
}

// afterParam moves on to target selection or places the pending gate.
func (m *Model) afterParam() {
	it := m.pending
	if !it.needsTarget() {
		m.placeGate()
		return
	}
	if m.circ.Qubits() < it.controls+1 || m.circ.Qubits() < 2 {
		m.statusMsg = fmt.Sprintf("%s needs more qubits", it.name)
		m.clearPending()
		m.focus = focusCircuit
		return
	}
	m.targetQubit = m.firstFree(m.cursorQubit + 1)
	if it.controls > 1 {
		m.focus = focusSelectControls
	} else {
		m.focus = focusSelectTarget
	}
}

// placeGate inserts the pending gate at the cursor, before any later gate it
// overlaps.
func (m *Model) placeGate() {
	it := m.pending
	defer func() {
		m.clearPending()
		m.focus = focusCircuit
	}()

	targets := []int{m.cursorQubit}
	var controls []int
	switch {
	case it.kind == circuit.SWAP:
		targets = []int{m.cursorQubit, m.targetQubit}
	case it.controls > 0:
		controls = append([]int{m.cursorQubit}, m.controlQubits...)
		targets = []int{m.targetQubit}
	}
	g := circuit.NewGate(it.kind, targets, controls, m.param)

	lo, hi := span(g)
	idx := len(m.grid.gates)
	for i, col := range m.grid.column {
		glo, ghi := span(m.grid.gates[i])
		if col >= m.cursorStep && glo <= hi && lo <= ghi {
			idx = i
			break
		}
	}

	c := circuit.WithQubits(m.circ.Qubits(), slices.Insert(m.circ.Gates(), idx, g)...)
	if err := c.Validate(); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.circ = c
	m.syncFromCircuit()
	m.cursorStep = min(m.grid.column[idx]+1, m.grid.steps())
}

func (m *Model) setQubits(n int) {
	gates := slices.DeleteFunc(m.circ.Gates(), func(g circuit.Gate) bool {
		_, hi := span(g)
		return hi >= n
	})
	m.circ = circuit.WithQubits(n, gates...)
	m.syncFromCircuit()
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
		m.qasmEditor.SetWidth(max(msg.Width/3-6, 20))
		m.qasmEditor.SetHeight(max(msg.Height-bottomH-12, 4))

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
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.circ = circuit.WithQubits(m.circ.Qubits())
				m.cursorStep = 0
				m.syncFromCircuit()
			case "ctrl+s":
				if err := os.WriteFile(m.opts.Path, []byte(m.circ.QASM()), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved " + m.opts.Path
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.grid.qubits-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if m.cursorStep < m.grid.steps() {
					m.cursorStep++
				}
			case "+", "=":
				m.setQubits(m.circ.Qubits() + 1)
			case "-":
				if m.circ.Qubits() > 1 {
					m.setQubits(m.circ.Qubits() - 1)
				}
			case "c":
				m.mode = (m.mode + 1) % viewMode(len(viewNames))
				m.refresh()
			case "r":
				m.focus = focusArch
				m.archCursor = max(slices.Index(m.archChoices(), m.archName), 0)
			case "a":
				if m.mode != viewSource {
					m.statusMsg = "Switch to the source view to edit"
					break
				}
				if m.circ.Qubits() == 0 {
					m.statusMsg = "Add a qubit first"
					break
				}
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "backspace", "delete":
				if m.mode != viewSource {
					m.statusMsg = "Switch to the source view to edit"
					break
				}
				if i, ok := m.grid.gateAt(m.cursorStep, m.cursorQubit); ok {
					m.circ = without(m.circ, i)
					m.syncFromCircuit()
				}
			}

		case focusArch:
			choices := m.archChoices()
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.archCursor > 0 {
					m.archCursor--
				}
			case "down", "j":
				if m.archCursor < len(choices)-1 {
					m.archCursor++
				}
			case "enter":
				m.archName = choices[m.archCursor]
				m.focus = focusCircuit
				m.refresh()
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
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				m.pending = gateMenu[m.menuCat].items[m.menuItem]
				if m.pending.needsParam() {
					m.paramInput = ""
					m.focus = focusInputParam
					break
				}
				m.afterParam()
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.clearPending()
				m.focus = focusCircuit
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				p, err := circuit.ParseParameter(m.paramInput)
				if err != nil {
					m.statusMsg = "Invalid parameter: use a number, pi expression or variable (e.g. pi/2, theta, 2*phi)"
					break
				}
				m.param = p
				m.afterParam()
			default:
				if len(key) == 1 && paramChar(key[0]) {
					m.paramInput += key
				}
			}

		case focusSelectControls:
			switch key {
			case "esc":
				m.clearPending()
				m.focus = focusCircuit
			case "up", "k":
				m.stepTarget(-1)
			case "down", "j":
				m.stepTarget(1)
			case "enter":
				m.controlQubits = append(m.controlQubits, m.targetQubit)
				if len(m.controlQubits)+1 >= m.pending.controls {
					m.focus = focusSelectTarget
				}
				m.targetQubit = m.firstFree(0)
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.clearPending()
				m.focus = focusCircuit
			case "up", "k":
				m.stepTarget(-1)
			case "down", "j":
				m.stepTarget(1)
			case "enter":
				m.placeGate()
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func paramChar(ch byte) bool {
	switch {
	case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		return true
	}
	return strings.IndexByte("._+-*/()", ch) >= 0
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	circuitHeight := max(m.height-bottomH-2, 6)
	reportWidth := qasmWidth

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight)
	controlsPanel := m.renderControlsPanel(circuitWidth, bottomH-2)
	reportPanel := m.renderReportPanel(reportWidth, bottomH-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, controlsPanel, reportPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	case focusArch:
		frame = overlayAt(frame, m.renderArchMenu(), 2, 2)
	}
	return frame
}

// renderParamInput renders parameter input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Parameter"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s: %s_", m.pending.name, m.paramInput)
	sb.WriteString("\n\n")
	if m.statusMsg != "" {
		sb.WriteString(errorStyle.Render(m.statusMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render("Examples: pi/2, 1.57, " + m.pending.example))
	return menuBorderStyle.Render(sb.String())
}

// Run starts the editor on the terminal.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
