package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Grid geometry, in terminal columns.
const (
	cellW        = 11 // one step column
	labelVisualW = 7  // "q[n]" label plus the wire lead-in
	gateNameW    = 5  // gate name inside a box
	gateBoxW     = gateNameW + 2
)

// Palette.
var (
	colSource    = lipgloss.Color("#7aa2f7")
	colCanonical = lipgloss.Color("#73daca")
	colRouted    = lipgloss.Color("#9ece6a")
	colQASM      = lipgloss.Color("#bb9af7")
	colReport    = lipgloss.Color("#7dcfff")
	colAccent    = lipgloss.Color("#ff9e64")
	colWarn      = lipgloss.Color("#e0af68")
	colError     = lipgloss.Color("#f7768e")
	colText      = lipgloss.Color("#c0caf5")
	colMuted     = lipgloss.Color("#565f89")
)

// viewAccent colours the circuit panel border by the circuit it shows.
var viewAccent = [...]lipgloss.Color{
	viewSource:    colSource,
	viewCanonical: colCanonical,
	viewRouted:    colRouted,
}

func panel(border lipgloss.Color, pad ...int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(pad...)
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	qasmStyle     = panel(colQASM, 1)
	controlsStyle = panel(colRouted, 0, 1)
	reportStyle   = panel(colReport, 0, 1)

	menuBorderStyle = panel(colAccent, 0, 1)
	archMenuStyle   = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colRouted).
			Padding(0, 1)

	titleStyle        = fg(colAccent).Bold(true)
	cursorBoxStyle    = fg(colAccent).Bold(true)
	targetSelectStyle = fg(colQASM).Bold(true)
	activeGateStyle   = fg(colWarn)
	qubitLabelStyle   = fg(colReport)
	gateStyle         = fg(colCanonical).Bold(true)
	dimStyle          = fg(colMuted)
	errorStyle        = fg(colError)
	menuSelectedStyle = fg(colAccent).Bold(true)
	menuNormalStyle   = fg(colText)

	metricLabelStyle = fg(colMuted)
	metricValueStyle = fg(colText).Bold(true)
)

// circuitStyle is the circuit panel frame for view v.
func circuitStyle(v viewMode) lipgloss.Style {
	return panel(viewAccent[v], 1)
}

// renderMetrics styles "Label: value" report lines, leaving other lines as they are.
func renderMetrics(report string) string {
	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	for i, line := range lines {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		lines[i] = metricLabelStyle.Render(label+":") + metricValueStyle.Render(value)
	}
	return strings.Join(lines, "\n")
}
