package tui

import (
	"fmt"
	"strings"

	"qanalyse/internal/arch"
	"qanalyse/internal/circuit"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name     string
	kind     circuit.Kind
	controls int // controls chosen before the target
	symbol   string
	example  string // parameter hint, rotations only
}

// needsTarget reports whether the item acts on more than the cursor qubit.
func (it menuItem) needsTarget() bool {
	return it.controls > 0 || it.kind == circuit.SWAP
}

func (it menuItem) needsParam() bool { return it.kind.Parametrized() }

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", kind: circuit.H, symbol: "H"},
			{name: "Pauli-X (NOT)", kind: circuit.X, symbol: "X"},
			{name: "Pauli-Y", kind: circuit.Y, symbol: "Y"},
			{name: "Pauli-Z", kind: circuit.Z, symbol: "Z"},
			{name: "Identity", kind: circuit.I, symbol: "I"},
			{name: "√X (V)", kind: circuit.V, symbol: "√X"},
			{name: "√X† (V†)", kind: circuit.Vdg, symbol: "√X†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", kind: circuit.Rx, symbol: "Rx", example: "pi/2"},
			{name: "Rotate Y", kind: circuit.Ry, symbol: "Ry", example: "theta"},
			{name: "Rotate Z", kind: circuit.Rz, symbol: "Rz", example: "2*phi"},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{name: "CNOT", kind: circuit.X, controls: 1, symbol: "●─⊕"},
			{name: "Controlled-Z", kind: circuit.Z, controls: 1, symbol: "●─●"},
			{name: "Controlled-H", kind: circuit.H, controls: 1, symbol: "●─H"},
			{name: "SWAP", kind: circuit.SWAP, symbol: "×─×"},
			{name: "Toffoli (CCX)", kind: circuit.X, controls: 2, symbol: "●─●─⊕"},
			{name: "C-Rotate X", kind: circuit.Rx, controls: 1, symbol: "●─Rx", example: "pi/2"},
			{name: "C-Rotate Y", kind: circuit.Ry, controls: 1, symbol: "●─Ry", example: "theta"},
			{name: "C-Rotate Z", kind: circuit.Rz, controls: 1, symbol: "●─Rz", example: "phi"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget() {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParam() {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.example)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}

// renderArchMenu renders the architecture picker popup.
func (m Model) renderArchMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Target Architecture"))
	sb.WriteString("\n\n")
	for i, name := range m.archChoices() {
		label := archLabel(name)
		if i == m.archCursor {
			sb.WriteString(menuSelectedStyle.Render(" ▸ " + label))
		} else {
			sb.WriteString(menuNormalStyle.Render("   " + label))
		}
		if name == m.archName {
			sb.WriteString(dimStyle.Render("  ✓"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Ok  Esc ✕"))

	return archMenuStyle.Render(sb.String())
}

// archLabel is the picker entry for a catalog name: its size, or "sized to
// circuit" for parametric architectures.
func archLabel(name string) string {
	switch {
	case name == "":
		return "none (unrouted)"
	case arch.Scalable(name):
		return fmt.Sprintf("%-13s sized to circuit", name)
	}
	a, err := arch.Select(name, 0)
	if err != nil {
		return name
	}
	return fmt.Sprintf("%-13s %2d qubits", name, a.NodeCount())
}
