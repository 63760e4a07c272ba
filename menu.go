package main

import (
	"fmt"
	"strings"
)

// preset is a ready-made phase polynomial loadable from the picker.
type preset struct {
	name   string
	source string
}

// presetCategory groups related presets under a tab.
type presetCategory struct {
	name  string
	items []preset
}

// presetMenu defines the phase-polynomial picker categories and items.
var presetMenu = []presetCategory{
	{
		name: "Two Qubit",
		items: []preset{
			{name: "Controlled-S", source: "# CS on q0,q1\n10 t\n01 t\n11 tdg\n"},
			{name: "Controlled-Z", source: "# CZ on q0,q1\n10 s\n01 s\n11 sdg\n"},
			{name: "Parity pi/4", source: "# pi/4 on the joint parity\n11 0.7853981633974483\n"},
		},
	},
	{
		name: "Three Qubit",
		items: []preset{
			{name: "CCZ network", source: "# doubly-controlled Z\n100 t\n010 t\n001 t\n110 tdg\n101 tdg\n011 tdg\n111 t\n"},
			{name: "Phase ladder", source: "100 t\n110 t\n111 t\n"},
			{name: "Pairwise S", source: "110 s\n011 s\n101 sdg\n"},
		},
	},
	{
		name: "Four Qubit",
		items: []preset{
			{name: "Gray ladder", source: "1000 t\n1100 tdg\n1110 t\n1111 tdg\n"},
			{name: "Full parity Z", source: "1111 z\n"},
		},
	},
}

// renderMenu renders the floating preset-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Load Phase Polynomial"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range presetMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(presetMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := presetMenu[m.menuCat]
	for i, item := range cat.items {
		terms := strings.Count(item.source, "\n") - strings.Count(item.source, "#")
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
		}
		sb.WriteString(dimStyle.Render(fmt.Sprintf(" %d terms", terms)))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
