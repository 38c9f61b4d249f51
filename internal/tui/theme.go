package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the browser. All colors use ANSI
// 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText         lipgloss.Color
	FaintText          lipgloss.Color
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color
	HeaderForeground   lipgloss.Color
	BorderColor        lipgloss.Color
	HelpText           lipgloss.Color
	ErrorText          lipgloss.Color
	AccentText         lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),
	HeaderForeground:   lipgloss.Color("39"),
	BorderColor:        lipgloss.Color("240"),
	HelpText:           lipgloss.Color("241"),
	ErrorText:          lipgloss.Color("203"),
	AccentText:         lipgloss.Color("114"),
}
