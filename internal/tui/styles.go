// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#2563EB")
	accentColor  = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	fgColor      = lipgloss.Color("#CDD6F4")
	mutedColor   = lipgloss.Color("#6C7086")
	borderColor  = lipgloss.Color("#45475A")
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(primaryColor).
	Padding(0, 1)

var labelStyle = lipgloss.NewStyle().
	Foreground(fgColor).
	Bold(true)

var headlineStyle = lipgloss.NewStyle().
	Foreground(fgColor).
	Bold(true)

var mutedStyle = lipgloss.NewStyle().
	Foreground(mutedColor)

var patentStyle = lipgloss.NewStyle().
	Foreground(accentColor).
	Width(14)

var dateStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Width(12)

var warningStyle = lipgloss.NewStyle().
	Foreground(accentColor).
	Bold(true)

var errorStyle = lipgloss.NewStyle().
	Foreground(errorColor).
	Bold(true)

var helpStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	MarginTop(1)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(borderColor).
	Padding(0, 1)
