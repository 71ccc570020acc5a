package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Success               *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Muted                 *lipgloss.Style
	TabActive             *lipgloss.Style
	TabInactive           *lipgloss.Style
	Prompt                *lipgloss.Style
	PromptText            *lipgloss.Style
	Cursor                *lipgloss.Style
	PanelTitle            *lipgloss.Style
	PanelBorder           *lipgloss.Style
	PanelBorderFocused    *lipgloss.Style
	Label                 *lipgloss.Style
	CheckSuccess          *lipgloss.Style
	CheckFailure          *lipgloss.Style
	CheckPending          *lipgloss.Style
	DiffAdded             *lipgloss.Style
	DiffRemoved           *lipgloss.Style
	DiffHunk              *lipgloss.Style
	DiffFile              *lipgloss.Style
	Match                 *lipgloss.Style
	CurrentMatch          *lipgloss.Style
	Help                  *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Success: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Muted: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	TabActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 1),
	),
	TabInactive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PromptText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PanelBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	PanelBorderFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("179")).Padding(0, 1),
	),
	CheckSuccess: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	CheckFailure: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	),
	CheckPending: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	DiffAdded: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	DiffRemoved: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	),
	DiffHunk: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
	),
	DiffFile: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Match: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("179")),
	),
	CurrentMatch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true),
	),
	Help: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
