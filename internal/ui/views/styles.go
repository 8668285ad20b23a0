package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title      lipgloss.Style
	Item       lipgloss.Style
	Cursor     lipgloss.Style
	Dragged    lipgloss.Style
	DropTarget lipgloss.Style
	Displaced  lipgloss.Style
	Status     lipgloss.Style
	Dim        lipgloss.Style
	Help       lipgloss.Style
	Pulse      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Item:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Cursor: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Dragged: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Background(lipgloss.Color("236")),
		DropTarget: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Displaced:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Dim:   lipgloss.NewStyle().Faint(true),
		Help:  lipgloss.NewStyle().Faint(true),
		Pulse: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}
