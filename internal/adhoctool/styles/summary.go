package styles

import (
	"github.com/charmbracelet/lipgloss/v2"
)

var (
	Added   = lipgloss.NewStyle().Foreground(lipgloss.Color(DiffAdd)).Bold(true)
	Changed = lipgloss.NewStyle().Foreground(lipgloss.Color(DiffChg)).Bold(true)
	Removed = lipgloss.NewStyle().Foreground(lipgloss.Color(DiffSub)).Bold(true)
	Path    = lipgloss.NewStyle().Foreground(lipgloss.Color(VSCodeLink))
	Muted   = lipgloss.NewStyle().Foreground(lipgloss.Color(VSCodeLineNumber))

	ErrorTag   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	WarningTag = lipgloss.NewStyle().Foreground(lipgloss.Color(DiffChg)).Bold(true)
	InfoTag    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAFF"))
)
