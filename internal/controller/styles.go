package controller

import (
	"github.com/charmbracelet/lipgloss"

	m "meowcode.dev/pkg/meowcode/internal/model"
)

type styles struct {
	updated   lipgloss.Style
	unchanged lipgloss.Style
	skipped   lipgloss.Style
	failed    lipgloss.Style
	path      lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{updated: plain, unchanged: plain, skipped: plain, failed: plain, path: plain}
	}

	return styles{
		updated:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		unchanged: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		skipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
		failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		path:      lipgloss.NewStyle().Bold(true),
	}
}

func (s styles) status(status m.Status) string {
	label := status.String()

	switch status {
	case m.StatusUpdated:
		return s.updated.Render(label)
	case m.StatusUnchanged:
		return s.unchanged.Render(label)
	case m.StatusSkipped:
		return s.skipped.Render(label)
	case m.StatusFailed:
		return s.failed.Render(label)
	default:
		return label
	}
}
