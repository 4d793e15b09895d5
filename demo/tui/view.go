package tui

import (
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.title.Render(TextTitle))
	b.WriteString("\n\n")

	if !m.Connected {
		b.WriteString(m.theme.err.Render("Not connected to " + m.Client.baseURL))
		b.WriteString("\n\n")
	}

	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	if len(m.Logs) > 0 {
		b.WriteString(m.theme.muted.Render("Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(m.theme.muted.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.State == StateComplete && m.Result != nil {
		b.WriteString(m.theme.card.Render(m.formatResult()))
		b.WriteString("\n\n")
	}

	switch m.State {
	case StateInput:
		b.WriteString(m.theme.muted.Render(TextFooterInput))
	case StateGenerating:
		b.WriteString(m.theme.muted.Render(TextFooterGenerating))
	default:
		b.WriteString(m.theme.badge.Render(TextFooterDone))
	}

	return b.String()
}
