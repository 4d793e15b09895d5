package tui

import "github.com/charmbracelet/lipgloss"

// theme groups the styles the demo renders with. Colours adapt to light and
// dark terminals.
type theme struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	muted lipgloss.Style
	card  lipgloss.Style
	badge lipgloss.Style
}

var (
	accent = lipgloss.AdaptiveColor{Light: "#1B6A8C", Dark: "#4FB3D9"}
	green  = lipgloss.AdaptiveColor{Light: "#0B7A4B", Dark: "#3DD68C"}
	red    = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF6B5E"}
	grey   = lipgloss.AdaptiveColor{Light: "#5C5C5C", Dark: "#8A8A8A"}
)

func newTheme() theme {
	return theme{
		title: lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1),
		ok:    lipgloss.NewStyle().Foreground(green),
		err:   lipgloss.NewStyle().Foreground(red),
		muted: lipgloss.NewStyle().Foreground(grey),
		card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false).
			BorderForeground(accent).
			Padding(1, 0).
			Width(80),
		badge: lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(accent).Padding(0, 1),
	}
}
