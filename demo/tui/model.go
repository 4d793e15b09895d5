package tui

import (
	"fmt"
	"strings"
	"time"

	"contentpilot/types"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateInput      State = "input"
	StateGenerating State = "generating"
	StateComplete   State = "complete"
	StateError      State = "error"
)

// BlogResult is a decoded detailed-blog response.
type BlogResult struct {
	Keyword string
	Blog    types.GeneratedBlog
}

// Model is the demo client state.
type Model struct {
	Client  *APIClient
	Input   textinput.Model
	Spinner spinner.Model
	theme   theme

	State     State
	Keyword   string
	Result    *BlogResult
	Err       error
	Connected bool
	Logs      []string
}

func NewModel(baseURL string) Model {
	ti := textinput.New()
	ti.Placeholder = TextPlaceholder
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	th := newTheme()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.ok

	return Model{
		Client:  NewAPIClient(baseURL),
		Input:   ti,
		Spinner: sp,
		theme:   th,
		State:   StateInput,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, checkHealth(m.Client))
}

// AddLog keeps the last ten activity lines.
func (m Model) AddLog(msg string) Model {
	m.Logs = append(m.Logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg))
	if len(m.Logs) > 10 {
		m.Logs = m.Logs[len(m.Logs)-10:]
	}
	return m
}

func (m Model) getStateText() string {
	switch m.State {
	case StateInput:
		return m.theme.badge.Render("Ready") + "\n\n" + m.Input.View()
	case StateGenerating:
		return m.Spinner.View() + m.theme.ok.Render(fmt.Sprintf(" Generating blog for %q...", m.Keyword))
	case StateComplete:
		return m.theme.badge.Render("COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return m.theme.err.Render("Error: " + errMsg)
	default:
		return ""
	}
}

func (m Model) formatResult() string {
	var b strings.Builder
	b.WriteString(m.theme.badge.Render("Generated Blog"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Keyword: %s\n\n", m.Result.Keyword))

	if raw := m.Result.Blog.Raw; raw != nil {
		b.WriteString(m.theme.err.Render("Model output was not valid JSON; showing raw text"))
		b.WriteString("\n\n")
		b.WriteString(m.theme.muted.Render(preview(raw.Raw)))
		return b.String()
	}

	post := m.Result.Blog.Post
	if post == nil {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Title: %s\n", m.theme.ok.Render(post.Title)))
	b.WriteString(fmt.Sprintf("Meta:  %s\n", post.MetaDescription))
	if post.FeaturedImageURL != nil {
		b.WriteString(fmt.Sprintf("Image: %s\n", *post.FeaturedImageURL))
	} else {
		b.WriteString(fmt.Sprintf("Image: %s\n", m.theme.muted.Render(TextNoImage)))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.muted.Render(preview(post.Content)))
	return b.String()
}

func preview(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > previewRunes {
		return string(r[:previewRunes]) + "..."
	}
	return string(r)
}
