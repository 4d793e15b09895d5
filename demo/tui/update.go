package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case HealthMsg:
		return m.handleHealth(msg)
	case BlogGeneratedMsg:
		return m.handleBlogGenerated(msg)
	case spinner.TickMsg:
		if m.State != StateGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if m.State == StateInput {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.State {
	case StateInput:
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			keyword := strings.TrimSpace(m.Input.Value())
			if keyword == "" {
				return m, nil
			}
			m.Keyword = keyword
			m.State = StateGenerating
			m.Err = nil
			m.Input.Blur()
			m = m.AddLog("Requested blog for " + keyword)
			return m, tea.Batch(m.Spinner.Tick, generateBlog(m.Client, keyword))
		}
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd

	case StateComplete, StateError:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "n", "N":
			m.State = StateInput
			m.Result = nil
			m.Input.Reset()
			m.Input.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	m.Connected = msg.Err == nil
	if msg.Err != nil {
		m = m.AddLog("API not reachable: " + msg.Err.Error())
	} else {
		m = m.AddLog("Connected to " + m.Client.baseURL)
	}
	return m, nil
}

func (m Model) handleBlogGenerated(msg BlogGeneratedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		m = m.AddLog("Generation failed")
		return m, nil
	}
	m.Result = msg.Result
	m.State = StateComplete
	m = m.AddLog("Blog received")
	return m, nil
}
