package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const healthTimeout = 5 * time.Second

func checkHealth(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		return HealthMsg{Err: client.Health(ctx)}
	}
}

func generateBlog(client *APIClient, keyword string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.GenerateDetailedBlog(context.Background(), keyword)
		return BlogGeneratedMsg{Result: res, Err: err}
	}
}
