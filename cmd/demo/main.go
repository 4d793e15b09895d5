package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"contentpilot/demo/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("url", envOr("CONTENTPILOT_URL", "http://localhost:8000"), "ContentPilot API URL")
	flag.Parse()

	program := tea.NewProgram(tui.NewModel(*apiURL))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
