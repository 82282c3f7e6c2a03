package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/config"
	"github.com/noah-isme/kidtask-api/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// stdout belongs to the terminal UI, so logs only go to a file when one is configured.
	var out io.Writer = io.Discard
	if cfg.TUILogFile != "" {
		file, err := os.OpenFile(cfg.TUILogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer file.Close()
		out = file
	}

	logger := zerolog.New(out).Level(cfg.LogLevel).With().Timestamp().Logger()

	if _, err := tea.NewProgram(tui.New(logger), tea.WithAltScreen()).Run(); err != nil {
		logger.Error().Err(err).Msg("terminal ui stopped")
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}
