package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bujinkan-tools/densho/internal/adapters/chat"
	"github.com/bujinkan-tools/densho/internal/bootstrap"
	"github.com/bujinkan-tools/densho/internal/config"
	"github.com/bujinkan-tools/densho/internal/observability/logging"
)

const serviceName = "densho-chat"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Log records would corrupt the terminal the program is drawing on,
	// so they go to a file instead.
	var logDest io.Writer = io.Discard
	logPath := filepath.Join(os.TempDir(), serviceName+".log")
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		defer f.Close()
		logDest = f
	}
	slog.SetDefault(logging.NewJSONLoggerTo(logDest, serviceName, cfg.LogLevel))

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	program := tea.NewProgram(chat.NewModel(app.Query, cfg.TopK), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("chat error: %v", err)
	}
}
