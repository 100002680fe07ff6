package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bujinkan-tools/densho/internal/bootstrap"
	"github.com/bujinkan-tools/densho/internal/config"
	"github.com/bujinkan-tools/densho/internal/observability/logging"
)

const serviceName = "densho-ingest"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder, err := bootstrap.NewIngest(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	slog.Info("building corpus", "source", cfg.DataDir, "index", cfg.IndexDir)
	start := time.Now()
	report, err := builder.Build(ctx, cfg.DataDir)
	if err != nil {
		log.Fatalf("build error: %v", err)
	}
	slog.Info("corpus built",
		"files", report.Files,
		"chunks", report.Chunks,
		"vectors", report.Vectors,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
}
