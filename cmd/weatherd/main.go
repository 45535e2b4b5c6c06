package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"weather-notify/internal/di"
)

func main() {
	application, err := di.InitializeApp()
	if err != nil {
		slog.Error("failed to initialize weatherd", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		slog.Error("weatherd stopped with error", "error", err)
		os.Exit(1)
	}
}
