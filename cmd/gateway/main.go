package main

import (
	"log/slog"
	"os"

	"microblog/internal/app"
	"microblog/internal/logger"
)

func main() {
	logger.Setup(os.Stdout, "gateway")

	application, err := app.NewGateway()
	if err != nil {
		slog.Error("failed to initialize gateway", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("gateway run failed", "error", err)
		os.Exit(1)
	}
}
