package main

import (
	"log/slog"
	"os"

	"microblog/internal/app"
	"microblog/internal/logger"
)

func main() {
	logger.Setup(os.Stdout, "user-service")

	application, err := app.NewUserService()
	if err != nil {
		slog.Error("failed to initialize user service", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("user service run failed", "error", err)
		os.Exit(1)
	}
}
