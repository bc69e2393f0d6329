package main

import (
	"log/slog"
	"os"

	"microblog/internal/app"
	"microblog/internal/logger"
)

func main() {
	logger.Setup(os.Stdout, "blog-service")

	application, err := app.NewBlogService()
	if err != nil {
		slog.Error("failed to initialize blog service", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("blog service run failed", "error", err)
		os.Exit(1)
	}
}
