package app

import (
	"fmt"
	"net/http"

	"microblog/internal/config"
	"microblog/internal/gateway"
)

// NewGateway assembles the reverse proxy in front of both services.
func NewGateway() (*App, error) {
	cfg, err := config.LoadGateway()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appRouter, err := gateway.NewRouter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway router: %w", err)
	}

	return &App{
		server: &http.Server{
			Addr:         ":" + cfg.ServerPort,
			Handler:      appRouter,
			ReadTimeout:  cfg.ServerReadTimeout,
			WriteTimeout: cfg.ServerWriteTimeout,
			IdleTimeout:  cfg.ServerIdleTimeout,
		},
	}, nil
}
