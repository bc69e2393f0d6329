package app

import (
	"context"
	"fmt"
	"net/http"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/handler"
	"microblog/internal/middleware"
	"microblog/internal/repository"
	"microblog/internal/router"
	"microblog/internal/service"
	"microblog/internal/token"
)

// NewUserService assembles the identity provider: credential store, token
// codec, local guard, and the register/login/me routes.
func NewUserService() (*App, error) {
	cfg, err := config.LoadUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(context.Background(), database.PoolConfig{
		URL:               cfg.DatabaseURL,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		ConnLifetime:      cfg.DBConnLifetime,
		ConnIdleTime:      cfg.DBConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureUserSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	userRepo := repository.NewUserRepository(db.Pool)

	userService, err := service.NewUserService(userRepo, codec)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize user service: %w", err)
	}

	guard := middleware.NewAuthMiddleware(codec, userService)
	userHandler := handler.NewUserHandler(userService)

	appRouter := router.NewUserService(cfg, guard, userHandler, healthCheck(db))

	return &App{
		server: &http.Server{
			Addr:         ":" + cfg.ServerPort,
			Handler:      appRouter,
			ReadTimeout:  cfg.ServerReadTimeout,
			WriteTimeout: cfg.ServerWriteTimeout,
			IdleTimeout:  cfg.ServerIdleTimeout,
		},
		cleanupFuncs: []func(){db.Close},
	}, nil
}

func healthCheck(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("degraded"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
