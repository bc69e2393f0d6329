package app

import (
	"context"
	"fmt"
	"net/http"

	"microblog/internal/authclient"
	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/handler"
	"microblog/internal/middleware"
	"microblog/internal/repository"
	"microblog/internal/router"
	"microblog/internal/service"
)

// NewBlogService assembles the blog service. It carries no signing secret:
// the remote guard delegates every identity check to the user service.
func NewBlogService() (*App, error) {
	cfg, err := config.LoadBlogService()
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

	if err := db.EnsureBlogSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	identity := authclient.New(cfg.UserServiceURL, cfg.AuthTimeout)
	guard := middleware.NewRemoteAuthMiddleware(identity)

	blogRepo := repository.NewBlogRepository(db.Pool)
	blogService := service.NewBlogService(blogRepo)
	blogHandler := handler.NewBlogHandler(blogService)

	appRouter := router.NewBlogService(cfg, guard, blogHandler, healthCheck(db))

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
