package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/config"
	"microblog/internal/handler"
	"microblog/internal/middleware"
)

// NewUserService builds the identity provider's routes. /me is both the
// profile endpoint for clients and the whoami endpoint other services'
// remote guards delegate to.
func NewUserService(
	cfg *config.UserService,
	guard *middleware.AuthMiddleware,
	users *handler.UserHandler,
	health http.HandlerFunc,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", health)

	r.Route("/api/users", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/register", users.Register)
		api.Post("/login", users.Login)
		api.With(guard.Protect).Get("/me", users.Me)
		api.With(guard.Protect).Put("/me", users.UpdateProfile)
	})

	return r
}
