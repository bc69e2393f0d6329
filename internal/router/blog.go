package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/config"
	"microblog/internal/handler"
	"microblog/internal/middleware"
)

// NewBlogService builds the blog routes. Every blog route sits behind the
// remote guard; the guard reaches the identity provider over the network.
func NewBlogService(
	cfg *config.BlogService,
	guard *middleware.RemoteAuthMiddleware,
	blogs *handler.BlogHandler,
	health http.HandlerFunc,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", health)

	r.Route("/api/blogs", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		api.Use(guard.Protect)

		api.Get("/", blogs.List)
		api.Post("/", blogs.Create)
		api.Get("/{id}", blogs.Get)
		api.Put("/{id}", blogs.Update)
		api.Delete("/{id}", blogs.Delete)
	})

	return r
}
