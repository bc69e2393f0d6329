// Package gateway is a static path-prefix router: /api/users goes to the
// identity provider, /api/blogs to the blog service, paths untouched.
package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"

	"microblog/internal/config"
	"microblog/internal/middleware"
)

func newProxy(target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = pr.In.URL.Path
			pr.Out.URL.RawPath = pr.In.URL.RawPath
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("upstream unavailable", "target", target.Host, "path", r.URL.Path, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"Upstream service unavailable"}`))
		},
	}
}

// NewRouter wires the two backend proxies behind the shared middleware
// stack.
func NewRouter(cfg *config.Gateway) (http.Handler, error) {
	userURL, err := url.Parse(cfg.UserServiceURL)
	if err != nil {
		return nil, fmt.Errorf("parse user service URL: %w", err)
	}
	blogURL, err := url.Parse(cfg.BlogServiceURL)
	if err != nil {
		return nil, fmt.Errorf("parse blog service URL: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Mount("/api/users", newProxy(userURL))
	r.Mount("/api/blogs", newProxy(blogURL))

	return r, nil
}
