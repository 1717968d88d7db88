// Package router sets up all HTTP routes and middleware chains for the
// site. Page paths are not registered with chi one by one: a catch-all
// hands every GET to the page handler and the route table decides.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"rupinder/internal/handlers"
	"rupinder/internal/middleware"
	"rupinder/web"
)

// Options carries the handler groups and middleware settings.
type Options struct {
	Public        *handlers.Public
	Forms         *handlers.Forms
	FormLimiter   *middleware.RateLimiter // nil disables form rate limiting
	SecureCookies bool
	TrustProxy    bool // take the client IP from proxy headers
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) (chi.Router, error) {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(chimw.Compress(5))

	// Health check, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	csrf := middleware.NewCSRF(opts.SecureCookies)

	// Form posts: the body limit wraps the request before CSRF parses it.
	r.Group(func(r chi.Router) {
		r.Use(chimw.RequestSize(handlers.MaxFormBytes))
		r.Use(csrf)
		if opts.FormLimiter != nil {
			r.Use(opts.FormLimiter.Middleware)
		}
		r.Post("/subscribe", opts.Forms.Subscribe)
		r.Post("/contact", opts.Forms.Contact)
	})

	// Pages share the CSRF cookie and embed the token in their forms.
	r.Group(func(r chi.Router) {
		r.Use(csrf)
		r.Get("/", opts.Public.Page)
		r.Head("/", opts.Public.Page)
		r.Get("/*", opts.Public.Page)
		r.Head("/*", opts.Public.Page)
	})

	return r, nil
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
