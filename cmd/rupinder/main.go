// Package main is the entry point for the Rupinder Therapy site server.
// It loads configuration, connects to optional services, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rupinder/internal/cache"
	"rupinder/internal/config"
	"rupinder/internal/content"
	"rupinder/internal/database"
	"rupinder/internal/handlers"
	"rupinder/internal/leads"
	"rupinder/internal/middleware"
	"rupinder/internal/render"
	"rupinder/internal/router"
	"rupinder/internal/routes"
	"rupinder/internal/store"
	"rupinder/internal/theme"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	slog.SetDefault(newLogger(os.Stdout, cfg.IsDev()))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"leads", cfg.LeadsBackend,
		"cache", cfg.CacheEnabled(),
		"trust_proxy", cfg.TrustProxy,
	)

	table := routes.Default()

	th, err := theme.New(cfg.ThemePrimary, cfg.ThemeBackground, cfg.ThemeText)
	if err != nil {
		slog.Error("invalid theme", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey for the page cache (optional).
	var pageCache *cache.PageCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(context.Background(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		pageCache = cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)
		// Rendered pages from a previous deploy may be stale.
		pageCache.InvalidateAll(context.Background())
	} else {
		slog.Warn("valkey not configured, page cache disabled")
	}

	// Site content: embedded copy, or a watched file.
	site, closeContent, err := openContent(cfg.ContentFile, table.Pages(), func(*content.Site) {
		pageCache.InvalidateAll(context.Background())
	})
	if err != nil {
		slog.Error("failed to load site content", "error", err)
		os.Exit(1)
	}
	defer closeContent()

	renderer, err := render.New(table, site, th, render.WithDevMode(cfg.IsDev()))
	if err != nil {
		slog.Error("failed to initialize page renderer", "error", err)
		os.Exit(1)
	}

	intake, closeIntake, err := openIntake(cfg)
	if err != nil {
		slog.Error("failed to initialize lead intake", "error", err)
		os.Exit(1)
	}
	defer closeIntake()

	formLimiter := middleware.NewRateLimiter(cfg.FormRateLimit, cfg.FormRateWindow)
	defer formLimiter.Stop()

	r, err := router.New(router.Options{
		Public:        handlers.NewPublic(table, renderer, pageCache),
		Forms:         handlers.NewForms(leads.NewLogging(intake), site),
		FormLimiter:   formLimiter,
		SecureCookies: cfg.IsProd(),
		TrustProxy:    cfg.TrustProxy,
	})
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newLogger returns a text handler at debug level for development and a
// JSON handler at info level otherwise.
func newLogger(w io.Writer, dev bool) *slog.Logger {
	if dev {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// openContent returns the embedded copy when path is empty, otherwise a
// watcher over the file that calls onReload after every successful reload.
// Either way the content must cover every page in pages.
func openContent(path string, pages []string, onReload func(*content.Site)) (content.Provider, func(), error) {
	if path == "" {
		site, err := content.Default()
		if err != nil {
			return nil, nil, err
		}
		if err := site.Validate(pages); err != nil {
			return nil, nil, err
		}
		return content.NewStatic(site), func() {}, nil
	}

	w, err := content.Watch(path, pages, onReload)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("watching site content", "path", path)
	return w, func() { w.Close() }, nil
}

// openIntake builds the lead intake for the configured backend. SQL
// backends are connected and migrated here.
func openIntake(cfg *config.Config) (leads.Intake, func(), error) {
	var driver, dsn string
	switch cfg.LeadsBackend {
	case config.LeadsNoop:
		return leads.Noop{}, func() {}, nil
	case config.LeadsPostgres:
		driver, dsn = database.DriverPostgres, cfg.DSN()
	case config.LeadsSQLite:
		driver, dsn = database.DriverSQLite, cfg.SQLitePath
	default:
		return nil, nil, fmt.Errorf("unknown leads backend %q", cfg.LeadsBackend)
	}

	db, err := database.Connect(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db, driver); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store.NewLeadStore(db, driver), closeDB(db), nil
}

func closeDB(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Warn("database close failed", "error", err)
		}
	}
}
