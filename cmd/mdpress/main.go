// Package main is the entry point for the mdpress document server.
// It loads configuration, connects to services, registers the component
// set used for rendering, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mdpress/internal/cache"
	"mdpress/internal/compose"
	"mdpress/internal/config"
	"mdpress/internal/database"
	"mdpress/internal/handlers"
	"mdpress/internal/router"
	"mdpress/internal/store"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (optional — without it every request re-parses).
	var docCache *cache.DocCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, document caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		docCache = cache.NewDocCache(valkeyClient, cache.DefaultDocTTL)
	}

	docStore := store.NewDocumentStore(db)

	// Handlers.
	public := handlers.NewPublic(docStore, docCache, components())
	author := handlers.NewAuthor(docStore, docCache)

	// Router.
	r := router.New(public, author, cfg.AuthorKeyHash)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for an interrupt and shut down gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

// linkProps and calloutProps are the prop contracts for the built-in
// component set below.
type linkProps struct {
	Href     string `md:"href"`
	Title    string `md:"title"`
	Children compose.Children
}

type calloutProps struct {
	Kind     string `md:"kind"`
	Children compose.Children
}

// components builds the registry used for public rendering: links open
// external targets in a new tab, and <callout kind="..."> blocks wrap
// their children in a styled aside.
func components() *compose.Registry {
	b := compose.HTMLBuilder{}

	return compose.NewRegistry().
		With("a", compose.Component(func(p *linkProps) compose.View {
			attrs := []compose.Attribute{{Name: "href", Value: p.Href}}
			if p.Title != "" {
				attrs = append(attrs, compose.Attribute{Name: "title", Value: p.Title})
			}
			if strings.HasPrefix(p.Href, "http://") || strings.HasPrefix(p.Href, "https://") {
				attrs = append(attrs,
					compose.Attribute{Name: "target", Value: "_blank"},
					compose.Attribute{Name: "rel", Value: "noopener"},
				)
			}
			children, err := p.Children.Render()
			if err != nil {
				slog.Error("link children render failed", "error", err)
				return b.Text("")
			}
			return b.Element("a", attrs, []compose.View{children})
		})).
		With("callout", compose.Component(func(p *calloutProps) compose.View {
			kind := p.Kind
			if kind == "" {
				kind = "note"
			}
			children, err := p.Children.Render()
			if err != nil {
				slog.Error("callout children render failed", "error", err)
				return b.Text("")
			}
			return b.Element("aside",
				[]compose.Attribute{{Name: "class", Value: "callout callout-" + kind}},
				[]compose.View{children})
		}))
}
