package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/gridbook/internal/catalog"
	"github.com/JonMunkholm/gridbook/internal/config"
	"github.com/JonMunkholm/gridbook/internal/logging"
	"github.com/JonMunkholm/gridbook/internal/reader"
	"github.com/JonMunkholm/gridbook/internal/table"
	"github.com/JonMunkholm/gridbook/internal/tokenizer"
	"github.com/JonMunkholm/gridbook/internal/web"
)

func main() {
	// Load .env file if it exists; variables already set win
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env file", "error", err)
		os.Exit(1)
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"database", cfg.Database.Enabled(),
		"book_dir", cfg.Catalog.BookDir,
		"table_classes", table.Classes(),
	)
	slog.Debug("configuration", "config", cfg.String())

	ctx := context.Background()
	cat := catalog.New()

	if cfg.Catalog.BookDir != "" {
		loadBookDir(ctx, cfg, cat)
	}

	// The database is optional; without it query imports answer 503
	var server *web.Server
	if cfg.Database.Enabled() {
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		server = web.NewServer(cat, cfg, pool)
	} else {
		server = web.NewServer(cat, cfg, nil)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// loadBookDir reads BOOK_DIR into the catalog as one book. Failures are
// logged; the server starts either way.
func loadBookDir(ctx context.Context, cfg *config.Config, cat *catalog.Catalog) {
	rc := cfg.Reader
	br := &reader.BookReader{
		Name:    filepath.Base(cfg.Catalog.BookDir),
		Dir:     cfg.Catalog.BookDir,
		Pattern: cfg.Catalog.BookPattern,
		Params:  rc.Params(),
		Tokenizer: tokenizer.New(
			tokenizer.WithDelimiter(rc.Delimiter),
			tokenizer.WithQuote(rc.QuoteChars()),
		),
		Encoding: rc.Encoding,
	}

	book, ok := br.Read(ctx)
	if !ok {
		slog.Warn("book directory not loaded", "dir", cfg.Catalog.BookDir)
		return
	}
	if book.Len() == 0 {
		slog.Warn("book directory has no readable sheets", "dir", cfg.Catalog.BookDir, "pattern", br.Pattern)
		return
	}

	entry := cat.Add(book, "dir")
	slog.Info("book loaded", "book", entry.ID, "name", entry.Name, "sheets", len(entry.Sheets))
}

// connect opens and verifies the connection pool used by query imports.
func connect(ctx context.Context, dc config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dc.URL)
	if err != nil {
		return nil, err
	}

	// Apply pool configuration from config
	poolConfig.MaxConns = int32(dc.MaxConns)
	poolConfig.MinConns = int32(dc.MinConns)
	poolConfig.MaxConnLifetime = dc.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(dc.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
