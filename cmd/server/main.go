package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/pagegrid/pagegrid/internal/config"
	"github.com/pagegrid/pagegrid/internal/grid"
	"github.com/pagegrid/pagegrid/internal/logging"
	"github.com/pagegrid/pagegrid/internal/store"
	"github.com/pagegrid/pagegrid/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
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
		"store_backend", cfg.Store.Backend,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	st, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := web.NewServer(st, web.Options{
		RequestTimeout:   cfg.Server.RequestTimeout,
		RateLimitEnabled: cfg.Rate.Enabled,
		RateLimit:        cfg.Rate.RequestsPerMinute,
	})

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

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// buildStore creates the dataset store selected by config. The returned
// cleanup closes any resources the store holds.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case "postgres":
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}

		if u, err := url.Parse(cfg.Database.URL); err == nil {
			slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
		} else {
			slog.Info("connected to database")
		}

		pg := store.NewPGStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil

	default:
		m := store.NewMemStore()
		if cfg.Store.SeedDemo {
			m.Seed("demo", demoDataset())
			slog.Info("seeded demo dataset", "file_id", "demo")
		}
		return m, func() {}, nil
	}
}

// demoDataset is a small dataset for trying the API without uploading
// anything first.
func demoDataset() *store.Dataset {
	return &store.Dataset{
		Columns: []string{"Name", "Department", "Status", "Amount"},
		Rows: []grid.Row{
			{"Name": "Alice Johnson", "Department": "Sales", "Status": "Active", "Amount": "1250.50"},
			{"Name": "Bob Smith", "Department": "Engineering", "Status": "Active", "Amount": "980"},
			{"Name": "Carol Diaz", "Department": "Sales", "Status": "Inactive", "Amount": "410.75"},
			{"Name": "Dan Lee", "Department": "Support", "Status": "Active", "Amount": "33"},
			{"Name": "Erin Park", "Department": "Engineering", "Status": "Pending", "Amount": "2100"},
		},
	}
}
