// Command server is the DBOptima dashboard server binary. It loads a YAML
// configuration file, seeds the in-memory dashboard collections, opens the
// SQLite activity feed and the hash-chained audit trail, serves the REST
// API and WebSocket notification stream over HTTP, and shuts down
// gracefully on SIGTERM or SIGINT.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kingtech/dboptima/internal/activity"
	"github.com/kingtech/dboptima/internal/audit"
	"github.com/kingtech/dboptima/internal/auth"
	"github.com/kingtech/dboptima/internal/config"
	"github.com/kingtech/dboptima/internal/records"
	"github.com/kingtech/dboptima/internal/server/rest"
	"github.com/kingtech/dboptima/internal/server/websocket"
	"github.com/kingtech/dboptima/internal/store"
	"github.com/kingtech/dboptima/internal/task"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "/etc/dboptima/config.yaml", "Path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("dboptima dashboard server starting",
		slog.String("http_addr", cfg.HTTPAddr),
	)

	// baseCtx bounds fire-and-forget simulated jobs; cancelling it during
	// shutdown turns their completions into defined no-ops.
	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Seed collections ─────────────────────────────────────────────────────
	seed, err := records.Seed()
	if err != nil {
		logger.Error("failed to load seed data", slog.Any("error", err))
		os.Exit(1)
	}

	alerts := store.NewAlerts(seed.Alerts)
	databases := store.NewDatabases(seed.Databases)
	indexes := store.NewIndexes(seed.Recommendations)
	reports := store.NewReports(seed.Reports)
	team := store.NewTeam(seed.Team)

	// ── Activity feed (SQLite) ───────────────────────────────────────────────
	feed, err := activity.Open(cfg.ActivityPath)
	if err != nil {
		logger.Error("failed to open activity feed", slog.Any("error", err))
		os.Exit(1)
	}
	defer feed.Close()

	// ── Audit trail ──────────────────────────────────────────────────────────
	var trail *audit.Trail
	if cfg.AuditPath != "" {
		trail, err = audit.Open(cfg.AuditPath)
		if err != nil {
			logger.Error("failed to open audit trail", slog.Any("error", err))
			os.Exit(1)
		}
		defer trail.Close()
		logger.Info("audit trail enabled", slog.String("path", cfg.AuditPath))
	} else {
		logger.Warn("no audit_path configured; audit trail disabled")
	}

	// ── Auth ─────────────────────────────────────────────────────────────────
	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL.Std())
	if err != nil {
		logger.Error("failed to create token issuer", slog.Any("error", err))
		os.Exit(1)
	}

	// ── WebSocket notification stream ────────────────────────────────────────
	broadcaster := websocket.NewBroadcaster(logger, 0)
	wsHandler := websocket.NewHandler(broadcaster, logger, 0)

	// ── REST API server ──────────────────────────────────────────────────────
	runner := task.NewRunner(cfg.TaskDelay.Std(), logger)
	restSrv := rest.NewServer(rest.Config{
		Alerts:      alerts,
		Databases:   databases,
		Indexes:     indexes,
		Reports:     reports,
		Team:        team,
		Overview:    seed,
		Users:       auth.DefaultDirectory(),
		Issuer:      issuer,
		Notifier:    broadcaster,
		Activity:    feed,
		Trail:       trail,
		Runner:      runner,
		BaseContext: baseCtx,
		Logger:      logger,
	})

	// No WriteTimeout: the WebSocket stream stays open for the whole
	// session, and the handler enforces its own per-frame deadline.
	httpServer := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     rest.NewRouter(restSrv, wsHandler),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// ── Start server ─────────────────────────────────────────────────────────
	httpErrCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", slog.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			httpErrCh <- err
		}
		close(httpErrCh)
	}()

	// ── Wait for shutdown signal or fatal error ──────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-httpErrCh:
		if err != nil {
			logger.Error("HTTP server error", slog.Any("error", err))
		}
	}

	// ── Graceful shutdown ────────────────────────────────────────────────────
	logger.Info("shutting down")
	cancel() // pending simulated jobs observe cancellation and do nothing

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", slog.Any("error", err))
	}

	broadcaster.Close()
	runner.Wait()

	logger.Info("dboptima dashboard server exited cleanly")
}

// newLogger constructs a *slog.Logger that writes JSON-structured log records
// to stderr at the requested minimum level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
