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

	"github.com/tallyfold/mis/internal/config"
	"github.com/tallyfold/mis/internal/httpapi"
	"github.com/tallyfold/mis/internal/rules"
	"github.com/tallyfold/mis/internal/sales"
	"github.com/tallyfold/mis/internal/service/classify"
	"github.com/tallyfold/mis/internal/storage/memory"
	pgstore "github.com/tallyfold/mis/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	logger := buildLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	opts := classify.Options{
		Currency:     cfg.Currency,
		SkipReceipts: cfg.SkipReceiptVouchers,
		Sales:        sales.DefaultConfig(),
	}
	if cfg.TransferOriginState != "" {
		opts.Sales.TransferOriginState = cfg.TransferOriginState
	}
	if cfg.RulesFile != "" {
		f, err := rules.LoadFile(cfg.RulesFile)
		if err != nil {
			logger.Error("rules file load failed", "path", cfg.RulesFile, "err", err)
			os.Exit(1)
		}
		opts.FileRules = f.Rules
		opts.FileIgnores = f.Ignore
		logger.Info("rules file loaded", "path", cfg.RulesFile, "rules", len(f.Rules), "ignore", len(f.Ignore))
	}

	var (
		svc     classify.Service
		ready   httpapi.ReadyFunc
		closeFn func()
	)
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = func() { pg.Close() }
		ready = pg.Ready
		svc = classify.New(pg, pg, opts)
		logger.Info("storage backend: postgres")
	} else {
		store := memory.New()
		svc = classify.New(store, store, opts)
		logger.Info("storage backend: memory")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(svc, ready, cfg.Currency, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mis service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(level, format string) *slog.Logger {
	lvl := parseLogLevel(level)
	if strings.ToLower(strings.TrimSpace(format)) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
