package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"kernel-matrix/internal/site"
)

var (
	serveConfigPath string
	serveListen     string
	serveSourceURL  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conformance matrix over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config YAML/JSON")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address override")
	serveCmd.Flags().StringVar(&serveSourceURL, "source", "", "Result document URL override")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := site.LoadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.ListenAddr = serveListen
	}
	if serveSourceURL != "" {
		cfg.Source.URL = serveSourceURL
	}

	rootCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := site.SetupObservability(rootCtx, cfg.Observer)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = obs.Shutdown(ctx)
	}()

	// The archive is optional: in memory by default, Postgres when a DSN
	// is configured.
	var archive site.Archive = site.NewMemoryArchive()
	if cfg.Database.DSN != "" {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN)
		if err != nil {
			return err
		}
		poolCfg.MaxConns = cfg.Database.MaxConns
		pool, err := pgxpool.NewWithConfig(rootCtx, poolCfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := site.EnsureSchema(rootCtx, pool); err != nil {
			return err
		}
		archive = site.NewPgArchive(pool)
	}

	loader := site.NewLoader(cfg.Source, archive, obs)
	if err := loader.Refresh(rootCtx); err != nil {
		// not fatal: the server starts degraded and answers 503 until a
		// refresh succeeds
		slog.Warn("initial document fetch failed", "error", err)
	}

	auth := site.NewAuth(cfg.Security)
	api := site.NewAPI(auth, loader, archive, obs)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-rootCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	slog.Info("kernel-matrix listening",
		"listen", cfg.ListenAddr,
		"source", cfg.Source.URL,
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
