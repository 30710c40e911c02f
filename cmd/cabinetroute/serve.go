package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cabinetroute/internal/httpapi"
	"github.com/katalvlaran/cabinetroute/internal/metrics"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP route server",
		Long: `Run the HTTP route server.

The graph is loaded on the first request and can be swapped at runtime with
POST /api/graph/reload. SIGINT or SIGTERM shuts the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", a.cfg.Server.Addr, err)
			}

			return a.serve(ctx, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

// serve runs the server on ln until ctx is done, then shuts it down within
// the configured timeout.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	cfg := a.cfg
	cache := a.cache()
	searcher, err := a.searcher()
	if err != nil {
		return err
	}
	svc, err := a.service(cache, searcher)
	if err != nil {
		return err
	}

	opts := []httpapi.Option{
		httpapi.WithLogger(a.log),
		httpapi.WithReloader(cache),
		httpapi.WithStaticDir(cfg.Server.StaticDir),
	}
	if cfg.Metrics.Enabled {
		store, err := a.openMetrics("")
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, httpapi.WithRecorder(store))
		a.logMetrics(ctx, store)
	}

	srv := &http.Server{
		Handler:      httpapi.New(svc, cache, opts...).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(a.log.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("data", cfg.Data.Dir),
			slog.String("strategy", cfg.Search.Strategy),
			slog.String("heuristic", cfg.Search.Heuristic),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (a *app) logMetrics(ctx context.Context, store *metrics.Store) {
	n, err := store.Count(ctx)
	if err != nil {
		a.log.Warn("metrics store unreadable", slog.String("path", store.Path()), slog.Any("err", err))
		return
	}
	minMs, maxMs := store.GoodRange()
	a.log.Info("metrics store open",
		slog.String("path", store.Path()),
		slog.Int("activities", n),
		slog.Int64("good_min_ms", minMs),
		slog.Int64("good_max_ms", maxMs),
	)
}
