package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"nameplate/internal/identity/handler"
	"nameplate/internal/platform/httpserver"
	"nameplate/internal/platform/logger"
	"nameplate/internal/platform/metrics"
	"nameplate/pkg/platform/httputil"
	"nameplate/pkg/platform/middleware/accesslog"
	"nameplate/pkg/platform/middleware/metadata"
	"nameplate/pkg/platform/middleware/requestid"
	"nameplate/pkg/platform/middleware/requesttime"
)

var serveWithBalance bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the identity HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.New(cfg.LogLevel, cfg.LogFormat)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, log, appOptions{
			withBalance: serveWithBalance,
			useRedis:    true,
			registerer:  prometheus.DefaultRegisterer,
		})
		if err != nil {
			return err
		}
		defer a.Close()

		if chainID, err := selectedChain(a.registry); err != nil {
			return err
		} else if chainID != 0 {
			log.Warn("--chain is ignored by serve; set DEFAULT_CHAIN_ID instead", "chain_id", uint64(chainID))
		}

		router := chi.NewRouter()
		router.Use(requestid.Middleware)
		router.Use(requesttime.Middleware)
		router.Use(metadata.ClientMetadata)
		router.Use(accesslog.Middleware(log, metrics.New(prometheus.DefaultRegisterer)))

		router.Get("/healthz", a.handleHealth)
		router.Handle("/metrics", promhttp.Handler())
		handler.New(a.service, log).Register(router)

		srv := httpserver.New(cfg.Addr, router, cfg.ResolveTimeout)
		log.Info("starting nameplate",
			"addr", cfg.Addr,
			"default_chain_id", uint64(a.registry.Default().ChainID),
			"chains", len(a.registry.List()),
		)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	if a.redis != nil {
		if err := a.redis.Health(r.Context()); err != nil {
			a.logger.WarnContext(r.Context(), "redis health check failed", "error", err)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": "unavailable"})
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithBalance, "with-balance", false, "include native balances in identity records")
	rootCmd.AddCommand(serveCmd)
}
