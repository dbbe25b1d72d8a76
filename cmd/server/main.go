package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/judydsp/provabruno/internal/accounts/handler"
	"github.com/judydsp/provabruno/internal/accounts/service"
	"github.com/judydsp/provabruno/internal/accounts/store"
	"github.com/judydsp/provabruno/internal/platform/config"
	"github.com/judydsp/provabruno/internal/platform/httpserver"
	"github.com/judydsp/provabruno/internal/platform/logger"
	"github.com/judydsp/provabruno/internal/platform/metrics"
	httptransport "github.com/judydsp/provabruno/internal/transport/http"
)

// main runs the reference registration service used by the signup client in
// local development. Accounts live in memory for the life of the process.
func main() {
	cfg, err := config.ServerFromEnv()
	if err != nil {
		logger.New("error").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.New(store.New(),
		service.WithLogger(log),
		service.WithMetrics(metrics.New(reg)),
		service.WithBcryptCost(cfg.BcryptCost),
	)
	router := httptransport.NewRouter(reg, handler.New(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting registration service", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("registration service stopped")
}
