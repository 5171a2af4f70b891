package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/josinaldojr/leopard-cat-rag/internal/app"
	"github.com/josinaldojr/leopard-cat-rag/internal/config"
	apphttp "github.com/josinaldojr/leopard-cat-rag/internal/http"
	"github.com/josinaldojr/leopard-cat-rag/internal/logging"
	"github.com/josinaldojr/leopard-cat-rag/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init pipeline", zap.Error(err))
	}
	defer a.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := apphttp.NewHandler(a.Service, metrics.New(reg), logger, cfg.RequestTimeout)
	router := apphttp.NewRouter(h, reg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apphttp.CORS(cfg.CORSOrigins)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
