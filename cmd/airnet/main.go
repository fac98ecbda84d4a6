package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skyroutes/airnet/pkg/config"
	"github.com/skyroutes/airnet/pkg/logging"
	"github.com/skyroutes/airnet/pkg/metrics"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to YAML config (defaults apply without one)")
		airports    = flag.String("airports", "", "Override airports.dat path")
		routes      = flag.String("routes", "", "Override routes.dat path")
		outDir      = flag.String("out", "", "Override output directory")
		metricsAddr = flag.String("metrics-addr", "", "Expose Prometheus metrics on this address")
	)
	flag.Parse()

	logger := logging.DefaultLogger().With(logging.Component("airnet"))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("config load failed", logging.Error(err))
			os.Exit(1)
		}
		cfg = loaded
	}
	if *airports != "" {
		cfg.Data.AirportsPath = *airports
	}
	if *routes != "" {
		cfg.Data.RoutesPath = *routes
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = *metricsAddr
	}

	registry := metrics.NewRegistry()
	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Addr, registry, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := &pipeline{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		runID:    uuid.NewString(),
		started:  time.Now(),
	}

	if err := p.run(ctx); err != nil {
		logger.Error("pipeline failed", logging.Error(err))
		os.Exit(1)
	}

	fmt.Print(p.renderSummary())
}

func serveMetrics(addr string, registry *metrics.Registry, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry.Prometheus(), promhttp.HandlerOpts{}))
	logger.Info("metrics endpoint listening", logging.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics endpoint failed", logging.Error(err))
	}
}
