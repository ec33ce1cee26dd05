package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-wheel/internal/adapter/csvsource"
	"github.com/couchcryptid/weather-wheel/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/weather-wheel/internal/adapter/kafka"
	"github.com/couchcryptid/weather-wheel/internal/config"
	"github.com/couchcryptid/weather-wheel/internal/observability"
	"github.com/couchcryptid/weather-wheel/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	opts, err := cfg.ChartOptions()
	if err != nil {
		logger.Error("failed to load chart style", "path", cfg.StylePath, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := csvsource.NewReader(cfg.DataPath, logger)
	chart, err := pipeline.NewBuilder(source, opts, logger, metrics).Build(ctx)
	if err != nil {
		logger.Error("failed to build chart", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}

	// Frames go to Kafka only when enabled; the HTTP API serves them either way.
	var (
		loaders []pipeline.FrameLoader
		writer  *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, writer)
		logger.Info("kafka frame publishing enabled", "topic", cfg.KafkaFrameTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka frame publishing disabled")
	}

	p := pipeline.New(chart, loaders, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start event pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
