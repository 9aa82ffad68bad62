package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"

	"github.com/skysatisfy/skysatisfy/internal/application/usecase"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/artifact"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/config"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/dataset"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/memory"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/messaging"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/ml"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/postgres"
	grpcpresentation "github.com/skysatisfy/skysatisfy/internal/presentation/grpc"
	"github.com/skysatisfy/skysatisfy/internal/presentation/rest"
	"github.com/skysatisfy/skysatisfy/pkg/observability"
)

const serviceName = "skysatisfyd"

// publisher is an event publisher that owns a connection.
type publisher interface {
	port.EventPublisher
	Close() error
}

func main() {
	if err := run(); err != nil {
		slog.Error("skysatisfyd failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	logger.Info("starting skysatisfyd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"environment", cfg.Environment,
	)

	// Initialize tracing.
	tracerProvider, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Warn("tracer shutdown error", "error", err)
			}
		}()
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		return err
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()
	otel.SetMeterProvider(meterProvider)

	instruments, err := observability.NewInstruments(meterProvider.Meter(serviceName))
	if err != nil {
		return err
	}

	// Wire infrastructure adapters.
	var readiness []rest.ReadinessCheck

	predictions, pool, err := newPredictionRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
		readiness = append(readiness, rest.ReadinessCheck{Name: "database", Check: func(ctx context.Context) error {
			return postgres.HealthCheck(ctx, pool)
		}})
	}

	events := newPublisher(cfg, logger)
	defer func() {
		if err := events.Close(); err != nil {
			logger.Warn("event publisher close error", "error", err)
		}
	}()

	fs := afero.NewOsFs()
	models := artifact.NewModelStore(fs, cfg.ModelPath())
	metrics := artifact.NewMetricsStore(fs, cfg.MetricsPath())
	source := dataset.NewCSVSource(fs, cfg.DatasetPath, logger)

	// Train before listening when either artifact is missing.
	trainModel := usecase.NewTrainModel(source, models, metrics, events, instruments, logger, cfg.Boost, cfg.KFold)
	booster, err := usecase.NewEnsureModel(models, metrics, trainModel, logger).Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to prepare model: %w", err)
	}
	scorer, err := ml.NewBoosterScorer(booster)
	if err != nil {
		return err
	}
	modelTrainedAt, err := models.TrainedAt(ctx)
	if err != nil {
		return fmt.Errorf("failed to read model timestamp: %w", err)
	}
	readiness = append(readiness, rest.ReadinessCheck{Name: "model", Check: func(ctx context.Context) error {
		_, err := models.TrainedAt(ctx)
		return err
	}})

	// Wire use cases.
	predictUC := usecase.NewPredictSatisfaction(scorer, modelTrainedAt, predictions, events, instruments, logger)
	modelInfoUC := usecase.NewGetModelInfo(models, metrics)
	getPredictionUC := usecase.NewGetPrediction(predictions)

	// gRPC server.
	grpcHandler := grpcpresentation.NewSatisfactionHandler(predictUC, modelInfoUC, getPredictionUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.TLSCertFile,
		TLSKeyFile:  cfg.TLSKeyFile,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	validator, err := rest.NewPredictRequestValidator()
	if err != nil {
		return err
	}
	docs, err := rest.NewDocsHandler()
	if err != nil {
		return err
	}
	router := rest.NewRouter(logger, metricsHandler,
		rest.NewPredictionHandler(predictUC, modelInfoUC, getPredictionUC, validator, logger),
		rest.NewHealthHandler(logger, readiness...),
		docs,
	)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		var err error
		if cfg.TLSEnabled() {
			err = httpServer.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("skysatisfyd started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"trees", len(booster.Trees),
		"model_trained_at", modelTrainedAt,
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down skysatisfyd")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("skysatisfyd stopped")
	return serveErr
}

// newPredictionRepository selects the Postgres prediction log when a
// database URL is configured, migrating it first, and the in-memory LRU
// otherwise. The pool is nil for the in-memory log.
func newPredictionRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.PredictionRepository, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		repo, err := memory.NewPredictionRepository(cfg.PredictionCacheSize)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("prediction log in memory", "capacity", cfg.PredictionCacheSize)
		return repo, nil, nil
	}

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, nil, err
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := postgres.NewPool(dbCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to database")
	return postgres.NewPredictionRepository(pool), pool, nil
}

func newPublisher(cfg *config.Config, logger *slog.Logger) publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return messaging.NewLogPublisher(logger)
	}
	logger.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}
