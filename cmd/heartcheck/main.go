package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/heartcheck/internal/config"
	dbRedis "github.com/kailas-cloud/heartcheck/internal/db/redis"
	"github.com/kailas-cloud/heartcheck/internal/domain/clinical"
	logpkg "github.com/kailas-cloud/heartcheck/internal/logger"
	"github.com/kailas-cloud/heartcheck/internal/metrics"
	"github.com/kailas-cloud/heartcheck/internal/model"
	"github.com/kailas-cloud/heartcheck/internal/preprocess"
	usagerepo "github.com/kailas-cloud/heartcheck/internal/repository/usage"
	chiTransport "github.com/kailas-cloud/heartcheck/internal/transport/chi"
	healthuc "github.com/kailas-cloud/heartcheck/internal/usecase/health"
	predictuc "github.com/kailas-cloud/heartcheck/internal/usecase/predict"
	usageuc "github.com/kailas-cloud/heartcheck/internal/usecase/usage"
	"github.com/kailas-cloud/heartcheck/internal/version"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic("failed to load .env: " + err.Error())
	}

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting heartcheck server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("artifact", cfg.Model.ArtifactPath),
		zap.String("preprocessing", cfg.Model.Preprocessing),
	)

	// Register prediction metrics explicitly (no init())
	metrics.RegisterPredictionMetrics()

	// Model artifact: loaded once, shared read-only by every request.
	bundle, err := model.LoadBundle(cfg.Model.ArtifactPath)
	if err != nil {
		logger.Fatal("Failed to load model artifact", zap.String("path", cfg.Model.ArtifactPath), zap.Error(err))
	}
	classifier, err := bundle.Classifier()
	if err != nil {
		logger.Fatal("Failed to build classifier", zap.Error(err))
	}

	schema := clinical.HeartDisease()
	mode := preprocess.Mode(cfg.Model.Preprocessing)
	pipeline, err := preprocess.New(mode, bundle.Preprocessing, schema)
	if err != nil {
		logger.Fatal("Failed to build preprocessing pipeline", zap.Error(err))
	}
	if mode == preprocess.ModeRefit {
		logger.Warn("Refit preprocessing fits on each submission; single rows will not match the model width",
			zap.Int("model_features", classifier.NumFeatures()),
		)
	}

	metrics.ModelInfo.WithLabelValues(bundle.Name, string(mode), strconv.Itoa(classifier.NumFeatures())).Set(1)
	logger.Info("Model loaded",
		zap.String("name", bundle.Name),
		zap.Int("features", classifier.NumFeatures()),
		zap.Strings("feature_names", bundle.Preprocessing.FeatureNames()),
	)

	// Usage counters: in-memory, optionally persisted to Redis/Valkey.
	ctx := context.Background()
	counter := usageuc.NewCounter(logger)

	// Pass nil interface (not typed nil pointer) when persistence is off.
	var dbPinger healthuc.DBPinger
	if cfg.Database.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Strings("addrs", cfg.Database.Addrs),
		)

		counter.WithStore(ctx, usagerepo.New(store, 48*time.Hour, 62*24*time.Hour))
		dbPinger = store
	} else {
		logger.Info("Usage persistence disabled; counters are in-memory only")
	}

	// Use case services
	predictSvc := predictuc.New(
		schema, pipeline,
		predictuc.NewInstrumentedClassifier(classifier, bundle.Name, logger),
		logger,
	).WithUsage(counter)
	usageSvc := usageuc.New(counter)
	healthSvc := healthuc.New(predictSvc, dbPinger)

	server := chiTransport.NewServer(predictSvc, usageSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
