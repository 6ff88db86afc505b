package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Equity1137/deep-x-check/pkg/auth"
	"github.com/Equity1137/deep-x-check/pkg/events"
	"github.com/Equity1137/deep-x-check/pkg/kafka"
	"github.com/Equity1137/deep-x-check/pkg/observability"
	"github.com/Equity1137/deep-x-check/pkg/postgres"

	"github.com/Equity1137/deep-x-check/internal/application/usecase"
	"github.com/Equity1137/deep-x-check/internal/domain/service"
	"github.com/Equity1137/deep-x-check/internal/infrastructure/classifier"
	"github.com/Equity1137/deep-x-check/internal/infrastructure/config"
	infraKafka "github.com/Equity1137/deep-x-check/internal/infrastructure/kafka"
	infraPostgres "github.com/Equity1137/deep-x-check/internal/infrastructure/postgres"
	grpcPresentation "github.com/Equity1137/deep-x-check/internal/presentation/grpc"
	"github.com/Equity1137/deep-x-check/internal/presentation/rest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "deepxcheck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "deepxcheck",
	})
	logger.Info("starting deepxcheck",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing pipeline.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	// Metrics pipeline.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error("meter provider shutdown error", "error", err)
		}
	}()

	analysisMetrics, err := observability.NewAnalysisMetrics()
	if err != nil {
		return fmt.Errorf("create analysis metrics: %w", err)
	}

	// Database pool.
	pool, err := postgres.NewPool(ctx, postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()
	logger.Info("database pool created")

	// Run database migrations.
	migDSN := postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if migErr := postgres.RunMigrations(migDSN, "file://internal/infrastructure/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Kafka producer and the outbox relay that drains staged events to it.
	kafkaProducer := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()

	publisher := infraKafka.NewPublisher(kafkaProducer, cfg.Kafka.AnalysesTopic, logger)
	outboxRepo := infraPostgres.NewOutboxRepository(pool)
	relay := events.NewRelay(outboxRepo, publisher, cfg.Outbox.RelayInterval, cfg.Outbox.RelayBatchSize, logger)
	go relay.Run(ctx)
	logger.Info("outbox relay started", "topic", cfg.Kafka.AnalysesTopic)

	// Scoring rules, overridable from a YAML file.
	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		logger.Warn("rules file ignored, using defaults", "error", err)
	}
	ruleScorer := service.NewRuleScorer(rules)

	var scorer service.Scorer = ruleScorer
	if cfg.Classifier.Enabled {
		bioClassifier := classifier.NewStubBioClassifier(classifier.NeutralProbability, logger)
		scorer = service.NewHybridScorer(ruleScorer, bioClassifier, cfg.Classifier.Threshold, logger)
		logger.Info("hybrid scoring enabled", "threshold", cfg.Classifier.Threshold)
	}

	// Repositories and use cases.
	redactor := service.NewRedactor()
	analysisRepo := infraPostgres.NewAnalysisRepository(pool)

	analyzeProfile := usecase.NewAnalyzeProfile(analysisRepo, scorer, redactor, analysisMetrics)
	getAnalysis := usecase.NewGetAnalysis(analysisRepo, redactor)
	listAnalyses := usecase.NewListAnalyses(analysisRepo, redactor)

	// Optional intake consumer: feeds the analysis pipeline from a topic of
	// structured profile records.
	if cfg.Kafka.IntakeTopic != "" {
		worker := infraKafka.NewIntakeWorker(analyzeProfile, logger)
		consumer := kafka.NewConsumer(kafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ConsumerGroup: cfg.Kafka.IntakeGroup,
		}, cfg.Kafka.IntakeTopic, worker.Handle, logger)
		defer consumer.Close()

		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error("intake consumer stopped", "error", err)
			}
		}()
		logger.Info("intake consumer started", "topic", cfg.Kafka.IntakeTopic)
	}

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: "deepxcheck",
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			return fmt.Errorf("load JWT public key file: %w", loadErr)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			return fmt.Errorf("JWT_PUBLIC_KEY, JWT_PUBLIC_KEY_FILE or JWT_SECRET must be set")
		}
		logger.Info("using JWT secret for token validation", "issuer", jwtCfg.Issuer)
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewHandler(analyzeProfile, getAnalysis, listAnalyses, logger)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, cfg.GRPCPort, jwtSvc)

	// HTTP server: health and metrics are open, the API sits behind
	// logging, rate limiting, and JWT auth.
	healthHandler := rest.NewHealthHandler(pool, logger)
	analysisHandler := rest.NewAnalysisHandler(analyzeProfile, getAnalysis, listAnalyses, logger)

	apiMux := http.NewServeMux()
	analysisHandler.RegisterRoutes(apiMux)

	var api http.Handler = apiMux
	api = rest.AuthMiddleware(jwtSvc)(api)
	api = rest.RateLimitMiddleware(cfg.HTTPRateLimit, cfg.HTTPRateBurst)(api)
	api = rest.LoggingMiddleware(logger)(api)

	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	mux.Handle("/api/v1/", api)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	// Shutdown sequence.
	logger.Info("shutting down")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	// Cancelling the context stops the relay (with a final outbox flush)
	// and the intake consumer.
	cancel()
	logger.Info("deepxcheck stopped")
	return nil
}
