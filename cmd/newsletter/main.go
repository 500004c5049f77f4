// Package main реализует точку входа сервиса подписок на рассылку.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"newsletter/internal/newsletter/adapters/http"
	"newsletter/internal/newsletter/adapters/postgres"
	"newsletter/internal/newsletter/app"
	"newsletter/internal/newsletter/config"
	"newsletter/internal/newsletter/db"
	"newsletter/internal/newsletter/metrics"
	"newsletter/pkg/logger"
	"newsletter/pkg/shutdown"
	"newsletter/pkg/telemetry"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrStartHTTP            = "failed to start HTTP server"
	ErrShutdown             = "graceful shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "newsletter service started"
	LogServiceShutdownDone = "newsletter service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogStoppingTracer      = "stopping tracer provider"
	LogInitRepo            = "initializing repositories"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
)

func main() {
	env, err := config.EnvironmentFromEnv()
	if err != nil {
		env = config.Local
	}

	log, err := logger.NewLogger(env.LoggerEnvironment(), "info")
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Environment.LoggerEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		tracerProvider := telemetry.NewTracerProvider(cfg.Tracing.ServiceName, log)
		tracer := telemetry.Tracer(tracerProvider)

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		serviceMetrics := metrics.New(registry)

		database, err := db.New(ctx, &cfg.Database)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepo)
		subscriptionRepo := postgres.NewSubscriptionRepository(database.Pool(),
			postgres.WithTimeout(cfg.Database.AcquireTimeout),
			postgres.WithTracer(tracer),
			postgres.WithMetrics(serviceMetrics))

		log.Info(ctx, LogInitUseCases)
		subscriptionUseCase := app.NewSubscriptionUseCase(subscriptionRepo, serviceMetrics)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := http.NewApp(cfg.Application, http.Dependencies{
			Logger:        log,
			Subscriptions: subscriptionUseCase,
			Tracer:        tracer,
			Gatherer:      registry,
		})

		server, err := http.Listen(cfg.Application.GetAddress(), fiberApp)
		if err != nil {
			log.Error(ctx, ErrStartHTTP, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}
		server.Start(ctx)

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", cfg.Environment.String()),
			zap.String("address", server.Addr()),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		err = shutdown.Wait(ctx, cfg.Shutdown.Timeout,
			shutdown.Hook{Name: "http", Fn: server.Shutdown},
			shutdown.Hook{Name: "database", Fn: func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			}},
			shutdown.Hook{Name: "tracer", Fn: func(ctx context.Context) error {
				log.Info(ctx, LogStoppingTracer)
				return telemetry.Shutdown(ctx, tracerProvider)
			}},
		)
		if err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
