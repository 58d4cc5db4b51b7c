package main

import (
	"context"
	"customer-registry/internal/api"
	"customer-registry/internal/batch"
	"customer-registry/internal/config"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/domain/transaction"
	"customer-registry/internal/event"
	"customer-registry/internal/infrastructure/database/postgres"
	"customer-registry/internal/infrastructure/logging"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title Customer Registry API
// @version 1.0
// @description Customers, their addresses and their transactions.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initializeApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())
	return cfg, logger, nil
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.AutoMigrate {
		logger.Info("Applying database migrations...")
		if err := postgres.Migrate(cfg.Database.URL, logger); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database connection pool: %w", err)
	}

	if cfg.Database.Seed {
		if _, err := postgres.Seed(ctx, dbPool, logger); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}
	return dbPool, nil
}

func initializePublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	if !cfg.Enabled {
		logger.Info("RabbitMQ disabled, customer events will not be published")
		return event.NewNoopEventPublisher(logger), nil
	}

	conn, err := event.Dial(cfg)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, falling back to no-op publisher", "error", err)
		return event.NewNoopEventPublisher(logger), nil
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		logger.Warn("Failed to set up RabbitMQ publisher, falling back to no-op publisher", "error", err)
		conn.Close()
		return event.NewNoopEventPublisher(logger), nil
	}
	return publisher, conn
}

func initializeServices(dbPool postgres.DBPool, publisher event.EventPublisher, logger *slog.Logger) (api.Services, *postgres.AddressRepository) {
	logger.Info("Initializing application components...")
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	addressRepo := postgres.NewAddressRepository(dbPool, logger)
	transactionRepo := postgres.NewTransactionRepository(dbPool, logger)

	return api.Services{
		Customers:    customer.NewCustomerService(customerRepo, publisher, logger),
		Addresses:    address.NewAddressService(addressRepo, logger),
		Transactions: transaction.NewTransactionService(transactionRepo, logger),
	}, addressRepo
}

func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dbPool, err := initializeDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	publisher, amqpConn := initializePublisher(cfg.RabbitMQ, logger)
	services, addressRepo := initializeServices(dbPool, publisher, logger)

	auditJob := batch.NewPrimaryAddressAuditJob(addressRepo, logger)
	cronScheduler := startBatchJobs(cfg, logger, auditJob)

	router, closeRouter := api.SetupRouter(services, dbPool, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger, func() {
		closeRouter()
		if amqpConn != nil {
			logger.Info("Closing RabbitMQ connection...")
			if err := amqpConn.Close(); err != nil {
				logger.Warn("RabbitMQ connection close failed", "error", err)
			}
		}
		logger.Info("Closing database connection pool...")
		dbPool.Close()
	})
	return nil
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

// handleShutdown blocks until a signal or server failure, then stops the
// scheduler and the server before running cleanup.
func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger, cleanup func()) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
		}
		triggerReason = "server exited"
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	if triggerReason != "server exited" {
		select {
		case err := <-serverErrors:
			if err != nil {
				logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
			}
		case <-time.After(5 * time.Second):
			logger.Warn("Timed out waiting for server goroutine confirmation.")
		}
	}

	if cleanup != nil {
		cleanup()
	}
	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, auditJob *batch.PrimaryAddressAuditJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.PrimaryAddressAuditSchedule
	if scheduleSpec == "" {
		scheduleSpec = "30 3 * * *"
		logger.Warn("Primary address audit schedule not configured, using default", "schedule", scheduleSpec)
	}
	if _, err := batch.Schedule(c, scheduleSpec, cfg.Batch.PrimaryAddressAuditTimeout, auditJob, logger); err != nil {
		logger.Error("Failed to schedule primary address audit", slog.Any("error", err))
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
