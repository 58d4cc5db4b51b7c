package postgres

import (
	"context"
	"customer-registry/internal/config"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns       = 10
	defaultConnectTimeout = 5 * time.Second
	registryAppName       = "customer-registry"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// NewConnectionPool opens the pool shared by the customer, address and
// transaction repositories, the seeder and the readiness probe. It fails
// unless the registry database answers a ping within the connect timeout.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger = logger.With("component", "postgresPool")
	if cfg.URL == "" {
		return nil, fmt.Errorf("registry database URL is not configured")
	}

	poolConfig, err := registryPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Opening registry connection pool", "max_conns", poolConfig.MaxConns, "min_conns", poolConfig.MinConns)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("open registry pool: %w", err)
	}

	if err := pingRegistry(ctx, pool, connectTimeout(cfg), logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("Registry database reachable", "host", poolConfig.ConnConfig.Host, "db", poolConfig.ConnConfig.Database)
	return pool, nil
}

// registryPoolConfig parses the URL and applies pool sizing. Sessions are
// tagged with application_name so registry queries are identifiable in
// pg_stat_activity.
func registryPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse registry database URL: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolConfig.MaxConns {
		poolConfig.MinConns = cfg.MinConns
	}
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout(cfg)
	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = registryAppName
	}
	return poolConfig, nil
}

func connectTimeout(cfg config.DatabaseConfig) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return defaultConnectTimeout
}

func pingRegistry(ctx context.Context, db pinger, timeout time.Duration, logger *slog.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		logger.Error("Registry database ping failed", "error", err, "timeout", timeout)
		return fmt.Errorf("ping registry database: %w", err)
	}
	return nil
}
