// Package postgres implements the repository interfaces on PostgreSQL. GORM
// handles the ORM mapping; a raw pgx pool sits alongside it for health checks
// and pool statistics.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openkyc/kyc/internal/config"
	"github.com/openkyc/kyc/pkg/logger"
)

// DBConnection manages the PostgreSQL connection pool lifecycle.
type DBConnection struct {
	pool   *pgxpool.Pool
	gormDB *gorm.DB
	config *config.DatabaseConfig
	logger logger.Logger
}

// NewDBConnection opens the pgx pool and the GORM session against the same
// database, then verifies connectivity.
func NewDBConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*DBConnection, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is nil")
	}
	log = log.WithComponent("postgres")

	log.Info(ctx, "initializing PostgreSQL connection pool", logger.Fields{
		"host":      cfg.Host,
		"port":      cfg.Port,
		"database":  cfg.Database,
		"max_conns": cfg.MaxConns,
	})

	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleTime) * time.Second

	connectCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ConnTimeout)*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open gorm session: %w", err)
	}

	conn := &DBConnection{
		pool:   pool,
		gormDB: gormDB,
		config: cfg,
		logger: log,
	}
	if err := conn.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info(ctx, "PostgreSQL connection pool ready", logger.Fields{
		"total_conns": pool.Stat().TotalConns(),
	})
	return conn, nil
}

// DB returns the GORM session used by the repositories.
func (db *DBConnection) DB() *gorm.DB {
	return db.gormDB
}

// Pool returns the raw pgx pool.
func (db *DBConnection) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping verifies database connectivity.
func (db *DBConnection) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := db.pool.Ping(pingCtx); err != nil {
		db.logger.Error(ctx, "database ping failed", err)
		return fmt.Errorf("database ping: %w", err)
	}
	if latency := time.Since(start); latency > 100*time.Millisecond {
		db.logger.Warn(ctx, "high database latency", logger.Fields{
			"latency_ms": latency.Milliseconds(),
		})
	}
	return nil
}

// HealthCheck reports pool statistics for the health endpoint.
func (db *DBConnection) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	if err := db.Ping(ctx); err != nil {
		return nil, err
	}

	stats := db.pool.Stat()
	return map[string]interface{}{
		"status":               "healthy",
		"total_connections":    stats.TotalConns(),
		"idle_connections":     stats.IdleConns(),
		"acquired_connections": stats.AcquiredConns(),
		"max_connections":      db.config.MaxConns,
	}, nil
}

// Migrate creates or updates the schema for every table the service owns.
func (db *DBConnection) Migrate() error {
	return AutoMigrate(db.gormDB)
}

// AutoMigrate runs the schema migration on any GORM session. Split out so the
// sqlite-backed tests share the exact schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customerDBM{},
		&archivedCustomerDBM{},
		&alertDBM{},
		&transactionDBM{},
		&userDBM{},
		&auditLogDBM{},
	)
}

// Close shuts down both connections.
func (db *DBConnection) Close() {
	db.pool.Close()
	if sqlDB, err := db.gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	db.logger.Info(context.Background(), "PostgreSQL connections closed")
}
