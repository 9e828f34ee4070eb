package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/legal-docify/internal/common"
)

// Dialect selects placeholder syntax and DDL flavor.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// DB is a *sql.DB plus what is needed to close it and speak its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
	pool    *pgxpool.Pool
}

// DialectFor picks postgres for postgres:// URLs and sqlite for everything else.
func DialectFor(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return Postgres
	}
	return SQLite
}

// Open connects to the audit database. Postgres goes through a pgx pool
// wrapped as *sql.DB; anything else is handed to the sqlite driver.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("open audit db: empty dsn")
	}
	dialect := DialectFor(cfg.DSN)
	logger.Info("connecting to audit database", "dialect", string(dialect))

	switch dialect {
	case Postgres:
		pc, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			logger.Error("failed to parse audit dsn", "error", err)
			return nil, err
		}
		if cfg.MaxConns > 0 {
			pc.MaxConns = cfg.MaxConns
		}
		pc.MinConns = cfg.MinConns
		if cfg.MaxConnLifetime > 0 {
			pc.MaxConnLifetime = cfg.MaxConnLifetime
		}
		if cfg.MaxConnIdleTime > 0 {
			pc.MaxConnIdleTime = cfg.MaxConnIdleTime
		}
		pc.ConnConfig.RuntimeParams["application_name"] = "legal-docify"

		dialCtx, cancel := common.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		pool, err := pgxpool.NewWithConfig(dialCtx, pc)
		if err != nil {
			logger.Error("failed to connect to audit database", "error", err)
			return nil, err
		}
		return &DB{DB: stdlib.OpenDBFromPool(pool), Dialect: Postgres, pool: pool}, nil

	default:
		db, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// one writer; also keeps a ":memory:" database on a single connection
		db.SetMaxOpenConns(1)
		return &DB{DB: db, Dialect: SQLite}, nil
	}
}

// Close closes the database connections gracefully
func (d *DB) Close(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("closing audit database")
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			logger.Error("failed to close audit database", "error", err)
		}
	}
	if d.pool != nil {
		d.pool.Close()
	}
}

// HealthCheck pings the database to catch DSN issues early.
func (d *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := common.WithTimeout(ctx, timeout)
	defer cancel()
	return d.PingContext(ctx)
}

// Bind returns the n-th (1-based) placeholder for the dialect.
func (d *DB) Bind(n int) string {
	if d.Dialect == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
