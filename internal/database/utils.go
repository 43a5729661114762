package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/Etiti27/saas-platform-sub000/config"
)

// GetSystemDSN returns the DSN for the application database. lib/pq forwards
// unknown parameters as run-time settings, so every pooled connection starts
// with the statement and idle-in-transaction timeouts applied.
func GetSystemDSN(cfg *config.DatabaseConfig) string {
	return buildDSN(cfg, cfg.DBName, true)
}

// GetPostgresDSN returns the DSN for the maintenance database, used to create the application database
func GetPostgresDSN(cfg *config.DatabaseConfig) string {
	return buildDSN(cfg, "postgres", false)
}

func buildDSN(cfg *config.DatabaseConfig, dbName string, withTimeouts bool) string {
	query := url.Values{}
	query.Set("sslmode", cfg.SSLMode)
	if withTimeouts {
		if cfg.StatementTimeout > 0 {
			query.Set("statement_timeout", strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10))
		}
		if cfg.IdleInTransactionTimeout > 0 {
			query.Set("idle_in_transaction_session_timeout", strconv.FormatInt(cfg.IdleInTransactionTimeout.Milliseconds(), 10))
		}
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + dbName,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// ConfigurePool applies pool limits from cfg
func ConfigurePool(db *sql.DB, cfg *config.DatabaseConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)
}

// EnsureSystemDatabaseExists creates the application database if it doesn't exist
func EnsureSystemDatabaseExists(ctx context.Context, db *sql.DB, dbName string) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL server: %w", err)
	}

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+quoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("failed to create system database: %w", err)
	}
	return nil
}

// ConnectWithTimeout pings until the server answers or timeout elapses
func ConnectWithTimeout(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database not reachable after %s: %w", timeout, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}
