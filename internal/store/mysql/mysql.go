package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
)

//go:embed schema.sql
var Schema string

const (
	maxOpenConns    = 25
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
)

// Open connects to MySQL, verifies the connection and applies the schema.
// Whatever the DSN says, timestamps scan into time.Time in UTC.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	normalized, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, Schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("mysql schema: %w", err)
	}
	return sqlDB, nil
}

func normalizeDSN(dsn string) (string, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	// the embedded schema holds several statements
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}
