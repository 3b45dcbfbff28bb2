package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// postgresMaintenanceDB is the database used for CREATE/DROP DATABASE.
const postgresMaintenanceDB = "postgres"

type postgresEngine struct{}

func (postgresEngine) driverName() string { return "pgx" }

func (postgresEngine) open(connectionString string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres connection string: %w", err)
	}
	return stdlib.OpenDB(*cfg), nil
}

func (postgresEngine) databaseName(connectionString string) (string, error) {
	cfg, err := pgx.ParseConfig(connectionString)
	if err != nil {
		return "", fmt.Errorf("parse postgres connection string: %w", err)
	}
	return cfg.Database, nil
}

func (postgresEngine) openServer(connectionString string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres connection string: %w", err)
	}
	cfg.Database = postgresMaintenanceDB
	return stdlib.OpenDB(*cfg), nil
}

func (postgresEngine) afterConnect(context.Context, *sql.DB) error { return nil }

func (postgresEngine) maxOpenConns(configured int) int { return configured }

func (postgresEngine) connMaxIdleTime(configured time.Duration, _ string) time.Duration {
	return configured
}
