package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

type mysqlEngine struct{}

func (mysqlEngine) driverName() string { return "mysql" }

func (mysqlEngine) open(connectionString string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(connectionString)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	return openMySQL(cfg)
}

func (mysqlEngine) databaseName(connectionString string) (string, error) {
	cfg, err := mysql.ParseDSN(connectionString)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	return cfg.DBName, nil
}

func (mysqlEngine) openServer(connectionString string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(connectionString)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.DBName = ""
	return openMySQL(cfg)
}

func openMySQL(cfg *mysql.Config) (*sql.DB, error) {
	// Migration scripts commonly hold several statements.
	cfg.MultiStatements = true
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}

func (mysqlEngine) afterConnect(context.Context, *sql.DB) error { return nil }

func (mysqlEngine) maxOpenConns(configured int) int { return configured }

func (mysqlEngine) connMaxIdleTime(configured time.Duration, _ string) time.Duration {
	return configured
}
