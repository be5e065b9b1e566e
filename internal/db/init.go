// Package db opens the PostgreSQL connection, ensures the schema, and
// seeds the default administrator.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    email VARCHAR(100) PRIMARY KEY,
    hashed_password VARCHAR(250) NOT NULL,
    is_federated BOOLEAN NOT NULL DEFAULT FALSE,
    is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMPTZ NOT NULL,
    last_login TIMESTAMPTZ,
    push_token VARCHAR(250),
    device_key VARCHAR(250) NOT NULL
);

CREATE TABLE IF NOT EXISTS google_accounts (
    email VARCHAR(100) PRIMARY KEY,
    secret VARCHAR(250) NOT NULL,
    is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMPTZ NOT NULL,
    last_login TIMESTAMPTZ,
    push_token VARCHAR(250)
);

CREATE TABLE IF NOT EXISTS admins (
    email VARCHAR(100) PRIMARY KEY,
    hashed_password VARCHAR(250) NOT NULL,
    name VARCHAR(40) NOT NULL
);
`

// InitPostgres opens a connection to the database and ensures the schema
// exists. The ping is retried up to attempts times, interval apart; this
// is the only retry loop in the service and covers the store becoming
// reachable during deployment.
func InitPostgres(dsn string, attempts int, interval time.Duration, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if attempts < 1 {
		attempts = 1
	}
	for i := 1; ; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		if i >= attempts {
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		log.Info("database not reachable yet, retrying",
			zap.Int("attempt", i),
			zap.Error(err),
		)
		time.Sleep(interval)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
