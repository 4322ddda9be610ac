package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/stormiq/signals-api/internal/logger"
)

// Pool sizing for a single API instance; the signal read path is the
// only hot query and it is short-lived.
const (
	dbMaxOpenConns    = 20
	dbMaxIdleConns    = 10
	dbConnMaxIdleTime = 5 * time.Minute
	dbConnMaxLifetime = time.Hour
	dbStartupTimeout  = 3 * time.Second
)

// NewDB opens a pgx-backed pool and verifies connectivity so a bad
// DSN fails startup instead of the first request.
func NewDB(dsn string, debug bool) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DB DSN")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxIdleTime(dbConnMaxIdleTime)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbStartupTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if debug {
		var user, name, ver string
		_ = db.QueryRowContext(ctx, "SELECT current_user").Scan(&user)
		_ = db.QueryRowContext(ctx, "SELECT current_database()").Scan(&name)
		_ = db.QueryRowContext(ctx, "SHOW server_version").Scan(&ver)
		logger.Logger.Debug().
			Str("user", user).
			Str("db", name).
			Str("version", ver).
			Msg("db connected")
	}

	return db, nil
}
