package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/catcommerce/catcommerce-golang/internal/config"
)

// Open creates and configures the connection pool. The pool is the only
// process-wide database handle: constructed here, injected everywhere else,
// closed by the entry point.
func Open(cfg config.DB) (*sql.DB, error) {
	dsn, err := normalizeDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// normalizeDSN forces clientFoundRows on whatever DSN is configured. The
// driver otherwise reports CHANGED rows from an UPDATE, so an idempotent
// update (same values, same timestamp second) would count zero and the
// repositories would misread an existing row as missing.
func normalizeDSN(dsn string) (string, error) {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	c.ClientFoundRows = true
	return c.FormatDSN(), nil
}
