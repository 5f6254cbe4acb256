// Package database opens the configured SQL store and classifies driver errors.
package database

import (
	"context"
	"database/sql"
	"errors"
	"net"

	"github.com/georgemunganga/usedbooks-backend/internal/config"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/queries"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

const (
	msgBadCredentials = "Invalid credentials – check your username or password."
	msgBadDatabase    = "Database not found – check your database name."
)

// Open connects to the configured database and pings it once. Failures come
// back as apperr connection errors; there is no retry.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, *queries.Set, error) {
	dialect := queries.Dialect(cfg.Driver)
	q, err := queries.Load(dialect)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(cfg.Driver, DSN(cfg))
	if err != nil {
		return nil, nil, ClassifyConnectError(cfg.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, ClassifyConnectError(cfg.Driver, err)
	}
	return db, q, nil
}

// DSN builds the driver connection string.
func DSN(cfg config.DatabaseConfig) string {
	if cfg.Driver != string(queries.MySQL) {
		return cfg.URL
	}
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	return mc.FormatDSN()
}

// ClassifyConnectError maps a failed connection attempt to an operator message.
func ClassifyConnectError(driver string, err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1045: // ER_ACCESS_DENIED_ERROR
			return apperr.Connection(err, msgBadCredentials)
		case 1049: // ER_BAD_DB_ERROR
			return apperr.Connection(err, msgBadDatabase)
		}
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "28P01", "28000":
			return apperr.Connection(err, msgBadCredentials)
		case "3D000":
			return apperr.Connection(err, msgBadDatabase)
		}
	}
	return apperr.Connection(err, "Error while connecting to %s: %v", driver, err)
}

// IsDuplicateKey reports a unique constraint violation from either driver.
func IsDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
