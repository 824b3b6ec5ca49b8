package pq

import (
	"database/sql"

	"github.com/n-r-w/asyncdb"
)

// Option option for SessionFactory.
type Option func(*SessionFactory)

// WithName sets the database name used in logs.
func WithName(name string) Option {
	return func(f *SessionFactory) {
		f.name = name
	}
}

// WithDB uses an existing *sql.DB. The factory does not close it.
func WithDB(db *sql.DB) Option {
	return func(f *SessionFactory) {
		f.db = db
		f.ownDB = false
	}
}

// WithDriver opens the database with sql.Open(driver, dsn) on Start. Ignored if WithDB is used.
func WithDriver(driver, dsn string) Option {
	return func(f *SessionFactory) {
		f.driver = driver
		f.dsn = dsn
	}
}

// WithPoolConfiguration applies the pool configuration to the *sql.DB on Start.
func WithPoolConfiguration(cfg asyncdb.PoolConfiguration) Option {
	return func(f *SessionFactory) {
		f.poolCfg = &cfg
	}
}

// WithDefaultIsolation sets the isolation level reported by new sessions.
// It must match the server default, READ COMMITTED if not set.
func WithDefaultIsolation(level asyncdb.IsolationLevel) Option {
	return func(f *SessionFactory) {
		f.defaultIsolation = level
	}
}

// WithLogQueries enables query logging.
func WithLogQueries() Option {
	return func(f *SessionFactory) {
		f.logQueries = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger asyncdb.ILogger) Option {
	return func(f *SessionFactory) {
		f.logger = logger
	}
}
