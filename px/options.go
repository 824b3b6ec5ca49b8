package px

import (
	"context"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/n-r-w/asyncdb"
)

// Option option for SessionFactory.
type Option func(*SessionFactory)

// WithPool sets connection pool when creating a SessionFactory instance.
// The pool is not closed by Stop.
func WithPool(pool *pgxpool.Pool) Option {
	return func(f *SessionFactory) {
		f.pool = pool
		f.ownPool = false
	}
}

// WithName sets service name.
func WithName(name string) Option {
	return func(f *SessionFactory) {
		f.name = name
	}
}

// WithDSN sets DSN for database connection.
// If WithConfig is used, this option is ignored.
func WithDSN(dsn string) Option {
	return func(f *SessionFactory) {
		f.dsn = dsn
	}
}

// WithRestartPolicy sets service restart policy on error.
// Only works when using https://github.com/n-r-w/bootstrap
func WithRestartPolicy(policy ...backoff.RetryOption) Option {
	return func(f *SessionFactory) {
		f.restartPolicy = policy
	}
}

// WithConfig sets connection pool configuration.
func WithConfig(cfg *pgxpool.Config) Option {
	return func(f *SessionFactory) {
		f.config = cfg
	}
}

// WithPoolConfiguration applies pool size, idle and connection timeouts on top of the DSN or WithConfig settings.
func WithPoolConfiguration(cfg asyncdb.PoolConfiguration) Option {
	return func(f *SessionFactory) {
		f.poolCfg = &cfg
	}
}

// WithLogQueries enables query logging.
func WithLogQueries() Option {
	return func(f *SessionFactory) {
		f.logQueries = true
	}
}

// WithAfterStartFunc sets a function that will be called after successful service start.
func WithAfterStartFunc(fn func(context.Context, *SessionFactory) error) Option {
	return func(f *SessionFactory) {
		f.afterStartFunc = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger asyncdb.ILogger) Option {
	return func(f *SessionFactory) {
		f.logger = logger
	}
}
