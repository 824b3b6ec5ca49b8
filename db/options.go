package db

import "github.com/n-r-w/asyncdb"

// Option option for Database.
type Option func(*Database)

// WithName sets database name, used in logs and as registry key.
func WithName(name string) Option {
	return func(d *Database) {
		d.name = name
	}
}

// WithPoolConfiguration sets pool configuration. MaxPoolSize defines the number of workers.
// The configuration is also applied to the connection pool of an IPoolConfigurable factory.
func WithPoolConfiguration(cfg asyncdb.PoolConfiguration) Option {
	return func(d *Database) {
		d.poolCfg = cfg
		d.poolCfgSet = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger asyncdb.ILogger) Option {
	return func(d *Database) {
		d.logger = logger
	}
}
