// Package db is the entry point of asyncdb: a Database owns one worker pool and one session factory
// and hands out builders for transactional executions and streaming queries.
package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/n-r-w/asyncdb"
	"github.com/n-r-w/asyncdb/bridge"
)

// IStarter is implemented by factories that must be started before use.
type IStarter interface {
	Start(ctx context.Context) error
}

// IStopper is implemented by factories that must be stopped on close.
type IStopper interface {
	Stop(ctx context.Context) error
}

// IPoolConfigurable is implemented by factories whose connection pool is sized by PoolConfiguration.
type IPoolConfigurable interface {
	PoolConfiguration() asyncdb.PoolConfiguration
	ApplyPoolConfiguration(cfg asyncdb.PoolConfiguration)
}

// Database runs units of work and streaming queries on a bounded worker pool.
// The number of workers equals PoolConfiguration.MaxPoolSize.
type Database struct {
	name       string
	poolCfg    asyncdb.PoolConfiguration
	poolCfgSet bool
	factory asyncdb.ISessionFactory
	pool    *bridge.WorkerPool
	logger  asyncdb.ILogger

	closeOnce sync.Once
	closeErr  error
}

// New validates the configuration, starts the factory if it implements IStarter and starts the worker pool.
// If the factory implements IPoolConfigurable, the connection pool gets the same configuration as the worker pool;
// without WithPoolConfiguration the configuration is taken from the factory.
func New(ctx context.Context, factory asyncdb.ISessionFactory, opts ...Option) (*Database, error) {
	if factory == nil {
		return nil, asyncdb.ErrNoFactory
	}

	d := &Database{
		name:    "asyncdb",
		poolCfg: asyncdb.DefaultPoolConfiguration(),
		factory: factory,
	}

	for _, o := range opts {
		o(d)
	}
	d.logger = asyncdb.LoggerOrNop(d.logger)

	configurable, isConfigurable := factory.(IPoolConfigurable)
	if isConfigurable && !d.poolCfgSet {
		d.poolCfg = configurable.PoolConfiguration()
	}

	if err := d.poolCfg.Validate(); err != nil {
		return nil, fmt.Errorf("database %s: %w", d.name, err)
	}

	if isConfigurable {
		configurable.ApplyPoolConfiguration(d.poolCfg)
	}

	if starter, ok := factory.(IStarter); ok {
		if err := starter.Start(ctx); err != nil {
			return nil, fmt.Errorf("start session factory for database %s: %w", d.name, err)
		}
	}

	pool, err := bridge.NewWorkerPool(d.poolCfg.MaxPoolSize, bridge.WithPoolLogger(d.logger))
	if err != nil {
		if stopper, ok := factory.(IStopper); ok {
			err = errors.Join(err, stopper.Stop(ctx))
		}
		return nil, err
	}
	d.pool = pool

	d.logger.Debugf(ctx, "database %s started with %d workers", d.name, d.poolCfg.MaxPoolSize)

	return d, nil
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// PoolConfiguration returns the pool configuration.
func (d *Database) PoolConfiguration() asyncdb.PoolConfiguration {
	return d.poolCfg
}

// Factory returns the session factory.
func (d *Database) Factory() asyncdb.ISessionFactory {
	return d.factory
}

// Pool returns the worker pool.
func (d *Database) Pool() *bridge.WorkerPool {
	return d.pool
}

// Close waits for submitted operations, then stops the factory if it implements IStopper.
// Operations submitted after Close fail with *asyncdb.SubmissionError.
func (d *Database) Close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		d.logger.Debugf(ctx, "closing database %s", d.name)

		err := d.pool.Close(ctx)
		if stopper, ok := d.factory.(IStopper); ok {
			err = errors.Join(err, stopper.Stop(ctx))
		}
		d.closeErr = err
	})

	return d.closeErr
}
