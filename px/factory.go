package px

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/n-r-w/asyncdb"
	"github.com/n-r-w/bootstrap"
)

// SessionFactory service for working with PostgreSQL database. Implements IService interface.
// Each session holds one connection acquired from the pool.
type SessionFactory struct {
	name           string
	restartPolicy  []backoff.RetryOption
	dsn            string
	logQueries     bool
	afterStartFunc func(context.Context, *SessionFactory) error

	config  *pgxpool.Config
	poolCfg *asyncdb.PoolConfiguration
	pool    *pgxpool.Pool
	ownPool bool

	logger asyncdb.ILogger

	testHookAfterAcquire func()
}

var (
	_ bootstrap.IService      = (*SessionFactory)(nil)
	_ asyncdb.ISessionFactory = (*SessionFactory)(nil)
)

// New creates a new instance of SessionFactory.
func New(opt ...Option) *SessionFactory {
	f := &SessionFactory{}

	for _, o := range opt {
		o(f)
	}

	if f.name == "" {
		f.name = "pxdb"
	}
	f.logger = asyncdb.LoggerOrNop(f.logger)

	return f
}

// Start starts the service.
func (f *SessionFactory) Start(ctx context.Context) (err error) {
	f.logger.Debugf(ctx, "starting pgdb for database %s", f.name)

	defer func() {
		if err == nil && f.afterStartFunc != nil {
			err = f.afterStartFunc(ctx, f)
			if err != nil {
				err = fmt.Errorf("failed to run after start function: %w", err)
			}
		}
	}()

	if f.pool != nil {
		return nil
	}

	cfg := f.config
	if cfg == nil {
		if cfg, err = pgxpool.ParseConfig(f.dsn); err != nil {
			return fmt.Errorf("failed to parse dsn for database %s: %w", f.name, err)
		}
	}
	if f.poolCfg != nil {
		applyPoolConfiguration(cfg, *f.poolCfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for database %s: %w", f.name, err)
	}

	f.logger.Debugf(ctx, "checking connection to database %s", f.name)

	pingCtx := ctx
	if f.poolCfg != nil {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, f.poolCfg.ConnectionTimeout)
		defer cancel()
	}

	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to connect to database %s: %w", f.name, err)
	}

	f.pool = pool
	f.ownPool = true

	f.logger.Debugf(ctx, "connected to database %s", f.name)

	return nil
}

// Stop stops the service. A pool passed with WithPool is not closed.
func (f *SessionFactory) Stop(_ context.Context) error {
	if f.pool != nil && f.ownPool {
		f.pool.Close()
		f.pool = nil
	}

	return nil
}

// Info returns service information.
func (f *SessionFactory) Info() bootstrap.Info {
	return bootstrap.Info{
		Name:          f.name,
		RestartPolicy: f.restartPolicy,
	}
}

// Pool returns the connection pool, nil before Start.
func (f *SessionFactory) Pool() *pgxpool.Pool {
	return f.pool
}

// OpenSession opens a read-write session.
func (f *SessionFactory) OpenSession(ctx context.Context) (asyncdb.ISession, error) {
	return f.open(ctx, false)
}

// OpenReadSession opens a session whose implicit transactions are read-only, with manual flushing.
func (f *SessionFactory) OpenReadSession(ctx context.Context) (asyncdb.ISession, error) {
	return f.open(ctx, true)
}

func (f *SessionFactory) open(ctx context.Context, readOnly bool) (*Session, error) {
	if f.pool == nil {
		return nil, fmt.Errorf("database %s: %w", f.name, asyncdb.ErrNotStarted)
	}

	con, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	if f.testHookAfterAcquire != nil {
		f.testHookAfterAcquire()
	}

	return newSession(f, con, readOnly), nil
}

// applyPoolConfiguration maps the pool configuration onto pgxpool limits.
func applyPoolConfiguration(cfg *pgxpool.Config, pc asyncdb.PoolConfiguration) {
	cfg.MaxConns = int32(pc.MaxPoolSize) //nolint:gosec // validated by PoolConfiguration.Validate
	cfg.MinConns = int32(pc.MinPoolSize) //nolint:gosec // validated by PoolConfiguration.Validate
	cfg.MaxConnIdleTime = pc.IdleTimeout
	cfg.ConnConfig.ConnectTimeout = pc.ConnectionTimeout
}

// poolConfiguration reads the limits of a pgxpool configuration.
func poolConfiguration(cfg *pgxpool.Config) asyncdb.PoolConfiguration {
	return asyncdb.PoolConfiguration{
		ConnectionTimeout: cfg.ConnConfig.ConnectTimeout,
		IdleTimeout:       cfg.MaxConnIdleTime,
		MaxPoolSize:       int(cfg.MaxConns),
		MinPoolSize:       int(cfg.MinConns),
	}
}

// PoolConfiguration returns the effective pool configuration, taken from the pool if it is started.
// Unset limits of the pool are reported as defaults.
func (f *SessionFactory) PoolConfiguration() asyncdb.PoolConfiguration {
	switch {
	case f.pool != nil:
		return poolConfiguration(f.pool.Config()).WithDefaults()
	case f.poolCfg != nil:
		return *f.poolCfg
	default:
		return asyncdb.DefaultPoolConfiguration()
	}
}

// ApplyPoolConfiguration sets the configuration used when the pool is created on Start.
// A pool that already exists keeps its limits.
func (f *SessionFactory) ApplyPoolConfiguration(cfg asyncdb.PoolConfiguration) {
	if f.pool != nil {
		if cfg != f.PoolConfiguration() {
			f.logger.Warningf(context.Background(), "database %s: pool configuration ignored for an existing pool", f.name)
		}
		return
	}
	f.poolCfg = &cfg
}
