package pq

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/n-r-w/asyncdb"
)

// SessionFactory opens database/sql sessions. Each session holds one *sql.Conn.
type SessionFactory struct {
	name             string
	db               *sql.DB
	driver           string
	dsn              string
	poolCfg          *asyncdb.PoolConfiguration
	defaultIsolation asyncdb.IsolationLevel
	logQueries       bool
	logger           asyncdb.ILogger
	ownDB            bool
}

var _ asyncdb.ISessionFactory = (*SessionFactory)(nil)

// New creates a factory. Either WithDB or WithDriver must be used.
func New(opt ...Option) *SessionFactory {
	f := &SessionFactory{
		defaultIsolation: asyncdb.IsolationReadCommitted,
	}

	for _, o := range opt {
		o(f)
	}

	if f.name == "" {
		f.name = "pq"
	}
	f.logger = asyncdb.LoggerOrNop(f.logger)

	return f
}

// Start opens the database if needed, applies the pool configuration and checks the connection.
func (f *SessionFactory) Start(ctx context.Context) error {
	f.logger.Debugf(ctx, "starting database/sql factory %s", f.name)

	if f.db == nil {
		if f.driver == "" {
			return fmt.Errorf("database %s: %w: driver or *sql.DB must be set", f.name, asyncdb.ErrInvalidConfiguration)
		}

		db, err := sql.Open(f.driver, f.dsn)
		if err != nil {
			return fmt.Errorf("failed to open database %s: %w", f.name, err)
		}
		f.db = db
		f.ownDB = true
	}

	if f.poolCfg != nil {
		applyPoolConfiguration(f.db, *f.poolCfg)
	}

	pingCtx := ctx
	if f.poolCfg != nil {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, f.poolCfg.ConnectionTimeout)
		defer cancel()
	}

	if err := f.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to connect to database %s: %w", f.name, err)
	}

	f.logger.Debugf(ctx, "connected to database %s", f.name)

	return nil
}

// Stop closes the database if it was opened by the factory.
func (f *SessionFactory) Stop(_ context.Context) error {
	if f.db != nil && f.ownDB {
		return f.db.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB.
func (f *SessionFactory) DB() *sql.DB {
	return f.db
}

// OpenSession opens a read-write session.
func (f *SessionFactory) OpenSession(ctx context.Context) (asyncdb.ISession, error) {
	return f.open(ctx, false)
}

// OpenReadSession opens a session in read-only mode with manual flushing.
func (f *SessionFactory) OpenReadSession(ctx context.Context) (asyncdb.ISession, error) {
	return f.open(ctx, true)
}

func (f *SessionFactory) open(ctx context.Context, readOnly bool) (*Session, error) {
	if f.db == nil {
		return nil, fmt.Errorf("database %s: %w", f.name, asyncdb.ErrNotStarted)
	}

	conn, err := f.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	return newSession(f, conn, readOnly), nil
}

// PoolConfiguration returns the configuration applied to the *sql.DB on Start.
func (f *SessionFactory) PoolConfiguration() asyncdb.PoolConfiguration {
	if f.poolCfg != nil {
		return *f.poolCfg
	}
	return asyncdb.DefaultPoolConfiguration()
}

// ApplyPoolConfiguration sets the configuration of the *sql.DB. It takes effect immediately if the factory is started.
func (f *SessionFactory) ApplyPoolConfiguration(cfg asyncdb.PoolConfiguration) {
	f.poolCfg = &cfg
	if f.db != nil {
		applyPoolConfiguration(f.db, cfg)
	}
}

// applyPoolConfiguration maps the pool configuration onto *sql.DB limits.
func applyPoolConfiguration(db *sql.DB, cfg asyncdb.PoolConfiguration) {
	db.SetMaxOpenConns(cfg.MaxPoolSize)
	db.SetMaxIdleConns(cfg.MinPoolSize)
	db.SetConnMaxIdleTime(cfg.IdleTimeout)
}
