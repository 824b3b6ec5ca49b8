package db

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/n-r-w/asyncdb"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Registry keeps databases by key. Safe for concurrent use.
// Databases are created outside the registry lock, so a slow connect blocks only callers of the same key.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
}

// registryEntry database under creation or created. ready is closed once create has returned.
type registryEntry struct {
	ready chan struct{}
	db    *Database
	err   error
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
	}
}

// Key builds a registry key from a connection string and a pool configuration.
func Key(dsn string, cfg asyncdb.PoolConfiguration) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", dsn, cfg.ConnectionTimeout, cfg.IdleTimeout, cfg.MaxPoolSize, cfg.MinPoolSize)
}

// Get returns the database stored under key. A database that is still being created is not returned.
func (r *Registry) Get(key string) (*Database, bool) {
	r.mu.Lock()
	e, ok := r.entries[key]
	r.mu.Unlock()

	if !ok {
		return nil, false
	}

	select {
	case <-e.ready:
		return e.db, e.err == nil
	default:
		return nil, false
	}
}

// GetOrCreate returns the database stored under key, creating it with create if absent.
// Concurrent callers of the same key wait for a single create call. A failed create is not stored.
func (r *Registry) GetOrCreate(ctx context.Context, key string,
	create func(ctx context.Context) (*Database, error),
) (*Database, error) {
	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &registryEntry{ready: make(chan struct{})}
		r.entries[key] = e
	}
	r.mu.Unlock()

	if ok {
		if err := e.wait(ctx); err != nil {
			return nil, err
		}
		if e.err != nil {
			return nil, e.err
		}
		return e.db, nil
	}

	d, err := create(ctx)
	if err != nil {
		err = fmt.Errorf("create database %s: %w", key, err)

		r.mu.Lock()
		if r.entries[key] == e {
			delete(r.entries, key)
		}
		r.mu.Unlock()
	}

	e.db, e.err = d, err
	close(e.ready)

	return d, err
}

// Remove closes and removes the database stored under key.
// A database under creation is closed as soon as it is created.
func (r *Registry) Remove(ctx context.Context, key string) error {
	r.mu.Lock()
	e, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return e.close(ctx)
}

// Keys returns sorted keys, including databases under creation.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	keys := lo.Keys(r.entries)
	r.mu.Unlock()

	slices.Sort(keys)
	return keys
}

// CloseAll closes all databases concurrently and empties the registry.
// A failure of one database does not interrupt closing of the others; all errors are returned.
func (r *Registry) CloseAll(ctx context.Context) error {
	r.mu.Lock()
	entries := lo.Values(r.entries)
	r.entries = make(map[string]*registryEntry)
	r.mu.Unlock()

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	for _, e := range entries {
		g.Go(func() error {
			if err := e.close(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (e *registryEntry) wait(ctx context.Context) error {
	select {
	case <-e.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *registryEntry) close(ctx context.Context) error {
	if err := e.wait(ctx); err != nil {
		return err
	}
	if e.db == nil {
		return nil
	}
	return e.db.Close(ctx)
}
