package asyncdb

import (
	"fmt"
	"time"
)

// Pool defaults.
const (
	DefaultConnectionTimeout = 20 * time.Second
	DefaultIdleTimeout       = 30 * time.Second
	DefaultMaxPoolSize       = 5
	DefaultMinPoolSize       = 5
)

// PoolConfiguration connection pool settings.
// MaxPoolSize also bounds the number of concurrently executing operations.
type PoolConfiguration struct {
	ConnectionTimeout time.Duration
	IdleTimeout       time.Duration
	MaxPoolSize       int
	MinPoolSize       int
}

// DefaultPoolConfiguration returns the process-wide default configuration.
func DefaultPoolConfiguration() PoolConfiguration {
	return PoolConfiguration{
		ConnectionTimeout: DefaultConnectionTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		MaxPoolSize:       DefaultMaxPoolSize,
		MinPoolSize:       DefaultMinPoolSize,
	}
}

// Validate checks that all values are positive and MinPoolSize <= MaxPoolSize.
func (c PoolConfiguration) Validate() error {
	switch {
	case c.ConnectionTimeout <= 0:
		return fmt.Errorf("%w: connection timeout must be positive", ErrInvalidConfiguration)
	case c.IdleTimeout <= 0:
		return fmt.Errorf("%w: idle timeout must be positive", ErrInvalidConfiguration)
	case c.MaxPoolSize <= 0:
		return fmt.Errorf("%w: max pool size must be positive", ErrInvalidConfiguration)
	case c.MinPoolSize <= 0:
		return fmt.Errorf("%w: min pool size must be positive", ErrInvalidConfiguration)
	case c.MinPoolSize > c.MaxPoolSize:
		return fmt.Errorf("%w: min pool size %d exceeds max pool size %d",
			ErrInvalidConfiguration, c.MinPoolSize, c.MaxPoolSize)
	}
	return nil
}

// WithDefaults returns a copy with non-positive values replaced by defaults.
// MinPoolSize is capped by MaxPoolSize.
func (c PoolConfiguration) WithDefaults() PoolConfiguration {
	def := DefaultPoolConfiguration()

	if c.ConnectionTimeout <= 0 {
		c.ConnectionTimeout = def.ConnectionTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = def.IdleTimeout
	}
	if c.MaxPoolSize <= 0 {
		c.MaxPoolSize = def.MaxPoolSize
	}
	if c.MinPoolSize <= 0 {
		c.MinPoolSize = def.MinPoolSize
	}
	c.MinPoolSize = min(c.MinPoolSize, c.MaxPoolSize)

	return c
}
