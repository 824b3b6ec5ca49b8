package asyncdb

import (
	"fmt"
	"time"
)

// TimeoutDefault means "no explicit transaction timeout".
const TimeoutDefault time.Duration = 0

// TransactionDefinition describes how a unit-of-work transaction is opened.
// A nil *TransactionDefinition means the work runs without an explicit transaction.
type TransactionDefinition struct {
	ReadOnly  bool
	Isolation IsolationLevel
	Timeout   time.Duration
}

// TxOption option for NewTransactionDefinition.
type TxOption func(*TransactionDefinition)

// WithReadOnly marks the transaction as read-only.
func WithReadOnly() TxOption {
	return func(d *TransactionDefinition) {
		d.ReadOnly = true
	}
}

// WithIsolation sets the isolation level.
func WithIsolation(level IsolationLevel) TxOption {
	return func(d *TransactionDefinition) {
		d.Isolation = level
	}
}

// WithTimeout sets the transaction timeout. Non-positive values mean TimeoutDefault.
func WithTimeout(timeout time.Duration) TxOption {
	return func(d *TransactionDefinition) {
		if timeout < 0 {
			timeout = TimeoutDefault
		}
		d.Timeout = timeout
	}
}

// NewTransactionDefinition returns a read-write READ UNCOMMITTED definition
// without timeout, modified by opts.
func NewTransactionDefinition(opts ...TxOption) TransactionDefinition {
	d := TransactionDefinition{
		ReadOnly:  false,
		Isolation: IsolationReadUncommitted,
		Timeout:   TimeoutDefault,
	}

	for _, o := range opts {
		o(&d)
	}

	return d
}

// HasTimeout reports whether an explicit timeout is set.
func (d TransactionDefinition) HasTimeout() bool {
	return d.Timeout > TimeoutDefault
}

func (d TransactionDefinition) String() string {
	mode := "READ WRITE"
	if d.ReadOnly {
		mode = "READ ONLY"
	}
	return fmt.Sprintf("%s %s timeout=%s", d.Isolation, mode, d.Timeout)
}
