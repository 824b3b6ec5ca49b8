package asyncdb

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolClosed the worker pool no longer accepts tasks.
	ErrPoolClosed = errors.New("worker pool is closed")
	// ErrCancelled the operation was cancelled before it was dispatched.
	ErrCancelled = errors.New("operation cancelled")
	// ErrInvalidConfiguration invalid configuration value.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrNoFactory session factory is not set.
	ErrNoFactory = errors.New("session factory is not set")
	// ErrNotStarted the service was used before Start.
	ErrNotStarted = errors.New("service is not started")
	// ErrNoTransaction commit or rollback without an active transaction.
	ErrNoTransaction = errors.New("no active transaction")
	// ErrTransactionActive begin inside an active transaction.
	ErrTransactionActive = errors.New("transaction is already active")
	// ErrSessionClosed the session was used after Close.
	ErrSessionClosed = errors.New("session is closed")
)

// SubmissionError the worker pool rejected a task. The task never ran.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit task: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// TransactionError failure while opening, committing or configuring a transaction.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// StreamError failure while opening or iterating a cursor.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %s: %v", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// ResourceCleanupError secondary failure while rolling back, restoring session state or closing.
// It is logged and never replaces the primary error.
type ResourceCleanupError struct {
	Op  string
	Err error
}

func (e *ResourceCleanupError) Error() string {
	return fmt.Sprintf("cleanup %s: %v", e.Op, e.Err)
}

func (e *ResourceCleanupError) Unwrap() error {
	return e.Err
}

// PanicError a unit-of-work or a stream panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsSubmissionError checks if the error is a SubmissionError.
func IsSubmissionError(err error) bool {
	var e *SubmissionError
	return errors.As(err, &e)
}

// IsTransactionError checks if the error is a TransactionError.
func IsTransactionError(err error) bool {
	var e *TransactionError
	return errors.As(err, &e)
}

// IsStreamError checks if the error is a StreamError.
func IsStreamError(err error) bool {
	var e *StreamError
	return errors.As(err, &e)
}

// IsPanicError checks if the error is a PanicError.
func IsPanicError(err error) bool {
	var e *PanicError
	return errors.As(err, &e)
}
