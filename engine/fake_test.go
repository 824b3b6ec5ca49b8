package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/n-r-w/asyncdb"
)

var errInjected = errors.New("injected")

// fakeSession in-memory ISession that tracks connection state and records calls.
type fakeSession struct {
	mu sync.Mutex

	isolation asyncdb.IsolationLevel
	readOnly  bool
	flushMode asyncdb.FlushMode
	inTx      bool
	connected bool
	timeout   time.Duration

	// fail makes the named operation return errInjected.
	fail map[string]bool

	rows      []any
	failAtRow int // cursor fails after this many rows, -1 disables
	lastQuery asyncdb.Query
	cursor    *fakeCursor

	calls []string
	// observed during the unit of work
	seenIsolation asyncdb.IsolationLevel
	seenReadOnly  bool
	seenFlushMode asyncdb.FlushMode
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		isolation: asyncdb.IsolationReadCommitted,
		flushMode: asyncdb.FlushAuto,
		connected: true,
		fail:      map[string]bool{},
		failAtRow: -1,
	}
}

func (f *fakeSession) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, op)
	if f.fail[op] {
		return fmt.Errorf("%s: %w", op, errInjected)
	}
	return nil
}

func (f *fakeSession) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeSession) snapshot() {
	f.seenIsolation = f.isolation
	f.seenReadOnly = f.readOnly
	f.seenFlushMode = f.flushMode
}

func (f *fakeSession) Begin(context.Context) error {
	if err := f.record("Begin"); err != nil {
		return err
	}
	f.inTx = true
	return nil
}

func (f *fakeSession) Commit(context.Context) error {
	if err := f.record("Commit"); err != nil {
		return err
	}
	f.inTx = false
	return nil
}

func (f *fakeSession) Rollback(context.Context) error {
	f.inTx = false
	return f.record("Rollback")
}

func (f *fakeSession) InTransaction() bool {
	return f.inTx
}

func (f *fakeSession) SetTimeout(timeout time.Duration) {
	_ = f.record("SetTimeout")
	f.timeout = timeout
}

func (f *fakeSession) Isolation(context.Context) (asyncdb.IsolationLevel, error) {
	if err := f.record("Isolation"); err != nil {
		return asyncdb.IsolationDefault, err
	}
	return f.isolation, nil
}

func (f *fakeSession) SetIsolation(_ context.Context, level asyncdb.IsolationLevel) error {
	if err := f.record("SetIsolation"); err != nil {
		return err
	}
	f.isolation = level
	return nil
}

func (f *fakeSession) SetReadOnly(_ context.Context, readOnly bool) error {
	if err := f.record("SetReadOnly"); err != nil {
		return err
	}
	f.readOnly = readOnly
	return nil
}

func (f *fakeSession) IsReadOnly(context.Context) (bool, error) {
	if err := f.record("IsReadOnly"); err != nil {
		return false, err
	}
	return f.readOnly, nil
}

func (f *fakeSession) IsConnected() bool {
	return f.connected
}

func (f *fakeSession) FlushMode() asyncdb.FlushMode {
	return f.flushMode
}

func (f *fakeSession) SetFlushMode(mode asyncdb.FlushMode) {
	_ = f.record("SetFlushMode")
	f.flushMode = mode
}

func (f *fakeSession) Exec(context.Context, string, ...any) (int64, error) {
	return 1, f.record("Exec")
}

func (f *fakeSession) Queue(context.Context, string, ...any) error {
	return f.record("Queue")
}

func (f *fakeSession) Flush(context.Context) error {
	return f.record("Flush")
}

func (f *fakeSession) Get(context.Context, any, string, ...any) error {
	return f.record("Get")
}

func (f *fakeSession) Select(context.Context, any, string, ...any) error {
	return f.record("Select")
}

func (f *fakeSession) ExecuteQuery(_ context.Context, q asyncdb.Query) (asyncdb.ICursor, error) {
	if err := f.record("ExecuteQuery"); err != nil {
		return nil, err
	}
	f.lastQuery = q
	f.snapshot()
	f.cursor = &fakeCursor{session: f, rows: f.rows, failAt: f.failAtRow, pos: -1}
	return f.cursor, nil
}

func (f *fakeSession) Close(context.Context) error {
	return f.record("Close")
}

// fakeCursor iterates over fakeSession.rows.
type fakeCursor struct {
	session *fakeSession
	rows    []any
	failAt  int
	pos     int
	err     error
}

func (c *fakeCursor) Next(context.Context) bool {
	if c.err != nil {
		return false
	}
	if c.failAt >= 0 && c.pos+1 == c.failAt {
		c.err = errInjected
		return false
	}
	c.pos++
	return c.pos < len(c.rows)
}

func (c *fakeCursor) Scan(dst any) error {
	if err := c.session.record("Scan"); err != nil {
		return err
	}
	reflect.ValueOf(dst).Elem().Set(reflect.ValueOf(c.rows[c.pos]))
	return nil
}

func (c *fakeCursor) Err() error {
	return c.err
}

func (c *fakeCursor) Close(context.Context) error {
	return c.session.record("CursorClose")
}

// fakeFactory returns the same session every time.
type fakeFactory struct {
	session *fakeSession
	err     error
}

func (f *fakeFactory) OpenSession(context.Context) (asyncdb.ISession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeFactory) OpenReadSession(ctx context.Context) (asyncdb.ISession, error) {
	return f.OpenSession(ctx)
}

// collectSink records everything pushed by Stream.
type collectSink[T any] struct {
	items     []T
	completed int
	errs      []error
	refuseAt  int // Next fails on this item index, -1 disables
}

func newCollectSink[T any]() *collectSink[T] {
	return &collectSink[T]{refuseAt: -1}
}

func (s *collectSink[T]) Next(_ context.Context, item T) error {
	if s.refuseAt >= 0 && len(s.items) == s.refuseAt {
		return asyncdb.ErrCancelled
	}
	s.items = append(s.items, item)
	return nil
}

func (s *collectSink[T]) Complete() {
	s.completed++
}

func (s *collectSink[T]) Error(err error) {
	s.errs = append(s.errs, err)
}
