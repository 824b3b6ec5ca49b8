// Package telemetry wraps a session factory so that every database call is traced and measured.
package telemetry

import (
	"context"
	"time"

	"github.com/n-r-w/asyncdb"
)

//go:generate mockgen -source service.go -destination service_mock.go -package telemetry

// Attribute  span attribute.
type Attribute struct {
	Key   string
	Value any
}

// ISpan interface for span.
type ISpan interface {
	AddAttributes(attributes []Attribute)
	End()
}

// ITelemetry interface for telemetry.
type ITelemetry interface {
	// StartSpan starts new span. If returns nil, span is not created.
	StartSpan(ctx context.Context, name string) (context.Context, ISpan)
	// ObserveRequestDuration records request duration.
	ObserveRequestDuration(ctx context.Context, duration time.Duration)
	// ObserveRequest records request count.
	ObserveRequest(ctx context.Context)
	// ObserveRequestError records request error.
	ObserveRequestError(ctx context.Context, err error)
}

// Service wrapper for working with DB and sending telemetry.
type Service struct {
	parent    asyncdb.ISessionFactory
	telemetry ITelemetry
}

var _ asyncdb.ISessionFactory = (*Service)(nil)

// New creates a new Service instance.
func New(parent asyncdb.ISessionFactory, telemetry ITelemetry) *Service {
	return &Service{
		parent:    parent,
		telemetry: telemetry,
	}
}

// Start starts the parent factory if it can be started.
func (s *Service) Start(ctx context.Context) error {
	if starter, ok := s.parent.(interface{ Start(context.Context) error }); ok {
		return starter.Start(ctx)
	}
	return nil
}

// Stop stops the parent factory if it can be stopped.
func (s *Service) Stop(ctx context.Context) error {
	if stopper, ok := s.parent.(interface{ Stop(context.Context) error }); ok {
		return stopper.Stop(ctx)
	}
	return nil
}

// OpenSession opens a read-write session with telemetry.
func (s *Service) OpenSession(ctx context.Context) (asyncdb.ISession, error) {
	return s.open(ctx, "open session", s.parent.OpenSession)
}

// OpenReadSession opens a read session with telemetry.
func (s *Service) OpenReadSession(ctx context.Context) (asyncdb.ISession, error) {
	return s.open(ctx, "open read session", s.parent.OpenReadSession)
}

func (s *Service) open(ctx context.Context, command string,
	open func(ctx context.Context) (asyncdb.ISession, error),
) (asyncdb.ISession, error) {
	var session asyncdb.ISession

	err := s.telemetryHelper(ctx, command, "", nil, func(ctx context.Context) error {
		var err error
		session, err = open(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return newWrapper(session, s.telemetryHelper), nil
}

func (s *Service) telemetryHelper(ctx context.Context, command, details string, arguments []any,
	f func(ctx context.Context) error,
) error {
	ctxSpan, span := s.telemetry.StartSpan(ctx, "asyncdb")
	if span != nil {
		ctx = ctxSpan
		defer span.End()

		attributes := make([]Attribute, 0, 3) //nolint:mnd // command, arguments, details
		attributes = append(attributes,
			Attribute{"command", command},
			Attribute{"query.arg.", arguments})
		if details != "" {
			attributes = append(attributes, Attribute{"details", details})
		}
		span.AddAttributes(attributes)
	}

	startTime := time.Now()

	err := f(ctx)

	s.telemetry.ObserveRequestDuration(ctx, time.Since(startTime))

	s.telemetry.ObserveRequest(ctx)
	if err != nil {
		s.telemetry.ObserveRequestError(ctx, err)
	}

	return err
}
