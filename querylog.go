package asyncdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// QueryLogger logs executed statements with latency and the trace id of the current span.
// The zero value executes statements without logging.
type QueryLogger struct {
	database string
	logger   ILogger
	enabled  bool
}

// NewQueryLogger creates a QueryLogger. Statements are logged only if enabled is true.
func NewQueryLogger(database string, logger ILogger, enabled bool) QueryLogger {
	return QueryLogger{
		database: database,
		logger:   LoggerOrNop(logger),
		enabled:  enabled,
	}
}

// Enabled reports whether statements are logged.
func (l QueryLogger) Enabled() bool {
	return l.enabled
}

// Run executes f and logs the statement: failures at error level, everything else at debug level.
// Returns the error of f.
func (l QueryLogger) Run(ctx context.Context, command, query string, args []any, f func() error) error {
	if !l.enabled {
		return f()
	}

	start := time.Now()

	err := f()

	var sb strings.Builder
	fmt.Fprintf(&sb, "dbquery database=%s command=%s latency=%s args=%v", l.database, command, time.Since(start), args)

	if query != "" {
		fmt.Fprintf(&sb, " query=%s", TruncSQL(query))
	}

	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if spanContext.TraceID().IsValid() {
		fmt.Fprintf(&sb, " trace_id=%s", spanContext.TraceID().String())
	}

	if err != nil {
		l.logger.Errorf(ctx, "%s error=%v", sb.String(), err)
	} else {
		l.logger.Debugf(ctx, "%s", sb.String())
	}

	return err
}
