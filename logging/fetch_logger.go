package logging

// FetchLogger decorates a Logger with sticky contextual attributes, so a
// controller or invocation scope can be attached once and carried on every
// entry. It is cheap to copy via the With* methods; the zero value is not
// usable, construct with NewFetchLogger.
type FetchLogger struct {
	inner Logger
	attrs []any
}

// NewFetchLogger wraps inner; a nil inner falls back to NoOpLogger.
func NewFetchLogger(inner Logger) *FetchLogger {
	if inner == nil {
		inner = NoOpLogger{}
	}
	return &FetchLogger{inner: inner}
}

// WithComponent returns a copy tagged with a logical component name
// (controller, schedule, worker).
func (l *FetchLogger) WithComponent(component string) *FetchLogger {
	return l.with("component", component)
}

// WithInvocation returns a copy tagged with an invocation identifier.
func (l *FetchLogger) WithInvocation(id string) *FetchLogger {
	return l.with("invocation_id", id)
}

func (l *FetchLogger) with(key string, value any) *FetchLogger {
	attrs := make([]any, 0, len(l.attrs)+2)
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, key, value)
	return &FetchLogger{inner: l.inner, attrs: attrs}
}

// Debug logs at debug level with the sticky attributes appended.
func (l *FetchLogger) Debug(msg string, args ...any) {
	l.inner.Debug(msg, l.merge(args)...)
}

// Info logs at info level with the sticky attributes appended.
func (l *FetchLogger) Info(msg string, args ...any) {
	l.inner.Info(msg, l.merge(args)...)
}

// Warn logs at warn level with the sticky attributes appended.
func (l *FetchLogger) Warn(msg string, args ...any) {
	l.inner.Warn(msg, l.merge(args)...)
}

// Error logs at error level with the sticky attributes appended.
func (l *FetchLogger) Error(msg string, args ...any) {
	l.inner.Error(msg, l.merge(args)...)
}

func (l *FetchLogger) merge(args []any) []any {
	if len(l.attrs) == 0 {
		return args
	}
	merged := make([]any, 0, len(args)+len(l.attrs))
	merged = append(merged, args...)
	merged = append(merged, l.attrs...)
	return merged
}
