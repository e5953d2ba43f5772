package onboarding

import (
	"context"
	"time"
)

// serviceKey is a unique key per type parameter T for context storage.
type serviceKey[T any] struct{}

// WithService stores a typed service instance in the context for use by validators.
func WithService[T any](ctx context.Context, svc T) context.Context {
	return context.WithValue(ctx, serviceKey[T]{}, any(svc))
}

// Service retrieves a typed service instance from context.
func Service[T any](ctx context.Context) (T, bool) {
	var zero T
	v := ctx.Value(serviceKey[T]{})
	if v == nil {
		return zero, false
	}
	if tv, ok := v.(T); ok {
		return tv, true
	}
	return zero, false
}

// Clock supplies "now" to age and start-date rules.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock { return ClockFunc(func() time.Time { return t }) }

// WithClock stores the clock used by date rules.
func WithClock(ctx context.Context, c Clock) context.Context { return WithService[Clock](ctx, c) }

// Now returns the current time from the context clock, falling back to the
// wall clock.
func Now(ctx context.Context) time.Time {
	if c, ok := Service[Clock](ctx); ok && c != nil {
		return c.Now()
	}
	return time.Now()
}

// Today is Now truncated to local midnight.
func Today(ctx context.Context) time.Time {
	n := Now(ctx)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}
