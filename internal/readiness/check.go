package readiness

import "context"

// Check is a single dependency probe.
type Check interface {
	Name() string
	Check(ctx context.Context) error
}

// Pinger is anything that can verify its own connectivity, such as a
// *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type funcCheck struct {
	name string
	fn   func(ctx context.Context) error
}

func (c funcCheck) Name() string                    { return c.name }
func (c funcCheck) Check(ctx context.Context) error { return c.fn(ctx) }

// NewCheck adapts a function to a Check.
func NewCheck(name string, fn func(ctx context.Context) error) Check {
	return funcCheck{name: name, fn: fn}
}

// NewPingCheck reports p as healthy while Ping succeeds.
func NewPingCheck(name string, p Pinger) Check {
	return NewCheck(name, p.Ping)
}
