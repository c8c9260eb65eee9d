package readiness

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"

	"github.com/voltroute/backend/internal/domain"
	"github.com/voltroute/backend/internal/ratelimiter"
)

// StatusUnavailable is reported when at least one check fails.
const StatusUnavailable = "unavailable"

// CheckResult is the outcome of one Check within a run.
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the outcome of one readiness run.
type Report struct {
	Status    string        `json:"status"`
	Checks    []CheckResult `json:"checks"`
	CheckedAt time.Time     `json:"checked_at"`

	err error
}

// Ready reports whether every check passed.
func (r Report) Ready() bool {
	return r.Status == domain.StatusOK
}

// Err combines the errors of all failed checks, or nil.
func (r Report) Err() error {
	return r.err
}

// Hooks receives per-check observations. Any field may be nil.
type Hooks struct {
	OnResult func(name string, err error, latency time.Duration)
}

// Checker runs the registered checks and caches the latest Report.
//
// Real runs are throttled by limiter: when no token is available the cached
// report is returned instead. The first call always runs. Calls are
// serialized, so concurrent callers share one run.
type Checker struct {
	checks  []Check
	timeout time.Duration
	limiter *ratelimiter.Limiter
	hooks   Hooks

	mu   sync.Mutex
	last *Report
}

func NewChecker(checks []Check, timeout time.Duration, limiter *ratelimiter.Limiter, hooks Hooks) *Checker {
	if limiter == nil {
		limiter = ratelimiter.New(0)
	}
	return &Checker{checks: checks, timeout: timeout, limiter: limiter, hooks: hooks}
}

// Check returns a fresh report, or the cached one while throttled.
//
// Checks run detached from ctx cancellation and are bounded by the checker
// timeout alone, so a caller that goes away cannot poison the cache.
func (c *Checker) Check(ctx context.Context) Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	allowed := c.limiter.Allow()
	if c.last != nil && !allowed {
		return *c.last
	}

	r := c.run(ctx)
	c.last = &r
	return r
}

func (c *Checker) run(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	results := make([]CheckResult, len(c.checks))
	errs := make([]error, len(c.checks))

	var wg sync.WaitGroup
	for i, chk := range c.checks {
		wg.Add(1)
		go func(i int, chk Check) {
			defer wg.Done()

			start := time.Now()
			err := chk.Check(ctx)
			if c.hooks.OnResult != nil {
				c.hooks.OnResult(chk.Name(), err, time.Since(start))
			}

			results[i] = CheckResult{Name: chk.Name(), Status: domain.StatusOK}
			if err != nil {
				results[i].Status = StatusUnavailable
				results[i].Error = err.Error()
				errs[i] = errors.Wrapf(err, "check %s", chk.Name())
			}
		}(i, chk)
	}
	wg.Wait()

	r := Report{
		Status:    domain.StatusOK,
		Checks:    results,
		CheckedAt: time.Now().UTC(),
		err:       multierr.Combine(errs...),
	}
	if r.err != nil {
		r.Status = StatusUnavailable
	}
	return r
}
