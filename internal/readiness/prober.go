package readiness

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Prober refreshes the Checker on a fixed interval so readiness metrics stay
// current between scrapes of the readiness endpoint.
type Prober struct {
	checker  *Checker
	interval time.Duration
	logger   *zap.Logger

	seen  bool
	ready bool
}

func NewProber(checker *Checker, interval time.Duration, logger *zap.Logger) *Prober {
	return &Prober{checker: checker, interval: interval, logger: logger}
}

// Run probes once immediately, then every interval.
// Stops cleanly when ctx is cancelled.
func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("readiness prober started", zap.Duration("interval", p.interval))
	p.probe(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("readiness prober stopping")
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *Prober) probe(ctx context.Context) {
	r := p.checker.Check(ctx)
	if ctx.Err() != nil {
		return
	}

	if p.seen && r.Ready() == p.ready {
		return
	}
	p.seen, p.ready = true, r.Ready()

	if r.Ready() {
		p.logger.Info("service ready", zap.Int("checks", len(r.Checks)))
		return
	}
	p.logger.Warn("service unavailable", zap.Error(r.Err()))
}
