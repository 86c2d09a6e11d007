package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

type retrying struct {
	next  Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

// WithRetry retries retryable failures with jittered exponential back-off.
// An invalid structured reply is retried once at most; a second one is
// returned to the caller.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &retrying{next: p, cfg: cfg, sleep: sleepCtx}
}

func (r *retrying) ModelID() string { return r.next.ModelID() }

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	for attempt := 1; ; attempt++ {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var e *Error
		if !errors.As(err, &e) || !e.Retryable() || attempt >= r.cfg.MaxAttempts {
			return nil, err
		}
		if e.Kind == KindInvalidOutput {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}

		if serr := r.sleep(ctx, r.backoff(attempt, e)); serr != nil {
			return nil, serr
		}
	}
}

// backoff is the wait before attempt+1. A provider Retry-After wins over the
// computed delay.
func (r *retrying) backoff(attempt int, e *Error) time.Duration {
	if e.RetryAfter > 0 {
		if r.cfg.MaxWait > 0 {
			return min(e.RetryAfter, r.cfg.MaxWait)
		}
		return e.RetryAfter
	}
	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt-1))
	if limit := float64(r.cfg.MaxWait); limit > 0 && d > limit {
		d = limit
	}
	// ±20% so concurrent callers spread out.
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type deadline struct {
	next    Provider
	timeout time.Duration
}

// WithTimeout bounds every Generate call. A zero timeout returns p as is.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &deadline{next: p, timeout: timeout}
}

func (d *deadline) ModelID() string { return d.next.ModelID() }

func (d *deadline) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.next.Generate(ctx, req)
}
