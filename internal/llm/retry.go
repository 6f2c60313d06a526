package llm

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy bounds the single network hop to the completion provider.
// Only transient faults are retried: transport failures, timeouts, HTTP 429 and 5xx.
// A successful response is never retried, whatever its content.
type RetryPolicy struct {
	MaxAttempts int           // total attempts; values below 1 mean 1
	Backoff     time.Duration // wait before attempt n+1 is n*Backoff
	Timeout     time.Duration // per-attempt timeout; 0 uses 30s, negative disables
}

// DefaultRetryPolicy allows one retry after 500ms with a 30s per-attempt timeout.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 2,
		Backoff:     500 * time.Millisecond,
		Timeout:     perAttemptTimeout,
	}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// EffectiveTimeout is the per-attempt timeout Do applies; 0 or less means attempts are unbounded.
func (p RetryPolicy) EffectiveTimeout() time.Duration {
	if p.Timeout == 0 {
		return perAttemptTimeout
	}
	if p.Timeout < 0 {
		return 0
	}
	return p.Timeout
}

// Budget returns the longest Do can run: every attempt timing out plus every backoff.
// ok is false when attempts are unbounded.
func (p RetryPolicy) Budget() (budget time.Duration, ok bool) {
	timeout := p.EffectiveTimeout()
	if timeout <= 0 {
		return 0, false
	}
	n := p.attempts()
	budget = time.Duration(n) * timeout
	for attempt := 1; attempt < n; attempt++ {
		budget += p.Backoff * time.Duration(attempt)
	}
	return budget, true
}

// Do runs fn until it succeeds, returns a non-transient error, or attempts run out.
// Each attempt gets its own timeout-bound context. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	var err error
	for attempt := 1; attempt <= p.attempts(); attempt++ {
		err = p.runAttempt(ctx, attempt, fn)
		if err == nil {
			return nil
		}
		if attempt == p.attempts() || !IsTransient(err) || ctx.Err() != nil {
			return err
		}

		if wait := p.Backoff * time.Duration(attempt); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return err
			case <-timer.C:
			}
		}
	}
	return err
}

func (p RetryPolicy) runAttempt(ctx context.Context, attempt int, fn func(ctx context.Context, attempt int) error) error {
	if t := p.EffectiveTimeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	return fn(ctx, attempt)
}

// IsTransient reports whether err is a fault worth retrying.
func IsTransient(err error) bool {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Transient()
	}
	return false
}
