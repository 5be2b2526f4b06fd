package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/giasu/internal/logger"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    *logger.Logger
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		lastErr       error
		retriedFormat bool
	)
	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &retriedFormat) || attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.log.Debug("retrying llm request", "attempt", attempt+1, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) Name() string    { return r.inner.Name() }
func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// retryable reports whether err is worth another attempt. A malformed
// response is retried once; cancellation and truncation never are.
func retryable(err error, retriedFormat *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *retriedFormat {
			return false
		}
		*retriedFormat = true
	}
	return true
}

// backoff computes the wait before the next attempt, honouring RetryAfter
// on rate limits and adding ±20% jitter otherwise.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}

// TimeoutProvider bounds every Generate call with a deadline.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p so each call is cancelled after d. A non-positive d
// returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) Name() string    { return t.inner.Name() }
func (t *TimeoutProvider) ModelID() string { return t.inner.ModelID() }
