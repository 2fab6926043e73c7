package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryDecision says whether a failed completion attempt is worth
// repeating and how long to wait first. A zero Wait means "use backoff".
type retryDecision struct {
	Retry bool
	Wait  time.Duration
}

// RetryProvider repeats failed completions with exponential backoff and
// jitter. It sits above the sanity probe in the decorator stack, so the
// ladder's probe sees raw failures while question generation sees a
// provider that rides out transient trouble.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider with retry logic. Bounds come from the
// retry section of the quizgen configuration.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	// A completion that failed schema validation gets exactly one
	// regeneration per request. A model that keeps missing the question
	// schema will keep missing it.
	schemaRetried := false

	var lastErr error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		d := decide(err, &schemaRetried)
		if !d.Retry {
			return nil, err
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		wait := d.Wait
		if wait == 0 {
			wait = r.backoff(attempt)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// decide classifies a completion failure.
func decide(err error, schemaRetried *bool) retryDecision {
	// A dead context cannot be retried into life.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryDecision{}
	}

	// Truncation means the token budget is too small for a question,
	// which regenerating will not change.
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return retryDecision{}
	}

	var schemaMiss *ErrInvalidResponse
	if errors.As(err, &schemaMiss) {
		if *schemaRetried {
			return retryDecision{}
		}
		*schemaRetried = true
		return retryDecision{Retry: true}
	}

	var limited *ErrRateLimit
	if errors.As(err, &limited) {
		return retryDecision{Retry: true, Wait: limited.RetryAfter}
	}

	// Outages, timeouts and everything else network-shaped count as
	// transient.
	return retryDecision{Retry: true}
}

// backoff grows InitialWait by Multiplier per attempt, capped at MaxWait,
// with ±20% jitter so parallel batches don't hammer in lockstep.
func (r *RetryProvider) backoff(attempt int) time.Duration {
	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(wait, 0))
}
