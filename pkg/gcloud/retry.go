package gcloud

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryPolicy bounds the retry loop applied to a single RPC. The zero value
// is invalid; start from DefaultRetryPolicy and adjust.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int `yaml:"max_attempts,omitempty"`
	// BaseDelay is the wait before the first retry.
	BaseDelay time.Duration `yaml:"base_delay,omitempty"`
	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration `yaml:"max_delay,omitempty"`
	// Multiplier scales the delay after each failed attempt.
	Multiplier float64 `yaml:"multiplier,omitempty"`
	// TotalTimeout bounds the whole loop including sleeps. Zero means no
	// total timeout.
	TotalTimeout time.Duration `yaml:"total_timeout,omitempty"`
}

// DefaultRetryPolicy returns the retry bounds used when the caller does not
// configure any.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Multiplier:  2.0,
	}
}

// Validate rejects policies with out-of-range fields.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("%w: maxAttempts must be >= 1, got %d", ErrInvalidPolicy, p.MaxAttempts)
	}

	if p.BaseDelay < 0 {
		return fmt.Errorf("%w: baseDelay must be >= 0, got %v", ErrInvalidPolicy, p.BaseDelay)
	}

	if p.MaxDelay < 0 {
		return fmt.Errorf("%w: maxDelay must be >= 0, got %v", ErrInvalidPolicy, p.MaxDelay)
	}

	if p.Multiplier < 1 {
		return fmt.Errorf("%w: multiplier must be >= 1, got %v", ErrInvalidPolicy, p.Multiplier)
	}

	if p.TotalTimeout < 0 {
		return fmt.Errorf("%w: totalTimeout must be >= 0, got %v", ErrInvalidPolicy, p.TotalTimeout)
	}

	return nil
}

// ErrInvalidPolicy is wrapped by all policy validation failures.
var ErrInvalidPolicy = errors.New("invalid policy")

// Execute performs call until it succeeds, fails terminally, or the policy is
// exhausted. Each failure is classified with the caller-declared idempotency;
// only retryable verdicts are re-attempted. On exhaustion the last classified
// error is returned unchanged.
//
// The backoff sleep honors ctx: cancellation abandons the loop and returns
// the context error.
func Execute[T any](ctx context.Context, policy RetryPolicy, idempotent bool, call func(ctx context.Context) (T, error)) (T, error) {
	return ExecuteWithClassifier[T](ctx, policy, idempotent, defaultClassifier, call)
}

// ExecuteWithClassifier is Execute with a custom retryable-code set.
func ExecuteWithClassifier[T any](ctx context.Context, policy RetryPolicy, idempotent bool, classifier *Classifier, call func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if err := policy.Validate(); err != nil {
		return zero, err
	}

	start := time.Now()
	delay := policy.BaseDelay

	var lastErr *Error

	for attempt := 1; ; attempt++ {
		value, err := call(ctx)
		if err == nil {
			return value, nil
		}

		lastErr = classifier.Classify(err, idempotent)
		if !lastErr.Retryable() {
			return zero, lastErr
		}

		if attempt >= policy.MaxAttempts {
			return zero, lastErr
		}

		if policy.TotalTimeout > 0 && time.Since(start)+delay > policy.TotalTimeout {
			return zero, lastErr
		}

		if err := sleepContext(ctx, delay); err != nil {
			return zero, err
		}

		delay = time.Duration(float64(delay) * policy.Multiplier)
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		// Still yield a cancellation point between attempts.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
