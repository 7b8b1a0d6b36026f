package gcloud

import (
	"fmt"
	"time"
)

// WaitPolicy controls a blocking wait on an asynchronous operation: how often
// the status is re-checked and how long the wait may last overall. Build one
// with NewWaitPolicy; the value is immutable afterwards.
type WaitPolicy struct {
	checkEvery time.Duration
	timeout    time.Duration
}

// CheckInterval returns the period between status checks.
func (p WaitPolicy) CheckInterval() time.Duration {
	return p.checkEvery
}

// Timeout returns the total wait bound. Zero means wait indefinitely.
func (p WaitPolicy) Timeout() time.Duration {
	return p.timeout
}

type waitConfig struct {
	checkEvery    time.Duration
	timeout       time.Duration
	setCheckEvery bool
	setTimeout    bool
}

// WaitOption configures a WaitPolicy. Each option may be given at most once
// per NewWaitPolicy call.
type WaitOption func(*waitConfig) error

// CheckEvery sets the period between status checks.
func CheckEvery(period time.Duration) WaitOption {
	return func(c *waitConfig) error {
		if c.setCheckEvery {
			return fmt.Errorf("%w: checkEvery", ErrDuplicateWaitOption)
		}

		if period < 0 {
			return fmt.Errorf("%w: checkEvery must be >= 0, got %v", ErrInvalidPolicy, period)
		}

		c.checkEvery = period
		c.setCheckEvery = true

		return nil
	}
}

// Timeout sets the total wait bound. Zero waits indefinitely.
func Timeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) error {
		if c.setTimeout {
			return fmt.Errorf("%w: timeout", ErrDuplicateWaitOption)
		}

		if timeout < 0 {
			return fmt.Errorf("%w: timeout must be >= 0, got %v", ErrInvalidPolicy, timeout)
		}

		c.timeout = timeout
		c.setTimeout = true

		return nil
	}
}

// NewWaitPolicy builds a WaitPolicy from options. Without options the policy
// checks every 500ms and never times out.
func NewWaitPolicy(opts ...WaitOption) (WaitPolicy, error) {
	config := &waitConfig{checkEvery: 500 * time.Millisecond}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return WaitPolicy{}, err
		}
	}

	return WaitPolicy{checkEvery: config.checkEvery, timeout: config.timeout}, nil
}

// DefaultWaitPolicy returns the policy applied when the caller passes none.
func DefaultWaitPolicy() WaitPolicy {
	policy, _ := NewWaitPolicy()

	return policy
}

// WaitTimeoutError reports that a blocking wait exceeded its policy timeout.
// It is deliberately not an *Error: the operation itself did not fail, the
// client just stopped observing it.
type WaitTimeoutError struct {
	Timeout time.Duration
}

// Error implements the error interface.
func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for operation after %v", e.Timeout)
}
