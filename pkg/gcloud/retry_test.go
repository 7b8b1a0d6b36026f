package gcloud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestExecute_SucceedsAfterRetries(t *testing.T) {
	attempts := 0

	value, err := Execute(context.Background(), fastRetryPolicy(5), true, func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", &ErrorResponse{Code: 503, Message: "unavailable"}
		}

		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 3, attempts)
}

func TestExecute_StopsOnNonRetryableError(t *testing.T) {
	attempts := 0

	_, err := Execute(context.Background(), fastRetryPolicy(5), true, func(ctx context.Context) (string, error) {
		attempts++

		return "", &ErrorResponse{Code: 400, Message: "bad request"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var svcErr *Error

	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Code)
}

func TestExecute_ReturnsLastErrorOnExhaustion(t *testing.T) {
	attempts := 0

	_, err := Execute(context.Background(), fastRetryPolicy(3), true, func(ctx context.Context) (int, error) {
		attempts++

		return 0, &ErrorResponse{Code: 503, Message: "still unavailable"}
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)

	var svcErr *Error

	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 503, svcErr.Code)
	assert.Equal(t, "still unavailable", svcErr.Message)
}

func TestExecute_OpaqueFailureRespectsIdempotency(t *testing.T) {
	attempts := 0

	_, err := Execute(context.Background(), fastRetryPolicy(5), false, func(ctx context.Context) (string, error) {
		attempts++

		return "", errors.New("connection reset")
	})

	require.Error(t, err)
	// Non-idempotent calls are never replayed after an opaque failure.
	assert.Equal(t, 1, attempts)
}

func TestExecute_TotalTimeoutStopsEarly(t *testing.T) {
	policy := RetryPolicy{
		MaxAttempts:  100,
		BaseDelay:    20 * time.Millisecond,
		MaxDelay:     20 * time.Millisecond,
		Multiplier:   1.0,
		TotalTimeout: 30 * time.Millisecond,
	}

	attempts := 0

	_, err := Execute(context.Background(), policy, true, func(ctx context.Context) (string, error) {
		attempts++

		return "", &ErrorResponse{Code: 503, Message: "unavailable"}
	})

	require.Error(t, err)
	assert.Less(t, attempts, 5)

	var svcErr *Error

	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 503, svcErr.Code)
}

func TestExecute_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	policy := RetryPolicy{
		MaxAttempts: 10,
		BaseDelay:   time.Second,
		MaxDelay:    time.Second,
		Multiplier:  1.0,
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()

	_, err := Execute(ctx, policy, true, func(ctx context.Context) (string, error) {
		return "", &ErrorResponse{Code: 503, Message: "unavailable"}
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestExecute_InvalidPolicy(t *testing.T) {
	_, err := Execute(context.Background(), RetryPolicy{}, true, func(ctx context.Context) (string, error) {
		t.Fatal("call should not run under an invalid policy")

		return "", nil
	})

	require.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestRetryPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  RetryPolicy
		wantErr bool
	}{
		{
			name:    "default policy is valid",
			policy:  DefaultRetryPolicy(),
			wantErr: false,
		},
		{
			name:    "zero attempts",
			policy:  RetryPolicy{MaxAttempts: 0, Multiplier: 2.0},
			wantErr: true,
		},
		{
			name:    "negative base delay",
			policy:  RetryPolicy{MaxAttempts: 3, BaseDelay: -1, Multiplier: 2.0},
			wantErr: true,
		},
		{
			name:    "multiplier below one",
			policy:  RetryPolicy{MaxAttempts: 3, Multiplier: 0.5},
			wantErr: true,
		},
		{
			name:    "negative total timeout",
			policy:  RetryPolicy{MaxAttempts: 3, Multiplier: 2.0, TotalTimeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "single attempt no backoff",
			policy:  RetryPolicy{MaxAttempts: 1, Multiplier: 1.0},
			wantErr: false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.policy.Validate()
			if testCase.wantErr {
				require.ErrorIs(t, err, ErrInvalidPolicy)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
