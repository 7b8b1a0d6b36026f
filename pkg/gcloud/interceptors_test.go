package gcloud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterceptorChain_ExecutesInOrder(t *testing.T) {
	chain := NewInterceptorChain()

	var order []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *InterceptedRequest) error {
		order = append(order, "first")

		return nil
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *InterceptedRequest) error {
		order = append(order, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &InterceptedRequest{Method: "GET", Path: "/v1/datasets"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestInterceptorChain_RequestInterceptorError(t *testing.T) {
	chain := NewInterceptorChain()
	boom := errors.New("rejected")

	chain.AddRequestInterceptor(func(ctx context.Context, req *InterceptedRequest) error {
		return boom
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *InterceptedRequest) error {
		t.Fatal("second interceptor should not run")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &InterceptedRequest{})
	require.ErrorIs(t, err, boom)
}

func TestInterceptorChain_NilChainIsNoop(t *testing.T) {
	var chain *InterceptorChain

	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), &InterceptedRequest{}))
	require.NoError(t, chain.ExecuteResponseInterceptors(context.Background(), &InterceptedRequest{}, &InterceptedResponse{}))
}

func TestHeaderInterceptor(t *testing.T) {
	interceptor := HeaderInterceptor(map[string]string{"X-Request-Source": "batch"})

	req := &InterceptedRequest{}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "batch", req.Headers.Get("X-Request-Source"))
}

func TestUserAgentInterceptor(t *testing.T) {
	interceptor := UserAgentInterceptor("gcloud-go-test/1.0")

	req := &InterceptedRequest{}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "gcloud-go-test/1.0", req.Headers.Get("User-Agent"))
}

func TestRateLimitInterceptor_AllowsBurstThenBlocks(t *testing.T) {
	interceptor := RateLimitInterceptor(2)

	req := &InterceptedRequest{Method: "GET", Path: "/v1/datasets"}

	// The bucket starts full, so the first two requests pass immediately.
	require.NoError(t, interceptor(context.Background(), req))
	require.NoError(t, interceptor(context.Background(), req))

	// With the bucket drained, a cancelled context unblocks the wait.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := interceptor(ctx, req)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMetricsInterceptor(t *testing.T) {
	metrics := &Metrics{}
	interceptor := MetricsInterceptor(metrics)

	ctx := context.Background()
	req := &InterceptedRequest{Method: "GET", Path: "/v1/datasets"}

	require.NoError(t, interceptor(ctx, req, &InterceptedResponse{StatusCode: 200}))
	require.NoError(t, interceptor(ctx, req, &InterceptedResponse{StatusCode: 200}))
	require.NoError(t, interceptor(ctx, req, &InterceptedResponse{Err: errors.New("reset")}))

	requests, errCount := metrics.Snapshot()
	assert.Equal(t, int64(3), requests)
	assert.Equal(t, int64(1), errCount)
}
