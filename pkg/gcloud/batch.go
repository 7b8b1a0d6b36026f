package gcloud

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxBatchSize is the largest number of sub-requests the service accepts in
// one batch.
const MaxBatchSize = 100

// ResourceOps is the resource-client surface a batch executes against. The
// concrete clients in internal/client satisfy it; tests supply fakes.
type ResourceOps[TUpdate, T any] interface {
	Get(ctx context.Context, id string, opts *GetOptions) (*T, error)
	Update(ctx context.Context, id string, request *TUpdate, opts *UpdateOptions) (*T, error)
	Delete(ctx context.Context, id string, opts *DeleteOptions) (bool, error)
}

type batchGet struct {
	id     string
	target string
	opts   *GetOptions
}

type batchUpdate[TUpdate any] struct {
	id      string
	target  string
	request *TUpdate
	opts    *UpdateOptions
}

type batchDelete struct {
	id     string
	target string
	opts   *DeleteOptions
}

// BatchRequest aggregates independent get/update/delete sub-requests.
// Sub-requests are grouped by kind; each group keeps its insertion order.
type BatchRequest[TUpdate any] struct {
	gets    []batchGet
	updates []batchUpdate[TUpdate]
	deletes []batchDelete
}

// NewBatchRequest creates an empty batch.
func NewBatchRequest[TUpdate any]() *BatchRequest[TUpdate] {
	return &BatchRequest[TUpdate]{}
}

// AddGet queues a fetch of the target resource.
func (r *BatchRequest[TUpdate]) AddGet(target string, opts *GetOptions) *BatchRequest[TUpdate] {
	r.gets = append(r.gets, batchGet{id: uuid.NewString(), target: target, opts: opts})

	return r
}

// AddUpdate queues a mutation of the target resource.
func (r *BatchRequest[TUpdate]) AddUpdate(target string, request *TUpdate, opts *UpdateOptions) *BatchRequest[TUpdate] {
	r.updates = append(r.updates, batchUpdate[TUpdate]{id: uuid.NewString(), target: target, request: request, opts: opts})

	return r
}

// AddDelete queues a deletion of the target resource.
func (r *BatchRequest[TUpdate]) AddDelete(target string, opts *DeleteOptions) *BatchRequest[TUpdate] {
	r.deletes = append(r.deletes, batchDelete{id: uuid.NewString(), target: target, opts: opts})

	return r
}

// Len returns the total number of queued sub-requests.
func (r *BatchRequest[TUpdate]) Len() int {
	return len(r.gets) + len(r.updates) + len(r.deletes)
}

// Result wraps one sub-request's outcome: a value or an error, never both.
type Result[T any] struct {
	// ID correlates the result with its sub-request.
	ID string
	// Target is the resource identity the sub-request addressed.
	Target string
	// Value is the successful outcome.
	Value T
	// Err is the failure outcome.
	Err error
	// Duration is how long the sub-request took.
	Duration time.Duration
}

// Succeeded reports whether the sub-request completed without error.
func (r Result[T]) Succeeded() bool {
	return r.Err == nil
}

// BatchResponse carries one result per sub-request, positionally aligned to
// each request group: Gets[i] answers the i-th AddGet, independent of the
// other groups.
type BatchResponse[T any] struct {
	Gets    []Result[*T]
	Updates []Result[*T]
	Deletes []Result[bool]
}

// BatchExecutor fans a batch out as bounded-concurrency independent calls.
// One sub-request's failure never aborts the others.
type BatchExecutor[TUpdate, T any] struct {
	ops         ResourceOps[TUpdate, T]
	concurrency int
}

// NewBatchExecutor creates an executor over the given resource operations.
func NewBatchExecutor[TUpdate, T any](ops ResourceOps[TUpdate, T], concurrency int) *BatchExecutor[TUpdate, T] {
	if concurrency <= 0 {
		concurrency = 5
	}

	return &BatchExecutor[TUpdate, T]{ops: ops, concurrency: concurrency}
}

// Execute runs every sub-request and collects per-item results. An empty
// batch returns empty result groups without touching the network. A batch
// over MaxBatchSize is rejected before any call is issued.
func (b *BatchExecutor[TUpdate, T]) Execute(ctx context.Context, request *BatchRequest[TUpdate]) (*BatchResponse[T], error) {
	if request.Len() > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d sub-requests, maximum is %d", ErrBatchTooLarge, request.Len(), MaxBatchSize)
	}

	response := &BatchResponse[T]{
		Gets:    make([]Result[*T], len(request.gets)),
		Updates: make([]Result[*T], len(request.updates)),
		Deletes: make([]Result[bool], len(request.deletes)),
	}

	if request.Len() == 0 {
		return response, nil
	}

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	run := func(fn func()) {
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			fn()
		}()
	}

	for index, get := range request.gets {
		run(func() {
			start := time.Now()
			value, err := b.ops.Get(ctx, get.target, get.opts)
			response.Gets[index] = Result[*T]{
				ID: get.id, Target: get.target, Value: value, Err: err, Duration: time.Since(start),
			}
		})
	}

	for index, update := range request.updates {
		run(func() {
			start := time.Now()
			value, err := b.ops.Update(ctx, update.target, update.request, update.opts)
			response.Updates[index] = Result[*T]{
				ID: update.id, Target: update.target, Value: value, Err: err, Duration: time.Since(start),
			}
		})
	}

	for index, del := range request.deletes {
		run(func() {
			start := time.Now()
			deleted, err := b.ops.Delete(ctx, del.target, del.opts)
			response.Deletes[index] = Result[bool]{
				ID: del.id, Target: del.target, Value: deleted, Err: err, Duration: time.Since(start),
			}
		})
	}

	waitGroup.Wait()

	return response, nil
}
