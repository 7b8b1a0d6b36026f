package gcloud

import (
	"context"
)

// DatasetsClient manages datasets.
//
// Get returns (nil, nil) and Exists/Delete return (false, nil) when the
// dataset does not exist; Update surfaces a 404 as an *Error. This
// per-operation absence policy holds for every resource client below.
type DatasetsClient interface {
	Create(ctx context.Context, request *DatasetCreateRequest) (*Dataset, error)
	Get(ctx context.Context, id string, opts *GetOptions) (*Dataset, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts *ListOptions) *PageIterator[Dataset]
	Update(ctx context.Context, id string, request *DatasetUpdateRequest, opts *UpdateOptions) (*Dataset, error)
	Delete(ctx context.Context, id string, opts *DeleteOptions) (bool, error)
}

// TablesClient manages tables inside a dataset.
type TablesClient interface {
	Create(ctx context.Context, datasetID string, request *TableCreateRequest) (*Table, error)
	Get(ctx context.Context, datasetID, tableID string, opts *GetOptions) (*Table, error)
	Exists(ctx context.Context, datasetID, tableID string) (bool, error)
	List(ctx context.Context, datasetID string, opts *ListOptions) *PageIterator[Table]
	Update(ctx context.Context, datasetID, tableID string, request *TableUpdateRequest, opts *UpdateOptions) (*Table, error)
	Delete(ctx context.Context, datasetID, tableID string, opts *DeleteOptions) (bool, error)
}

// JobCreateRequest submits a new job.
type JobCreateRequest struct {
	Type          string            `json:"type"`
	Configuration map[string]string `json:"configuration,omitempty"`
	Labels        map[string]string `json:"labels,omitempty"`
}

// JobsClient manages asynchronous jobs.
type JobsClient interface {
	Insert(ctx context.Context, request *JobCreateRequest) (*Job, error)
	Get(ctx context.Context, id string, opts *GetOptions) (*Job, error)
	List(ctx context.Context, opts *ListOptions) *PageIterator[Job]
	Cancel(ctx context.Context, id string) (bool, error)
	// PollUntilDone blocks until the job reaches DONE, then returns the
	// final snapshot. A job that finished with an error result still
	// returns the snapshot alongside the error.
	PollUntilDone(ctx context.Context, id string, policy WaitPolicy) (*Job, error)
}

// BucketsClient manages buckets.
type BucketsClient interface {
	Create(ctx context.Context, request *BucketCreateRequest) (*Bucket, error)
	Get(ctx context.Context, name string, opts *GetOptions) (*Bucket, error)
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, opts *ListOptions) *PageIterator[Bucket]
	Update(ctx context.Context, name string, request *BucketUpdateRequest, opts *UpdateOptions) (*Bucket, error)
	Delete(ctx context.Context, name string, opts *DeleteOptions) (bool, error)
}

// BlobsClient manages blobs inside buckets.
type BlobsClient interface {
	Get(ctx context.Context, bucket, name string, opts *GetOptions) (*Blob, error)
	Exists(ctx context.Context, bucket, name string) (bool, error)
	List(ctx context.Context, bucket string, opts *ListOptions) *PageIterator[Blob]
	Update(ctx context.Context, bucket, name string, request *BlobUpdateRequest, opts *UpdateOptions) (*Blob, error)
	Delete(ctx context.Context, bucket, name string, opts *DeleteOptions) (bool, error)
	// Ops binds the client to one bucket so a BatchExecutor can address
	// blobs by name alone.
	Ops(bucket string) ResourceOps[BlobUpdateRequest, Blob]
	// Batch returns an executor over the bucket's blobs using the client's
	// configured concurrency.
	Batch(bucket string) *BatchExecutor[BlobUpdateRequest, Blob]
}

// InstancesClient manages instances inside zones. Mutations are asynchronous:
// the service accepts them immediately and returns an operation handle for
// the poller.
type InstancesClient interface {
	Create(ctx context.Context, zone string, request *InstanceCreateRequest) (*Operation, error)
	Get(ctx context.Context, zone, name string, opts *GetOptions) (*Instance, error)
	Exists(ctx context.Context, zone, name string) (bool, error)
	List(ctx context.Context, zone string, opts *ListOptions) *PageIterator[Instance]
	Update(ctx context.Context, zone, name string, request *InstanceUpdateRequest, opts *UpdateOptions) (*Operation, error)
	Delete(ctx context.Context, zone, name string) (*Operation, error)
}

// ZonesClient reads zones.
type ZonesClient interface {
	Get(ctx context.Context, name string, opts *GetOptions) (*Zone, error)
	List(ctx context.Context, opts *ListOptions) *PageIterator[Zone]
}

// OperationsClient observes and deletes server-side operations.
type OperationsClient interface {
	OperationGetter

	List(ctx context.Context, opts *ListOptions) *PageIterator[Operation]
	// Delete removes the server-side operation record. It returns
	// (false, nil) when the record is already gone. The service rejects
	// deleting a still-running operation; that rejection is surfaced as
	// an *Error, not pre-checked client-side.
	Delete(ctx context.Context, name string) (bool, error)
	IsDone(ctx context.Context, name string) (bool, error)
	Wait(ctx context.Context, name string, policy WaitPolicy) (*Operation, error)
	WhenDone(ctx context.Context, name string, policy WaitPolicy) (*Completion, error)
}

// Client is the full client surface.
type Client interface {
	Datasets() DatasetsClient
	Tables() TablesClient
	Jobs() JobsClient
	Buckets() BucketsClient
	Blobs() BlobsClient
	Instances() InstancesClient
	Zones() ZonesClient
	Operations() OperationsClient
}
