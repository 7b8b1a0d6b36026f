package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mziccard/gcloud-go/internal/constants"
	internalhttp "github.com/mziccard/gcloud-go/internal/http"
	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

// BlobsClient implements the gcloud.BlobsClient interface.
type BlobsClient struct {
	client *Client
}

// NewBlobsClient creates a new blobs client.
func NewBlobsClient(client *Client) *BlobsClient {
	return &BlobsClient{client: client}
}

func blobsPath(bucket string) string {
	return constants.APIPathBuckets + "/" + bucket + "/blobs"
}

func blobPath(bucket, name string) string {
	return blobsPath(bucket) + "/" + name
}

// Get implements the Get operation for blobs. A missing blob yields
// (nil, nil).
func (c *BlobsClient) Get(ctx context.Context, bucket, name string, opts *gcloud.GetOptions) (*gcloud.Blob, error) {
	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Get(ctx, blobPath(bucket, name), opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting blob %s/%s: %w", bucket, name, err)
	}

	var blob gcloud.Blob
	if err := json.Unmarshal(resp.Body, &blob); err != nil {
		return nil, fmt.Errorf("parsing blob response: %w", err)
	}

	return &blob, nil
}

// Exists reports whether the blob exists.
func (c *BlobsClient) Exists(ctx context.Context, bucket, name string) (bool, error) {
	blob, err := c.Get(ctx, bucket, name, &gcloud.GetOptions{Fields: []string{"id"}})
	if err != nil {
		return false, err
	}

	return blob != nil, nil
}

// List implements the List operation for blobs.
func (c *BlobsClient) List(ctx context.Context, bucket string, opts *gcloud.ListOptions) *gcloud.PageIterator[gcloud.Blob] {
	fetch := func(ctx context.Context, pageToken string) (*gcloud.Page[gcloud.Blob], error) {
		resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
			return c.client.httpClient.Get(ctx, blobsPath(bucket), pageOptions(opts, pageToken).ToValues())
		})
		if err != nil {
			return nil, fmt.Errorf("listing blobs: %w", err)
		}

		return decodePage[gcloud.Blob](resp.Body)
	}

	return gcloud.NewPageIterator(ctx, fetch)
}

// Update implements the Update operation for blobs. A generation precondition
// makes the update safe to replay.
func (c *BlobsClient) Update(ctx context.Context, bucket, name string, request *gcloud.BlobUpdateRequest, opts *gcloud.UpdateOptions) (*gcloud.Blob, error) {
	req := &internalhttp.Request{
		Method: http.MethodPatch,
		Path:   blobPath(bucket, name),
		Query:  opts.ToValues(),
		Body:   request,
	}

	resp, err := c.client.execute(ctx, opts.Precondition(), func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Do(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("updating blob %s/%s: %w", bucket, name, err)
	}

	var blob gcloud.Blob
	if err := json.Unmarshal(resp.Body, &blob); err != nil {
		return nil, fmt.Errorf("parsing blob response: %w", err)
	}

	return &blob, nil
}

// Delete implements the Delete operation for blobs. It returns (false, nil)
// when the blob is already gone.
func (c *BlobsClient) Delete(ctx context.Context, bucket, name string, opts *gcloud.DeleteOptions) (bool, error) {
	_, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Delete(ctx, blobPath(bucket, name), opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("deleting blob %s/%s: %w", bucket, name, err)
	}

	return true, nil
}

// Ops binds the client to one bucket so a batch executor can address blobs by
// name alone.
func (c *BlobsClient) Ops(bucket string) gcloud.ResourceOps[gcloud.BlobUpdateRequest, gcloud.Blob] {
	return &boundBlobOps{blobs: c, bucket: bucket}
}

// Batch returns an executor over the bucket's blobs using the client's
// configured concurrency.
func (c *BlobsClient) Batch(bucket string) *gcloud.BatchExecutor[gcloud.BlobUpdateRequest, gcloud.Blob] {
	return gcloud.NewBatchExecutor(c.Ops(bucket), c.client.batchConcurrency)
}

// boundBlobOps adapts the bucket-scoped blob client to the flat resource
// surface a batch executes against.
type boundBlobOps struct {
	blobs  *BlobsClient
	bucket string
}

func (b *boundBlobOps) Get(ctx context.Context, name string, opts *gcloud.GetOptions) (*gcloud.Blob, error) {
	return b.blobs.Get(ctx, b.bucket, name, opts)
}

func (b *boundBlobOps) Update(ctx context.Context, name string, request *gcloud.BlobUpdateRequest, opts *gcloud.UpdateOptions) (*gcloud.Blob, error) {
	return b.blobs.Update(ctx, b.bucket, name, request, opts)
}

func (b *boundBlobOps) Delete(ctx context.Context, name string, opts *gcloud.DeleteOptions) (bool, error) {
	return b.blobs.Delete(ctx, b.bucket, name, opts)
}
