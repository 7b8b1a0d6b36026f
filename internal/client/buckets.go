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

// BucketsClient implements the gcloud.BucketsClient interface.
type BucketsClient struct {
	client *Client
}

// NewBucketsClient creates a new buckets client.
func NewBucketsClient(client *Client) *BucketsClient {
	return &BucketsClient{client: client}
}

// Create implements the Create operation for buckets.
func (c *BucketsClient) Create(ctx context.Context, request *gcloud.BucketCreateRequest) (*gcloud.Bucket, error) {
	resp, err := c.client.execute(ctx, false, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Post(ctx, constants.APIPathBuckets, request)
	})
	if err != nil {
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	var bucket gcloud.Bucket
	if err := json.Unmarshal(resp.Body, &bucket); err != nil {
		return nil, fmt.Errorf("parsing bucket response: %w", err)
	}

	return &bucket, nil
}

// Get implements the Get operation for buckets. A missing bucket yields
// (nil, nil).
func (c *BucketsClient) Get(ctx context.Context, name string, opts *gcloud.GetOptions) (*gcloud.Bucket, error) {
	path := constants.APIPathBuckets + "/" + name

	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Get(ctx, path, opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting bucket %s: %w", name, err)
	}

	var bucket gcloud.Bucket
	if err := json.Unmarshal(resp.Body, &bucket); err != nil {
		return nil, fmt.Errorf("parsing bucket response: %w", err)
	}

	return &bucket, nil
}

// Exists reports whether the bucket exists.
func (c *BucketsClient) Exists(ctx context.Context, name string) (bool, error) {
	bucket, err := c.Get(ctx, name, &gcloud.GetOptions{Fields: []string{"id"}})
	if err != nil {
		return false, err
	}

	return bucket != nil, nil
}

// List implements the List operation for buckets.
func (c *BucketsClient) List(ctx context.Context, opts *gcloud.ListOptions) *gcloud.PageIterator[gcloud.Bucket] {
	fetch := func(ctx context.Context, pageToken string) (*gcloud.Page[gcloud.Bucket], error) {
		resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
			return c.client.httpClient.Get(ctx, constants.APIPathBuckets, pageOptions(opts, pageToken).ToValues())
		})
		if err != nil {
			return nil, fmt.Errorf("listing buckets: %w", err)
		}

		return decodePage[gcloud.Bucket](resp.Body)
	}

	return gcloud.NewPageIterator(ctx, fetch)
}

// Update implements the Update operation for buckets.
func (c *BucketsClient) Update(ctx context.Context, name string, request *gcloud.BucketUpdateRequest, opts *gcloud.UpdateOptions) (*gcloud.Bucket, error) {
	req := &internalhttp.Request{
		Method: http.MethodPatch,
		Path:   constants.APIPathBuckets + "/" + name,
		Query:  opts.ToValues(),
		Body:   request,
	}

	resp, err := c.client.execute(ctx, opts.Precondition(), func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Do(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("updating bucket %s: %w", name, err)
	}

	var bucket gcloud.Bucket
	if err := json.Unmarshal(resp.Body, &bucket); err != nil {
		return nil, fmt.Errorf("parsing bucket response: %w", err)
	}

	return &bucket, nil
}

// Delete implements the Delete operation for buckets. It returns (false, nil)
// when the bucket is already gone.
func (c *BucketsClient) Delete(ctx context.Context, name string, opts *gcloud.DeleteOptions) (bool, error) {
	path := constants.APIPathBuckets + "/" + name

	_, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Delete(ctx, path, opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("deleting bucket %s: %w", name, err)
	}

	return true, nil
}
