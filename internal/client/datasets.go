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

// DatasetsClient implements the gcloud.DatasetsClient interface.
type DatasetsClient struct {
	client *Client
}

// NewDatasetsClient creates a new datasets client.
func NewDatasetsClient(client *Client) *DatasetsClient {
	return &DatasetsClient{client: client}
}

// Create implements the Create operation for datasets.
func (c *DatasetsClient) Create(ctx context.Context, request *gcloud.DatasetCreateRequest) (*gcloud.Dataset, error) {
	resp, err := c.client.execute(ctx, false, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Post(ctx, constants.APIPathDatasets, request)
	})
	if err != nil {
		return nil, fmt.Errorf("creating dataset: %w", err)
	}

	var dataset gcloud.Dataset
	if err := json.Unmarshal(resp.Body, &dataset); err != nil {
		return nil, fmt.Errorf("parsing dataset response: %w", err)
	}

	return &dataset, nil
}

// Get implements the Get operation for datasets. A missing dataset yields
// (nil, nil).
func (c *DatasetsClient) Get(ctx context.Context, id string, opts *gcloud.GetOptions) (*gcloud.Dataset, error) {
	path := constants.APIPathDatasets + "/" + id

	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Get(ctx, path, opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting dataset %s: %w", id, err)
	}

	var dataset gcloud.Dataset
	if err := json.Unmarshal(resp.Body, &dataset); err != nil {
		return nil, fmt.Errorf("parsing dataset response: %w", err)
	}

	return &dataset, nil
}

// Exists reports whether the dataset exists.
func (c *DatasetsClient) Exists(ctx context.Context, id string) (bool, error) {
	dataset, err := c.Get(ctx, id, &gcloud.GetOptions{Fields: []string{"id"}})
	if err != nil {
		return false, err
	}

	return dataset != nil, nil
}

// List implements the List operation for datasets.
func (c *DatasetsClient) List(ctx context.Context, opts *gcloud.ListOptions) *gcloud.PageIterator[gcloud.Dataset] {
	fetch := func(ctx context.Context, pageToken string) (*gcloud.Page[gcloud.Dataset], error) {
		resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
			return c.client.httpClient.Get(ctx, constants.APIPathDatasets, pageOptions(opts, pageToken).ToValues())
		})
		if err != nil {
			return nil, fmt.Errorf("listing datasets: %w", err)
		}

		return decodePage[gcloud.Dataset](resp.Body)
	}

	return gcloud.NewPageIterator(ctx, fetch)
}

// Update implements the Update operation for datasets. A missing dataset is
// surfaced as an error; an unconditioned update is not replayed.
func (c *DatasetsClient) Update(ctx context.Context, id string, request *gcloud.DatasetUpdateRequest, opts *gcloud.UpdateOptions) (*gcloud.Dataset, error) {
	req := &internalhttp.Request{
		Method: http.MethodPatch,
		Path:   constants.APIPathDatasets + "/" + id,
		Query:  opts.ToValues(),
		Body:   request,
	}

	resp, err := c.client.execute(ctx, opts.Precondition(), func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Do(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("updating dataset %s: %w", id, err)
	}

	var dataset gcloud.Dataset
	if err := json.Unmarshal(resp.Body, &dataset); err != nil {
		return nil, fmt.Errorf("parsing dataset response: %w", err)
	}

	return &dataset, nil
}

// Delete implements the Delete operation for datasets. It returns
// (false, nil) when the dataset is already gone.
func (c *DatasetsClient) Delete(ctx context.Context, id string, opts *gcloud.DeleteOptions) (bool, error) {
	path := constants.APIPathDatasets + "/" + id

	_, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Delete(ctx, path, opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("deleting dataset %s: %w", id, err)
	}

	return true, nil
}
