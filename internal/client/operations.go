package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mziccard/gcloud-go/internal/constants"
	internalhttp "github.com/mziccard/gcloud-go/internal/http"
	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

// OperationsClient implements the gcloud.OperationsClient interface.
type OperationsClient struct {
	client *Client
}

// NewOperationsClient creates a new operations client.
func NewOperationsClient(client *Client) *OperationsClient {
	return &OperationsClient{client: client}
}

// GetOperation fetches one operation record. A missing record yields
// (nil, nil): the service garbage-collects finished operations, so absence
// means the operation completed.
func (c *OperationsClient) GetOperation(ctx context.Context, name string, opts *gcloud.GetOptions) (*gcloud.Operation, error) {
	path := constants.APIPathOperations + "/" + name

	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Get(ctx, path, opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting operation %s: %w", name, err)
	}

	var op gcloud.Operation
	if err := json.Unmarshal(resp.Body, &op); err != nil {
		return nil, fmt.Errorf("parsing operation response: %w", err)
	}

	return &op, nil
}

// List implements the List operation for operations.
func (c *OperationsClient) List(ctx context.Context, opts *gcloud.ListOptions) *gcloud.PageIterator[gcloud.Operation] {
	fetch := func(ctx context.Context, pageToken string) (*gcloud.Page[gcloud.Operation], error) {
		resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
			return c.client.httpClient.Get(ctx, constants.APIPathOperations, pageOptions(opts, pageToken).ToValues())
		})
		if err != nil {
			return nil, fmt.Errorf("listing operations: %w", err)
		}

		return decodePage[gcloud.Operation](resp.Body)
	}

	return gcloud.NewPageIterator(ctx, fetch)
}

// Delete removes the server-side operation record. It returns (false, nil)
// when the record is already gone. Deleting a still-running operation is
// rejected by the service and surfaced as an error.
func (c *OperationsClient) Delete(ctx context.Context, name string) (bool, error) {
	path := constants.APIPathOperations + "/" + name

	_, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Delete(ctx, path, nil)
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("deleting operation %s: %w", name, err)
	}

	return true, nil
}

// IsDone reports whether the operation finished.
func (c *OperationsClient) IsDone(ctx context.Context, name string) (bool, error) {
	return gcloud.IsOperationDone(ctx, c, name)
}

// Wait blocks until the operation finishes and returns the final snapshot.
func (c *OperationsClient) Wait(ctx context.Context, name string, policy gcloud.WaitPolicy) (*gcloud.Operation, error) {
	return gcloud.WaitForOperation(ctx, c, name, c.client.waitPolicyOr(policy))
}

// WhenDone blocks until the operation finishes and splits the outcome into a
// completion record.
func (c *OperationsClient) WhenDone(ctx context.Context, name string, policy gcloud.WaitPolicy) (*gcloud.Completion, error) {
	return gcloud.WhenOperationDone(ctx, c, name, c.client.waitPolicyOr(policy))
}
