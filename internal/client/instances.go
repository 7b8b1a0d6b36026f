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

// InstancesClient implements the gcloud.InstancesClient interface. Mutations
// return the operation handle the service responds with; callers poll it
// through the operations client.
type InstancesClient struct {
	client *Client
}

// NewInstancesClient creates a new instances client.
func NewInstancesClient(client *Client) *InstancesClient {
	return &InstancesClient{client: client}
}

func instancesPath(zone string) string {
	return constants.APIPathZones + "/" + zone + "/instances"
}

func instancePath(zone, name string) string {
	return instancesPath(zone) + "/" + name
}

func parseOperation(body []byte) (*gcloud.Operation, error) {
	var op gcloud.Operation
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("parsing operation response: %w", err)
	}

	return &op, nil
}

// Create starts instance creation and returns the operation handle.
func (c *InstancesClient) Create(ctx context.Context, zone string, request *gcloud.InstanceCreateRequest) (*gcloud.Operation, error) {
	resp, err := c.client.execute(ctx, false, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Post(ctx, instancesPath(zone), request)
	})
	if err != nil {
		return nil, fmt.Errorf("creating instance: %w", err)
	}

	return parseOperation(resp.Body)
}

// Get implements the Get operation for instances. A missing instance yields
// (nil, nil).
func (c *InstancesClient) Get(ctx context.Context, zone, name string, opts *gcloud.GetOptions) (*gcloud.Instance, error) {
	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Get(ctx, instancePath(zone, name), opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting instance %s/%s: %w", zone, name, err)
	}

	var instance gcloud.Instance
	if err := json.Unmarshal(resp.Body, &instance); err != nil {
		return nil, fmt.Errorf("parsing instance response: %w", err)
	}

	return &instance, nil
}

// Exists reports whether the instance exists.
func (c *InstancesClient) Exists(ctx context.Context, zone, name string) (bool, error) {
	instance, err := c.Get(ctx, zone, name, &gcloud.GetOptions{Fields: []string{"id"}})
	if err != nil {
		return false, err
	}

	return instance != nil, nil
}

// List implements the List operation for instances.
func (c *InstancesClient) List(ctx context.Context, zone string, opts *gcloud.ListOptions) *gcloud.PageIterator[gcloud.Instance] {
	fetch := func(ctx context.Context, pageToken string) (*gcloud.Page[gcloud.Instance], error) {
		resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
			return c.client.httpClient.Get(ctx, instancesPath(zone), pageOptions(opts, pageToken).ToValues())
		})
		if err != nil {
			return nil, fmt.Errorf("listing instances: %w", err)
		}

		return decodePage[gcloud.Instance](resp.Body)
	}

	return gcloud.NewPageIterator(ctx, fetch)
}

// Update starts an instance update and returns the operation handle.
func (c *InstancesClient) Update(ctx context.Context, zone, name string, request *gcloud.InstanceUpdateRequest, opts *gcloud.UpdateOptions) (*gcloud.Operation, error) {
	req := &internalhttp.Request{
		Method: http.MethodPatch,
		Path:   instancePath(zone, name),
		Query:  opts.ToValues(),
		Body:   request,
	}

	resp, err := c.client.execute(ctx, opts.Precondition(), func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Do(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("updating instance %s/%s: %w", zone, name, err)
	}

	return parseOperation(resp.Body)
}

// Delete starts instance deletion and returns the operation handle. A missing
// instance yields (nil, nil): there is nothing left to wait for.
func (c *InstancesClient) Delete(ctx context.Context, zone, name string) (*gcloud.Operation, error) {
	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Delete(ctx, instancePath(zone, name), nil)
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("deleting instance %s/%s: %w", zone, name, err)
	}

	return parseOperation(resp.Body)
}
