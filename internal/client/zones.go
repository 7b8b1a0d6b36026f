package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mziccard/gcloud-go/internal/constants"
	internalhttp "github.com/mziccard/gcloud-go/internal/http"
	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

// ZonesClient implements the gcloud.ZonesClient interface.
type ZonesClient struct {
	client *Client
}

// NewZonesClient creates a new zones client.
func NewZonesClient(client *Client) *ZonesClient {
	return &ZonesClient{client: client}
}

// Get implements the Get operation for zones. A missing zone yields
// (nil, nil).
func (c *ZonesClient) Get(ctx context.Context, name string, opts *gcloud.GetOptions) (*gcloud.Zone, error) {
	path := constants.APIPathZones + "/" + name

	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Get(ctx, path, opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting zone %s: %w", name, err)
	}

	var zone gcloud.Zone
	if err := json.Unmarshal(resp.Body, &zone); err != nil {
		return nil, fmt.Errorf("parsing zone response: %w", err)
	}

	return &zone, nil
}

// List implements the List operation for zones.
func (c *ZonesClient) List(ctx context.Context, opts *gcloud.ListOptions) *gcloud.PageIterator[gcloud.Zone] {
	fetch := func(ctx context.Context, pageToken string) (*gcloud.Page[gcloud.Zone], error) {
		resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
			return c.client.httpClient.Get(ctx, constants.APIPathZones, pageOptions(opts, pageToken).ToValues())
		})
		if err != nil {
			return nil, fmt.Errorf("listing zones: %w", err)
		}

		return decodePage[gcloud.Zone](resp.Body)
	}

	return gcloud.NewPageIterator(ctx, fetch)
}
