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

// TablesClient implements the gcloud.TablesClient interface.
type TablesClient struct {
	client *Client
}

// NewTablesClient creates a new tables client.
func NewTablesClient(client *Client) *TablesClient {
	return &TablesClient{client: client}
}

func tablesPath(datasetID string) string {
	return constants.APIPathDatasets + "/" + datasetID + "/tables"
}

func tablePath(datasetID, tableID string) string {
	return tablesPath(datasetID) + "/" + tableID
}

// Create implements the Create operation for tables.
func (c *TablesClient) Create(ctx context.Context, datasetID string, request *gcloud.TableCreateRequest) (*gcloud.Table, error) {
	resp, err := c.client.execute(ctx, false, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Post(ctx, tablesPath(datasetID), request)
	})
	if err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}

	var table gcloud.Table
	if err := json.Unmarshal(resp.Body, &table); err != nil {
		return nil, fmt.Errorf("parsing table response: %w", err)
	}

	return &table, nil
}

// Get implements the Get operation for tables. A missing table yields
// (nil, nil).
func (c *TablesClient) Get(ctx context.Context, datasetID, tableID string, opts *gcloud.GetOptions) (*gcloud.Table, error) {
	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Get(ctx, tablePath(datasetID, tableID), opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting table %s.%s: %w", datasetID, tableID, err)
	}

	var table gcloud.Table
	if err := json.Unmarshal(resp.Body, &table); err != nil {
		return nil, fmt.Errorf("parsing table response: %w", err)
	}

	return &table, nil
}

// Exists reports whether the table exists.
func (c *TablesClient) Exists(ctx context.Context, datasetID, tableID string) (bool, error) {
	table, err := c.Get(ctx, datasetID, tableID, &gcloud.GetOptions{Fields: []string{"id"}})
	if err != nil {
		return false, err
	}

	return table != nil, nil
}

// List implements the List operation for tables.
func (c *TablesClient) List(ctx context.Context, datasetID string, opts *gcloud.ListOptions) *gcloud.PageIterator[gcloud.Table] {
	fetch := func(ctx context.Context, pageToken string) (*gcloud.Page[gcloud.Table], error) {
		resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
			return c.client.httpClient.Get(ctx, tablesPath(datasetID), pageOptions(opts, pageToken).ToValues())
		})
		if err != nil {
			return nil, fmt.Errorf("listing tables: %w", err)
		}

		return decodePage[gcloud.Table](resp.Body)
	}

	return gcloud.NewPageIterator(ctx, fetch)
}

// Update implements the Update operation for tables.
func (c *TablesClient) Update(ctx context.Context, datasetID, tableID string, request *gcloud.TableUpdateRequest, opts *gcloud.UpdateOptions) (*gcloud.Table, error) {
	req := &internalhttp.Request{
		Method: http.MethodPatch,
		Path:   tablePath(datasetID, tableID),
		Query:  opts.ToValues(),
		Body:   request,
	}

	resp, err := c.client.execute(ctx, opts.Precondition(), func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Do(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("updating table %s.%s: %w", datasetID, tableID, err)
	}

	var table gcloud.Table
	if err := json.Unmarshal(resp.Body, &table); err != nil {
		return nil, fmt.Errorf("parsing table response: %w", err)
	}

	return &table, nil
}

// Delete implements the Delete operation for tables. It returns (false, nil)
// when the table is already gone.
func (c *TablesClient) Delete(ctx context.Context, datasetID, tableID string, opts *gcloud.DeleteOptions) (bool, error) {
	_, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Delete(ctx, tablePath(datasetID, tableID), opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("deleting table %s.%s: %w", datasetID, tableID, err)
	}

	return true, nil
}
