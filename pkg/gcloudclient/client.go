// Package gcloudclient provides the main entry point for creating service clients.
package gcloudclient

import (
	"fmt"
	"strings"

	"github.com/mziccard/gcloud-go/internal/client"
	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

// New creates a new service client from the given config.
func New(config *gcloud.Config) (gcloud.Client, error) {
	if config == nil {
		return nil, gcloud.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, gcloud.ErrEndpointRequired
	}

	// Normalize endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithEndpoint creates an unauthenticated client against the given endpoint.
func NewWithEndpoint(endpoint string) (gcloud.Client, error) {
	return New(&gcloud.Config{Endpoint: endpoint})
}

// NewWithToken creates a client that authenticates with a fixed bearer token.
func NewWithToken(endpoint, token string) (gcloud.Client, error) {
	return New(&gcloud.Config{Endpoint: endpoint, Token: token})
}

// NewFromFile creates a new service client from a YAML config file.
func NewFromFile(path string) (gcloud.Client, error) {
	config, err := gcloud.LoadConfigFile(path)
	if err != nil {
		return nil, err
	}

	return New(config)
}
