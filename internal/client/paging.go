package client

import (
	"encoding/json"
	"fmt"

	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

// listEnvelope is the wire shape of every listing response.
type listEnvelope[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// decodePage parses one listing response body into a page.
func decodePage[T any](body []byte) (*gcloud.Page[T], error) {
	var envelope listEnvelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return &gcloud.Page[T]{
		Items:         envelope.Items,
		NextPageToken: envelope.NextPageToken,
	}, nil
}

// pageOptions resumes the caller's list options from a cursor. The first page
// keeps the options untouched so a caller-supplied PageToken is honored.
func pageOptions(opts *gcloud.ListOptions, pageToken string) *gcloud.ListOptions {
	if pageToken == "" {
		return opts
	}

	return opts.WithPageToken(pageToken)
}
