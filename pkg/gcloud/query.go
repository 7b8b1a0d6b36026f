package gcloud

import (
	"net/url"
	"strconv"
	"strings"
)

// ListOptions are the recognized options of a listing call. Options are
// immutable per list invocation: changing the filter requires starting a new
// iteration.
type ListOptions struct {
	// PageSize caps the number of items per page. Zero lets the service
	// choose.
	PageSize int
	// PageToken resumes iteration from a previous page's cursor.
	PageToken string
	// Filter is a service-side filter expression.
	Filter string
	// Fields restricts which fields each returned record carries.
	Fields []string
}

// ToValues encodes the options as URL query parameters.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}

	if o == nil {
		return values
	}

	if o.PageSize > 0 {
		values.Set("maxResults", strconv.Itoa(o.PageSize))
	}

	if o.PageToken != "" {
		values.Set("pageToken", o.PageToken)
	}

	if o.Filter != "" {
		values.Set("filter", o.Filter)
	}

	if len(o.Fields) > 0 {
		values.Set("fields", strings.Join(o.Fields, ","))
	}

	return values
}

// WithPageToken returns a copy of the options carrying the given cursor. The
// receiver is left untouched.
func (o *ListOptions) WithPageToken(token string) *ListOptions {
	var copied ListOptions
	if o != nil {
		copied = *o
	}

	copied.PageToken = token

	return &copied
}

// GetOptions are the recognized options of a single-record fetch.
type GetOptions struct {
	// Fields restricts which fields the returned record carries. A
	// status-only fetch is how the operation poller keeps checks cheap.
	Fields []string
	// Generation pins the fetch to one payload version (blobs only).
	Generation int64
}

// ToValues encodes the options as URL query parameters.
func (o *GetOptions) ToValues() url.Values {
	values := url.Values{}

	if o == nil {
		return values
	}

	if len(o.Fields) > 0 {
		values.Set("fields", strings.Join(o.Fields, ","))
	}

	if o.Generation > 0 {
		values.Set("generation", strconv.FormatInt(o.Generation, 10))
	}

	return values
}

// UpdateOptions are the recognized options of a mutation. Preconditions are
// passed through to the service unmodified; a precondition mismatch is
// surfaced as a non-retryable error, never silently retried.
type UpdateOptions struct {
	// IfGenerationMatch makes the update conditional on the current
	// generation (blobs only).
	IfGenerationMatch int64
	// IfEtagMatch makes the update conditional on the current etag.
	IfEtagMatch string
}

// ToValues encodes the options as URL query parameters.
func (o *UpdateOptions) ToValues() url.Values {
	values := url.Values{}

	if o == nil {
		return values
	}

	if o.IfGenerationMatch > 0 {
		values.Set("ifGenerationMatch", strconv.FormatInt(o.IfGenerationMatch, 10))
	}

	if o.IfEtagMatch != "" {
		values.Set("ifEtagMatch", o.IfEtagMatch)
	}

	return values
}

// Precondition reports whether the update carries any precondition. A
// preconditioned mutation is safe to replay after an ambiguous failure.
func (o *UpdateOptions) Precondition() bool {
	return o != nil && (o.IfGenerationMatch > 0 || o.IfEtagMatch != "")
}

// DeleteOptions are the recognized options of a deletion.
type DeleteOptions struct {
	// IfGenerationMatch makes the delete conditional on the current
	// generation (blobs only).
	IfGenerationMatch int64
	// DeleteContents also removes contained resources (datasets, buckets).
	DeleteContents bool
}

// ToValues encodes the options as URL query parameters.
func (o *DeleteOptions) ToValues() url.Values {
	values := url.Values{}

	if o == nil {
		return values
	}

	if o.IfGenerationMatch > 0 {
		values.Set("ifGenerationMatch", strconv.FormatInt(o.IfGenerationMatch, 10))
	}

	if o.DeleteContents {
		values.Set("deleteContents", "true")
	}

	return values
}
