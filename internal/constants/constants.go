package constants

import "time"

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Transport retry limits. These shape the opt-in transport-level retry; the
// typed retry loop in pkg/gcloud has its own policy.
const (
	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency and batching limits.
const (
	// DefaultBatchConcurrency bounds batch fan-out.
	DefaultBatchConcurrency = 5
)

// API paths.
const (
	APIPathDatasets   = "/v1/datasets"
	APIPathJobs       = "/v1/jobs"
	APIPathBuckets    = "/v1/buckets"
	APIPathZones      = "/v1/zones"
	APIPathOperations = "/v1/operations"
)

// DefaultUserAgent identifies the client on the wire.
const DefaultUserAgent = "gcloud-go/1.0"
