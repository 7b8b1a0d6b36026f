// Package client implements the gcloud.Client interface over the HTTP
// transport. Every resource client issues its RPCs through the typed retry
// loop with the operation's idempotency declared at the call site.
package client

import (
	"context"

	"github.com/mziccard/gcloud-go/internal/constants"
	internalhttp "github.com/mziccard/gcloud-go/internal/http"
	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

// Client implements the gcloud.Client interface.
type Client struct {
	httpClient       *internalhttp.Client
	retry            gcloud.RetryPolicy
	classifier       *gcloud.Classifier
	waitPolicy       gcloud.WaitPolicy
	batchConcurrency int

	datasets   gcloud.DatasetsClient
	tables     gcloud.TablesClient
	jobs       gcloud.JobsClient
	buckets    gcloud.BucketsClient
	blobs      gcloud.BlobsClient
	instances  gcloud.InstancesClient
	zones      gcloud.ZonesClient
	operations gcloud.OperationsClient
}

// New creates a client from a validated config.
func New(config *gcloud.Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var tokens internalhttp.TokenProvider
	if config.Token != "" {
		tokens = &staticTokenProvider{token: config.Token}
	}

	httpOpts := buildHTTPOptions(config)
	httpClient := internalhttp.NewClient(config.Endpoint, tokens, httpOpts...)

	retry := config.RetryPolicy
	if retry == (gcloud.RetryPolicy{}) {
		retry = gcloud.DefaultRetryPolicy()
	}

	classifier := gcloud.NewClassifier(config.RetryableCodes...)

	waitOpts := []gcloud.WaitOption{}
	if config.PollInterval > 0 {
		waitOpts = append(waitOpts, gcloud.CheckEvery(config.PollInterval))
	}

	if config.PollTimeout > 0 {
		waitOpts = append(waitOpts, gcloud.Timeout(config.PollTimeout))
	}

	waitPolicy, err := gcloud.NewWaitPolicy(waitOpts...)
	if err != nil {
		return nil, err
	}

	batchConcurrency := config.BatchConcurrency
	if batchConcurrency <= 0 {
		batchConcurrency = constants.DefaultBatchConcurrency
	}

	client := &Client{
		httpClient:       httpClient,
		retry:            retry,
		classifier:       classifier,
		waitPolicy:       waitPolicy,
		batchConcurrency: batchConcurrency,
	}

	client.initializeResourceClients()

	return client, nil
}

// buildHTTPOptions translates config into transport options.
func buildHTTPOptions(config *gcloud.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(&loggerAdapter{logger: config.Logger}))

		chain := gcloud.NewInterceptorChain()
		chain.AddRequestInterceptor(gcloud.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(gcloud.LoggingResponseInterceptor(config.Logger))
		httpOpts = append(httpOpts, internalhttp.WithInterceptors(chain))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.TransportRetryMax > 0 {
		waitMin := config.TransportWaitMin
		if waitMin <= 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.TransportWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.TransportRetryMax, waitMin, waitMax))
	}

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.datasets = NewDatasetsClient(c)
	c.tables = NewTablesClient(c)
	c.jobs = NewJobsClient(c)
	c.buckets = NewBucketsClient(c)
	c.blobs = NewBlobsClient(c)
	c.instances = NewInstancesClient(c)
	c.zones = NewZonesClient(c)
	c.operations = NewOperationsClient(c)
}

// Datasets implements gcloud.Client.Datasets.
func (c *Client) Datasets() gcloud.DatasetsClient {
	return c.datasets
}

// Tables implements gcloud.Client.Tables.
func (c *Client) Tables() gcloud.TablesClient {
	return c.tables
}

// Jobs implements gcloud.Client.Jobs.
func (c *Client) Jobs() gcloud.JobsClient {
	return c.jobs
}

// Buckets implements gcloud.Client.Buckets.
func (c *Client) Buckets() gcloud.BucketsClient {
	return c.buckets
}

// Blobs implements gcloud.Client.Blobs.
func (c *Client) Blobs() gcloud.BlobsClient {
	return c.blobs
}

// Instances implements gcloud.Client.Instances.
func (c *Client) Instances() gcloud.InstancesClient {
	return c.instances
}

// Zones implements gcloud.Client.Zones.
func (c *Client) Zones() gcloud.ZonesClient {
	return c.zones
}

// Operations implements gcloud.Client.Operations.
func (c *Client) Operations() gcloud.OperationsClient {
	return c.operations
}

// waitPolicyOr substitutes the client's configured wait policy for a zero
// policy.
func (c *Client) waitPolicyOr(policy gcloud.WaitPolicy) gcloud.WaitPolicy {
	if policy == (gcloud.WaitPolicy{}) {
		return c.waitPolicy
	}

	return policy
}

// execute wraps one transport call in the client's retry loop with the
// declared idempotency.
func (c *Client) execute(ctx context.Context, idempotent bool, call func(ctx context.Context) (*internalhttp.Response, error)) (*internalhttp.Response, error) {
	return gcloud.ExecuteWithClassifier(ctx, c.retry, idempotent, c.classifier, call)
}

// staticTokenProvider serves a fixed bearer token.
type staticTokenProvider struct {
	token string
}

func (p *staticTokenProvider) Token(ctx context.Context) (string, error) {
	return p.token, nil
}

// loggerAdapter adapts gcloud.Logger to the transport's Logger.
type loggerAdapter struct {
	logger gcloud.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
