package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mziccard/gcloud-go/internal/constants"
	internalhttp "github.com/mziccard/gcloud-go/internal/http"
	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

// JobsClient implements the gcloud.JobsClient interface.
type JobsClient struct {
	client *Client
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(client *Client) *JobsClient {
	return &JobsClient{client: client}
}

// Insert implements the Insert operation for jobs.
func (c *JobsClient) Insert(ctx context.Context, request *gcloud.JobCreateRequest) (*gcloud.Job, error) {
	resp, err := c.client.execute(ctx, false, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Post(ctx, constants.APIPathJobs, request)
	})
	if err != nil {
		return nil, fmt.Errorf("inserting job: %w", err)
	}

	var job gcloud.Job
	if err := json.Unmarshal(resp.Body, &job); err != nil {
		return nil, fmt.Errorf("parsing job response: %w", err)
	}

	return &job, nil
}

// Get implements the Get operation for jobs. A missing job yields (nil, nil).
func (c *JobsClient) Get(ctx context.Context, id string, opts *gcloud.GetOptions) (*gcloud.Job, error) {
	path := constants.APIPathJobs + "/" + id

	resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Get(ctx, path, opts.ToValues())
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting job %s: %w", id, err)
	}

	var job gcloud.Job
	if err := json.Unmarshal(resp.Body, &job); err != nil {
		return nil, fmt.Errorf("parsing job response: %w", err)
	}

	return &job, nil
}

// List implements the List operation for jobs.
func (c *JobsClient) List(ctx context.Context, opts *gcloud.ListOptions) *gcloud.PageIterator[gcloud.Job] {
	fetch := func(ctx context.Context, pageToken string) (*gcloud.Page[gcloud.Job], error) {
		resp, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
			return c.client.httpClient.Get(ctx, constants.APIPathJobs, pageOptions(opts, pageToken).ToValues())
		})
		if err != nil {
			return nil, fmt.Errorf("listing jobs: %w", err)
		}

		return decodePage[gcloud.Job](resp.Body)
	}

	return gcloud.NewPageIterator(ctx, fetch)
}

// Cancel requests cancellation of a running job. It returns (false, nil) when
// the job does not exist. Cancellation is asynchronous: a true return means
// the request was accepted, not that the job already stopped.
func (c *JobsClient) Cancel(ctx context.Context, id string) (bool, error) {
	path := constants.APIPathJobs + "/" + id + "/cancel"

	_, err := c.client.execute(ctx, true, func(ctx context.Context) (*internalhttp.Response, error) {
		return c.client.httpClient.Post(ctx, path, nil)
	})
	if err != nil {
		if gcloud.IsNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("cancelling job %s: %w", id, err)
	}

	return true, nil
}

// PollUntilDone blocks until the job reaches DONE or the policy's timeout
// expires. A job that finished with an error result returns the final
// snapshot wrapped with gcloud.ErrJobFailed. A job that vanished mid-poll
// yields (nil, nil).
func (c *JobsClient) PollUntilDone(ctx context.Context, id string, policy gcloud.WaitPolicy) (*gcloud.Job, error) {
	policy = c.client.waitPolicyOr(policy)
	start := time.Now()

	for {
		job, err := c.Get(ctx, id, nil)
		if err != nil {
			return nil, err
		}

		if job == nil {
			return nil, nil
		}

		if job.Status.Done() {
			if job.Status.Failed() {
				return job, fmt.Errorf("job %s: %w", id, gcloud.ErrJobFailed)
			}

			return job, nil
		}

		if policy.Timeout() > 0 && time.Since(start) >= policy.Timeout() {
			return nil, &gcloud.WaitTimeoutError{Timeout: policy.Timeout()}
		}

		timer := time.NewTimer(policy.CheckInterval())
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
