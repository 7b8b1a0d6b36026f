package client_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

func TestJobsClient_Insert(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/v1/jobs", request.URL.Path)

		writeJSON(t, writer, http.StatusCreated, gcloud.Job{
			Resource: gcloud.Resource{ID: "job-1"},
			Type:     "query",
			Status:   gcloud.JobStatus{State: gcloud.JobStatePending},
		})
	}))

	job, err := built.Jobs().Insert(context.Background(), &gcloud.JobCreateRequest{Type: "query"})
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, gcloud.JobStatePending, job.Status.State)
	assert.False(t, job.Status.Done())
}

func TestJobsClient_PollUntilDone(t *testing.T) {
	t.Parallel()

	var polls int32

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/jobs/job-1", request.URL.Path)

		state := gcloud.JobStateRunning
		if atomic.AddInt32(&polls, 1) >= 3 {
			state = gcloud.JobStateDone
		}

		writeJSON(t, writer, http.StatusOK, gcloud.Job{
			Resource: gcloud.Resource{ID: "job-1"},
			Type:     "load",
			Status:   gcloud.JobStatus{State: state},
		})
	}))

	job, err := built.Jobs().PollUntilDone(context.Background(), "job-1", gcloud.WaitPolicy{})
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.True(t, job.Status.Done())
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
}

func TestJobsClient_PollUntilDoneSurfacesFailure(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusOK, gcloud.Job{
			Resource: gcloud.Resource{ID: "job-1"},
			Type:     "load",
			Status: gcloud.JobStatus{
				State:       gcloud.JobStateDone,
				ErrorResult: &gcloud.ErrorDetail{Reason: "invalid", Message: "bad source file"},
			},
		})
	}))

	job, err := built.Jobs().PollUntilDone(context.Background(), "job-1", gcloud.WaitPolicy{})
	require.ErrorIs(t, err, gcloud.ErrJobFailed)
	// The final snapshot still comes back alongside the error.
	require.NotNil(t, job)
	require.NotNil(t, job.Status.ErrorResult)
	assert.Equal(t, "invalid", job.Status.ErrorResult.Reason)
}

func TestJobsClient_PollUntilDoneTimeout(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusOK, gcloud.Job{
			Resource: gcloud.Resource{ID: "job-1"},
			Status:   gcloud.JobStatus{State: gcloud.JobStateRunning},
		})
	}))

	policy, err := gcloud.NewWaitPolicy(
		gcloud.CheckEvery(time.Millisecond),
		gcloud.Timeout(20*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = built.Jobs().PollUntilDone(context.Background(), "job-1", policy)

	var timeoutErr *gcloud.WaitTimeoutError

	require.ErrorAs(t, err, &timeoutErr)
}

func TestJobsClient_PollUntilDoneVanishedJob(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeServiceError(t, writer, http.StatusNotFound, "job not found")
	}))

	job, err := built.Jobs().PollUntilDone(context.Background(), "job-1", gcloud.WaitPolicy{})
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestJobsClient_Cancel(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/v1/jobs/job-1/cancel", request.URL.Path)
		writer.WriteHeader(http.StatusOK)
	}))

	cancelled, err := built.Jobs().Cancel(context.Background(), "job-1")
	require.NoError(t, err)
	assert.True(t, cancelled)
}

func TestJobsClient_CancelMissingReturnsFalse(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeServiceError(t, writer, http.StatusNotFound, "job not found")
	}))

	cancelled, err := built.Jobs().Cancel(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, cancelled)
}
