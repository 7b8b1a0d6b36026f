package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

func TestInstancesClient_CreateReturnsOperation(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/v1/zones/us-east1-a/instances", request.URL.Path)

		var body gcloud.InstanceCreateRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "web-1", body.Name)

		writeJSON(t, writer, http.StatusAccepted, gcloud.Operation{
			Name:          "op-create-1",
			OperationType: "insert",
			TargetLink:    "/v1/zones/us-east1-a/instances/web-1",
			Status:        gcloud.StatusPending,
		})
	}))

	op, err := built.Instances().Create(context.Background(), "us-east1-a", &gcloud.InstanceCreateRequest{
		Name:        "web-1",
		MachineType: "n1-standard-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "op-create-1", op.Name)
	assert.Equal(t, gcloud.StatusPending, op.Status)
}

func TestInstancesClient_Get(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/zones/us-east1-a/instances/web-1", request.URL.Path)

		writeJSON(t, writer, http.StatusOK, gcloud.Instance{
			Resource:    gcloud.Resource{ID: "inst-1"},
			Zone:        "us-east1-a",
			Name:        "web-1",
			MachineType: "n1-standard-1",
			Status:      "RUNNING",
		})
	}))

	instance, err := built.Instances().Get(context.Background(), "us-east1-a", "web-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "web-1", instance.Name)
	assert.Equal(t, "RUNNING", instance.Status)
}

func TestInstancesClient_DeleteMissingReturnsNil(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeServiceError(t, writer, http.StatusNotFound, "instance not found")
	}))

	op, err := built.Instances().Delete(context.Background(), "us-east1-a", "gone")
	require.NoError(t, err)
	assert.Nil(t, op)
}

func TestInstancesClient_CreateThenWait(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/v1/zones/us-east1-a/instances":
			writeJSON(t, writer, http.StatusAccepted, gcloud.Operation{
				Name:   "op-create-2",
				Status: gcloud.StatusPending,
			})
		case "/v1/operations/op-create-2":
			writeJSON(t, writer, http.StatusOK, gcloud.Operation{
				Name:     "op-create-2",
				Status:   gcloud.StatusDone,
				TargetID: "inst-2",
			})
		default:
			t.Errorf("unexpected path %q", request.URL.Path)
		}
	}))

	op, err := built.Instances().Create(context.Background(), "us-east1-a", &gcloud.InstanceCreateRequest{
		Name:        "web-2",
		MachineType: "n1-standard-1",
	})
	require.NoError(t, err)

	final, err := built.Operations().Wait(context.Background(), op.Name, gcloud.WaitPolicy{})
	require.NoError(t, err)
	assert.Equal(t, gcloud.StatusDone, final.Status)
	assert.Equal(t, "inst-2", final.TargetID)
}

func TestZonesClient_List(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/zones", request.URL.Path)

		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"items": []gcloud.Zone{
				{Resource: gcloud.Resource{ID: "z-1"}, Name: "us-east1-a", Region: "us-east1"},
				{Resource: gcloud.Resource{ID: "z-2"}, Name: "us-east1-b", Region: "us-east1"},
			},
		})
	}))

	zones, err := built.Zones().List(context.Background(), nil).All()
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "us-east1-a", zones[0].Name)
}
