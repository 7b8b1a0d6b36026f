package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

func TestBlobsClient_GetWithGeneration(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/buckets/media/blobs/cat.png", request.URL.Path)
		assert.Equal(t, "3", request.URL.Query().Get("generation"))

		writeJSON(t, writer, http.StatusOK, gcloud.Blob{
			Resource:   gcloud.Resource{ID: "blob-1"},
			Bucket:     "media",
			Name:       "cat.png",
			Generation: 3,
		})
	}))

	blob, err := built.Blobs().Get(context.Background(), "media", "cat.png", &gcloud.GetOptions{Generation: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), blob.Generation)
}

func TestBlobsClient_DeleteWithGenerationPrecondition(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "2", request.URL.Query().Get("ifGenerationMatch"))
		writer.WriteHeader(http.StatusNoContent)
	}))

	deleted, err := built.Blobs().Delete(context.Background(), "media", "cat.png", &gcloud.DeleteOptions{IfGenerationMatch: 2})
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestBlobsClient_BatchAgainstServer(t *testing.T) {
	t.Parallel()

	contentType := "image/png"

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.Method == http.MethodGet && request.URL.Path == "/v1/buckets/media/blobs/a.png":
			writeJSON(t, writer, http.StatusOK, gcloud.Blob{
				Resource: gcloud.Resource{ID: "blob-a"},
				Bucket:   "media",
				Name:     "a.png",
			})
		case request.Method == http.MethodGet && request.URL.Path == "/v1/buckets/media/blobs/missing.png":
			writeServiceError(t, writer, http.StatusNotFound, "blob not found")
		case request.Method == http.MethodPatch && request.URL.Path == "/v1/buckets/media/blobs/b.png":
			writeJSON(t, writer, http.StatusOK, gcloud.Blob{
				Resource:    gcloud.Resource{ID: "blob-b"},
				Bucket:      "media",
				Name:        "b.png",
				ContentType: contentType,
			})
		case request.Method == http.MethodDelete && request.URL.Path == "/v1/buckets/media/blobs/c.png":
			writer.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
		}
	}))

	request := gcloud.NewBatchRequest[gcloud.BlobUpdateRequest]().
		AddGet("a.png", nil).
		AddGet("missing.png", nil).
		AddUpdate("b.png", &gcloud.BlobUpdateRequest{ContentType: &contentType}, nil).
		AddDelete("c.png", nil)

	response, err := built.Blobs().Batch("media").Execute(context.Background(), request)
	require.NoError(t, err)

	require.Len(t, response.Gets, 2)
	assert.True(t, response.Gets[0].Succeeded())
	assert.Equal(t, "a.png", response.Gets[0].Value.Name)
	assert.True(t, response.Gets[1].Succeeded())
	assert.Nil(t, response.Gets[1].Value)

	require.Len(t, response.Updates, 1)
	assert.Equal(t, contentType, response.Updates[0].Value.ContentType)

	require.Len(t, response.Deletes, 1)
	assert.True(t, response.Deletes[0].Value)
}

func TestBucketsClient_CreateAndExists(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case http.MethodPost:
			assert.Equal(t, "/v1/buckets", request.URL.Path)
			writeJSON(t, writer, http.StatusCreated, gcloud.Bucket{
				Resource: gcloud.Resource{ID: "b-1"},
				Name:     "media",
			})
		case http.MethodGet:
			assert.Equal(t, "/v1/buckets/media", request.URL.Path)
			writeJSON(t, writer, http.StatusOK, gcloud.Bucket{
				Resource: gcloud.Resource{ID: "b-1"},
				Name:     "media",
			})
		default:
			t.Errorf("unexpected method %s", request.Method)
		}
	}))

	bucket, err := built.Buckets().Create(context.Background(), &gcloud.BucketCreateRequest{Name: "media"})
	require.NoError(t, err)
	assert.Equal(t, "media", bucket.Name)

	exists, err := built.Buckets().Exists(context.Background(), "media")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTablesClient_Get(t *testing.T) {
	t.Parallel()

	built := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/datasets/sales/tables/orders", request.URL.Path)

		writeJSON(t, writer, http.StatusOK, gcloud.Table{
			Resource:  gcloud.Resource{ID: "t-1"},
			DatasetID: "sales",
			Name:      "orders",
			Schema: []gcloud.TableColumn{
				{Name: "order_id", Type: "STRING"},
			},
		})
	}))

	table, err := built.Tables().Get(context.Background(), "sales", "orders", nil)
	require.NoError(t, err)
	assert.Equal(t, "orders", table.Name)
	require.Len(t, table.Schema, 1)
	assert.Equal(t, "order_id", table.Schema[0].Name)
}
