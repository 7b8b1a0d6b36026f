package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mziccard/gcloud-go/internal/client"
	"github.com/mziccard/gcloud-go/pkg/gcloud"
)

// newTestClient builds a client against a test server with fast retry and
// poll settings.
func newTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := &gcloud.Config{
		Endpoint: server.URL,
		Token:    "test-token",
		RetryPolicy: gcloud.RetryPolicy{
			MaxAttempts: 3,
			BaseDelay:   time.Millisecond,
			MaxDelay:    5 * time.Millisecond,
			Multiplier:  2.0,
		},
		PollInterval: time.Millisecond,
	}

	built, err := client.New(config)
	require.NoError(t, err)

	return built
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	require.NoError(t, json.NewEncoder(writer).Encode(body))
}

func writeServiceError(t *testing.T, writer http.ResponseWriter, code int, message string) {
	t.Helper()

	writeJSON(t, writer, code, map[string]interface{}{
		"error": gcloud.ErrorResponse{Code: code, Message: message},
	})
}
