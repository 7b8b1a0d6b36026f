package gcloud

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: ErrConfigRequired,
		},
		{
			name:    "missing endpoint",
			config:  &Config{},
			wantErr: ErrEndpointRequired,
		},
		{
			name:    "endpoint only",
			config:  &Config{Endpoint: "https://api.example.com"},
			wantErr: nil,
		},
		{
			name: "invalid retry policy",
			config: &Config{
				Endpoint:    "https://api.example.com",
				RetryPolicy: RetryPolicy{MaxAttempts: -1, Multiplier: 2.0},
			},
			wantErr: ErrInvalidPolicy,
		},
		{
			name: "negative poll interval",
			config: &Config{
				Endpoint:     "https://api.example.com",
				PollInterval: -time.Second,
			},
			wantErr: ErrInvalidPolicy,
		},
		{
			name: "full config",
			config: &Config{
				Endpoint:         "https://api.example.com",
				Token:            "secret",
				RetryPolicy:      DefaultRetryPolicy(),
				RetryableCodes:   []int{429, 503},
				PollInterval:     time.Second,
				PollTimeout:      time.Minute,
				BatchConcurrency: 8,
			},
			wantErr: nil,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.config.Validate()
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	content := `endpoint: https://api.example.com
token: secret-token
user_agent: custom-agent/2.0
retry:
  max_attempts: 3
  base_delay: 100ms
  max_delay: 2s
  multiplier: 1.5
retryable_codes: [429, 503]
poll_interval: 250ms
poll_timeout: 5m
batch_concurrency: 10
debug: true
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", config.Endpoint)
	assert.Equal(t, "secret-token", config.Token)
	assert.Equal(t, "custom-agent/2.0", config.UserAgent)
	assert.Equal(t, 3, config.RetryPolicy.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, config.RetryPolicy.BaseDelay)
	assert.Equal(t, 2*time.Second, config.RetryPolicy.MaxDelay)
	assert.InDelta(t, 1.5, config.RetryPolicy.Multiplier, 0.001)
	assert.Equal(t, []int{429, 503}, config.RetryableCodes)
	assert.Equal(t, 250*time.Millisecond, config.PollInterval)
	assert.Equal(t, 5*time.Minute, config.PollTimeout)
	assert.Equal(t, 10, config.BatchConcurrency)
	assert.True(t, config.Debug)

	require.NoError(t, config.Validate())
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: [unterminated"), 0o600))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
}
