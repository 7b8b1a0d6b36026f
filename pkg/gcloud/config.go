package gcloud

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries everything needed to construct a client.
type Config struct {
	// Endpoint is the base URL of the service API.
	Endpoint string `yaml:"endpoint"`
	// Token is a static bearer token attached to every request. Leave
	// empty for unauthenticated access.
	Token string `yaml:"token,omitempty"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// RetryPolicy bounds the typed retry loop wrapped around every RPC.
	// The zero value selects DefaultRetryPolicy.
	RetryPolicy RetryPolicy `yaml:"retry,omitempty"`
	// RetryableCodes overrides the status codes considered retryable.
	RetryableCodes []int `yaml:"retryable_codes,omitempty"`

	// TransportRetryMax enables transport-level retry (on top of the typed
	// loop) when positive; zero leaves it off.
	TransportRetryMax int           `yaml:"transport_retry_max,omitempty"`
	TransportWaitMin  time.Duration `yaml:"transport_wait_min,omitempty"`
	TransportWaitMax  time.Duration `yaml:"transport_wait_max,omitempty"`

	// PollInterval and PollTimeout shape the default wait policy used by
	// the operation and job pollers.
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
	PollTimeout  time.Duration `yaml:"poll_timeout,omitempty"`

	// BatchConcurrency bounds batch fan-out.
	BatchConcurrency int `yaml:"batch_concurrency,omitempty"`

	// Logger receives structured client logs. Nil disables logging.
	Logger Logger `yaml:"-"`
	// Debug additionally logs every request and response.
	Debug bool `yaml:"debug,omitempty"`
}

// Validate checks the config for construction.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	if c.Endpoint == "" {
		return ErrEndpointRequired
	}

	if c.RetryPolicy != (RetryPolicy{}) {
		if err := c.RetryPolicy.Validate(); err != nil {
			return err
		}
	}

	if c.PollInterval < 0 || c.PollTimeout < 0 {
		return fmt.Errorf("%w: poll interval and timeout must be >= 0", ErrInvalidPolicy)
	}

	return nil
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &config, nil
}
