package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/MyNextID/cvc-go/pkg/cvc/jwk"
	"github.com/MyNextID/cvc-go/pkg/cvc/logging"
	"github.com/MyNextID/cvc-go/pkg/cvc/provider"
)

// maxResponseSize bounds provider response bodies.
const maxResponseSize = 4 << 20

// ClientConfig configures the HTTP client used to reach the provider.
type ClientConfig struct {
	// RetryMax is the number of retries on connection errors and 5xx
	// responses (default 3). Negative disables retries.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between attempts.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// Timeout bounds a single attempt (default 15s).
	Timeout time.Duration
}

// ProviderClient calls the wallet-provider HTTP API.
type ProviderClient struct {
	client *retryablehttp.Client
}

// NewProviderClient returns a client with retries and leveled logging.
func NewProviderClient(cfg ClientConfig, logger logging.Logger) *ProviderClient {
	if logger == nil {
		logger = logging.Nop()
	}
	c := retryablehttp.NewClient()
	switch {
	case cfg.RetryMax < 0:
		c.RetryMax = 0
	case cfg.RetryMax > 0:
		c.RetryMax = cfg.RetryMax
	}
	if cfg.RetryWaitMin > 0 {
		c.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		c.RetryWaitMax = cfg.RetryWaitMax
	}
	c.HTTPClient.Timeout = 15 * time.Second
	if cfg.Timeout > 0 {
		c.HTTPClient.Timeout = cfg.Timeout
	}
	c.Logger = leveledLogger{logger.With("component", "provider-client")}
	c.ErrorHandler = lastResponse
	return &ProviderClient{client: c}
}

// lastResponse returns the final response once retries are exhausted so
// the provider's error body reaches the caller.
func lastResponse(resp *http.Response, err error, attempts int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, fmt.Errorf("%w (%d attempts)", err, attempts)
}

// PublicKeys posts hashes to url (POST /v1/public-keys).
func (c *ProviderClient) PublicKeys(ctx context.Context, url string, hashes []string) (map[string]provider.KeyData, error) {
	body, err := json.Marshal(hashes)
	if err != nil {
		return nil, err
	}
	var out map[string]provider.KeyData
	if err := c.post(ctx, url, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SecretKey requests the private key for keyID and hash (POST /v1/secret-keys).
func (c *ProviderClient) SecretKey(ctx context.Context, url, keyID, hash string) (*jose.JSONWebKey, error) {
	body, err := json.Marshal(provider.SecretKeyRequest{KeyID: keyID, Hash: hash})
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.post(ctx, url, body, &raw); err != nil {
		return nil, err
	}
	return jwk.Parse(raw)
}

func (c *ProviderClient) post(ctx context.Context, url string, body []byte, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("issuer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("issuer: call provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("issuer: read provider response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &ProviderError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("issuer: decode provider response: %w", err)
	}
	return nil
}

// ProviderError is returned for non-200 provider responses.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("issuer: provider returned %d: %s", e.StatusCode, e.Body)
}

// leveledLogger adapts logging.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger logging.Logger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.logger.Error(context.Background(), msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.logger.Info(context.Background(), msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.logger.Debug(context.Background(), msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.logger.Warn(context.Background(), msg, kv...) }
