// Package twilio downloads inbound WhatsApp media from Twilio.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"health-assistant/internal/integrations/paramstore"
)

// MaxMediaBytes caps a single attachment download.
const MaxMediaBytes = 5 << 20

var ErrMediaTooLarge = errors.New("twilio: media exceeds size limit")

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// credentials is the JSON document stored at <prefix>/twilio.
type credentials struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
}

// HTTPStatusError reports a non-2xx media response.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("twilio: unexpected status %d from %s", e.StatusCode, e.URL)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// MediaClient fetches media URLs with HTTP basic auth using the account
// credentials. Twilio answers media URLs with a redirect to signed storage;
// the default client follows it.
type MediaClient struct {
	httpClient  *http.Client
	getter      Getter
	paramPrefix string
	maxBytes    int64

	credOnce sync.Once
	creds    credentials
	credErr  error
}

type Option func(*MediaClient)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *MediaClient) {
		c.httpClient = httpClient
	}
}

func WithMaxBytes(n int64) Option {
	return func(c *MediaClient) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

func NewMediaClient(ps Getter, paramPrefix string, opts ...Option) (*MediaClient, error) {
	if ps == nil {
		return nil, errors.New("twilio: paramstore getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("twilio: parameter prefix must not be empty")
	}
	c := &MediaClient{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		getter:      ps,
		paramPrefix: paramPrefix,
		maxBytes:    MaxMediaBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *MediaClient) resolveCredentials(ctx context.Context) (credentials, error) {
	c.credOnce.Do(func() {
		var cr credentials
		if err := paramstore.DecodeJSON(ctx, c.getter, c.paramPrefix+"/twilio", &cr); err != nil {
			c.credErr = fmt.Errorf("twilio: fetch credentials from paramstore: %w", err)
			return
		}
		if cr.AccountSID == "" || cr.AuthToken == "" {
			c.credErr = errors.New("twilio: account_sid and auth_token are required")
			return
		}
		c.creds = cr
	})
	return c.creds, c.credErr
}

// Fetch downloads url and returns its Content-Type header and body.
func (c *MediaClient) Fetch(ctx context.Context, url string) (string, []byte, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", nil, errors.New("twilio: media url is required")
	}
	creds, err := c.resolveCredentials(ctx)
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("twilio: create request: %w", err)
	}
	req.SetBasicAuth(creds.AccountSID, creds.AuthToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("twilio: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return "", nil, &HTTPStatusError{StatusCode: res.StatusCode, URL: url}
	}
	if res.ContentLength > c.maxBytes {
		return "", nil, ErrMediaTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, c.maxBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("twilio: read media body: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return "", nil, ErrMediaTooLarge
	}
	return res.Header.Get("Content-Type"), data, nil
}
