package iyzipay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexbotov/iyzipay-go/internal/auth"
	"github.com/alexbotov/iyzipay-go/internal/canonical"
	"github.com/alexbotov/iyzipay-go/internal/rng"
)

const (
	ClientTitle   = "iyzipay-go"
	ClientVersion = "1.0.0"

	DefaultBaseURL = "https://sandbox-api.iyzipay.com"
	DefaultTimeout = 14 * time.Second
)

var (
	ErrMissingCredentials = errors.New("api key and secret key are required")
	ErrNilRequest         = errors.New("request is required")
)

// NonceSource supplies per-request nonces. The default draws from crypto/rand.
type NonceSource interface {
	NonceV1() (string, error)
	NonceV2() (string, error)
}

// ClientConfig holds the settings of a Client
type ClientConfig struct {
	BaseURL   string
	APIKey    string
	SecretKey string
	Timeout   time.Duration
	Logger    *slog.Logger
	Nonces    NonceSource
}

// Client is an iyzico API client
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	headers    *auth.Assembler
	logger     *slog.Logger
}

// NewClient creates a new iyzico API client. Redirects are never followed.
func NewClient(config *ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return NewClientWithHTTPClient(config, &http.Client{
		Timeout: config.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	})
}

// NewClientWithHTTPClient creates a new iyzico API client with a custom HTTP client
func NewClientWithHTTPClient(config *ClientConfig, httpClient *http.Client) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	nonces := config.Nonces
	if nonces == nil {
		nonces = rng.New()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		headers:    auth.NewAssembler(nonces, ClientTitle+"-"+ClientVersion),
		logger:     logger.With("component", "iyzipay"),
	}
}

// BaseURL returns the API root every request is sent to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

func (c *Client) credentials() (auth.Credentials, error) {
	if c.config.APIKey == "" || c.config.SecretKey == "" {
		return auth.Credentials{}, ErrMissingCredentials
	}
	return auth.Credentials{APIKey: c.config.APIKey, SecretKey: c.config.SecretKey}, nil
}

// doRequest sends a request signed with the IYZWS scheme. The canonical form
// of reqBody is signed and its JSON form is sent.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, reqBody interface{}, result resourceHolder) error {
	creds, err := c.credentials()
	if err != nil {
		return err
	}

	pki, err := canonical.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to canonicalize request: %w", err)
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	headers, err := c.headers.HeadersV1(creds, pki)
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	c.logger.Debug("signed request", "scheme", auth.SchemeV1, "method", method, "endpoint", endpoint, "pki", pki)

	return c.send(ctx, method, c.config.BaseURL+endpoint, bodyBytes, headers, result)
}

// doRequestQuery signs the canonical form of signed with the IYZWS scheme but
// sends no body. The envelope travels in query instead.
func (c *Client) doRequestQuery(ctx context.Context, method, endpoint string, query url.Values, signed interface{}, result resourceHolder) error {
	creds, err := c.credentials()
	if err != nil {
		return err
	}

	pki, err := canonical.Marshal(signed)
	if err != nil {
		return fmt.Errorf("failed to canonicalize request: %w", err)
	}

	headers, err := c.headers.HeadersV1(creds, pki)
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	uri := c.config.BaseURL + endpoint
	if encoded := query.Encode(); encoded != "" {
		uri += "?" + encoded
	}

	c.logger.Debug("signed request", "scheme", auth.SchemeV1, "method", method, "uri", uri, "pki", pki)

	return c.send(ctx, method, uri, nil, headers, result)
}

// doRequestV2 sends a request signed with the IYZWSv2 scheme. reqBody is
// sent and signed only for POST and PUT.
func (c *Client) doRequestV2(ctx context.Context, method, endpoint string, query url.Values, reqBody interface{}, result resourceHolder) error {
	creds, err := c.credentials()
	if err != nil {
		return err
	}

	uri := c.config.BaseURL + endpoint
	if encoded := query.Encode(); encoded != "" {
		uri += "?" + encoded
	}

	var bodyBytes []byte
	if reqBody != nil && (method == http.MethodPost || method == http.MethodPut) {
		bodyBytes, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	headers, err := c.headers.HeadersV2(creds, uri, string(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	c.logger.Debug("signed request", "scheme", auth.SchemeV2, "method", method, "uri", uri)

	return c.send(ctx, method, uri, bodyBytes, headers, result)
}

func (c *Client) send(ctx context.Context, method, uri string, body []byte, headers http.Header, result resourceHolder) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for name, values := range headers {
		for _, v := range values {
			req.Header.Set(name, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("response received",
		"method", method,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if err := json.Unmarshal(respBody, result); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	res := result.resource()
	if err := res.Err(); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.StatusCode = resp.StatusCode
		}
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return nil
}

// APITest checks connectivity. The endpoint is not authenticated.
func (c *Client) APITest(ctx context.Context) (*Resource, error) {
	headers := make(http.Header)
	headers.Set(auth.ClientVersionHeader, c.headers.ClientVersion())

	var resp Resource
	if err := c.send(ctx, http.MethodGet, c.config.BaseURL+"/payment/test", nil, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
