package dataverse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	apiKeyHeader     = "X-Dataverse-key"
	defaultUserAgent = "dvexamples"
)

// Client represents a Dataverse API client
type Client struct {
	cfg        InstanceConfig
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new Dataverse client. No request is made; use
// TestConnection to verify the instance is reachable.
func NewClient(cfg InstanceConfig, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.BaseURL == nil {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	options := clientOptions{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	// Own copy of the base URL
	base := *cfg.BaseURL
	cfg.BaseURL = &base

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		userAgent:  options.userAgent,
		logger:     logger,
	}, nil
}

// newHTTPClient builds an HTTP client honouring the connect and read timeouts
func newHTTPClient(cfg InstanceConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   cfg.ConnectionTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.ResponseHeaderTimeout = cfg.ReadTimeout

	return &http.Client{Transport: transport}
}

// Config returns a copy of the instance configuration
func (c *Client) Config() InstanceConfig {
	cfg := c.cfg
	base := *c.cfg.BaseURL
	cfg.BaseURL = &base
	return cfg
}

// BaseURL returns the root address of the instance
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL.String()
}

// HasUnblockKey reports whether admin endpoints can be called
func (c *Client) HasUnblockKey() bool {
	return c.cfg.HasUnblockKey()
}

// endpointURL builds {base}/api/v{version}/{segments...}. Each segment is
// path-escaped; empty, "." and ".." segments and segments containing '/'
// are rejected so a caller value can never change the endpoint.
func (c *Client) endpointURL(segments ...string) (*url.URL, error) {
	elems := []string{"api", "v" + c.cfg.APIVersion}
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." || strings.Contains(seg, "/") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPathSegment, seg)
		}
		elems = append(elems, url.PathEscape(seg))
	}
	return c.cfg.BaseURL.JoinPath(elems...), nil
}

// doRequest performs an authenticated request and returns the raw "data"
// member of the response envelope.
func (c *Client) doRequest(ctx context.Context, method string, params url.Values, body []byte, segments ...string) ([]byte, error) {
	u, err := c.endpointURL(segments...)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", u.Path).
		Msg("Making Dataverse API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	status := gjson.GetBytes(respBody, "status").String()
	if resp.StatusCode < 200 || resp.StatusCode > 299 || (status != "" && status != "OK") {
		msg := gjson.GetBytes(respBody, "message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Body:       string(respBody),
		}
	}

	data := gjson.GetBytes(respBody, "data")
	if !data.Exists() {
		return nil, nil
	}
	return []byte(data.Raw), nil
}

// decodeData unmarshals the data member into v
func decodeData(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("response has no data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// TestConnection tests the connection to the instance
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.GetVersion(ctx)
	return err
}

// GetVersion retrieves the server version
func (c *Client) GetVersion(ctx context.Context) (*VersionInfo, error) {
	data, err := c.doRequest(ctx, http.MethodGet, nil, nil, "info", "version")
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	var info VersionInfo
	if err := decodeData(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetDataverse retrieves a dataverse collection by alias
func (c *Client) GetDataverse(ctx context.Context, alias string) (*Dataverse, error) {
	data, err := c.doRequest(ctx, http.MethodGet, nil, nil, "dataverses", alias)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataverse %s: %w", alias, err)
	}

	var dv Dataverse
	if err := decodeData(data, &dv); err != nil {
		return nil, err
	}
	return &dv, nil
}

// GetContents lists the datasets and dataverses directly inside a dataverse
func (c *Client) GetContents(ctx context.Context, alias string) ([]DvObject, error) {
	data, err := c.doRequest(ctx, http.MethodGet, nil, nil, "dataverses", alias, "contents")
	if err != nil {
		return nil, fmt.Errorf("failed to get contents of %s: %w", alias, err)
	}

	var objects []DvObject
	if err := decodeData(data, &objects); err != nil {
		return nil, err
	}

	c.logger.Debug().Msgf("Retrieved %d objects from dataverse %s", len(objects), alias)
	return objects, nil
}
