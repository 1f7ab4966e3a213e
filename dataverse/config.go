package dataverse

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Fixed tuning values applied to every instance configuration.
const (
	DefaultConnectionTimeout        = 5000 * time.Millisecond
	DefaultReadTimeout              = 300000 * time.Millisecond
	DefaultAPIVersion               = "1"
	DefaultAwaitLockStateMaxRetries = 10
	DefaultAwaitLockStateInterval   = 500 * time.Millisecond
)

// InstanceConfig holds everything needed to talk to one Dataverse instance.
// It is built once at startup and not modified afterwards.
type InstanceConfig struct {
	BaseURL    *url.URL
	APIKey     string
	UnblockKey string

	ConnectionTimeout        time.Duration
	ReadTimeout              time.Duration
	APIVersion               string
	AwaitLockStateMaxRetries int
	AwaitLockStateInterval   time.Duration
}

// NewInstanceConfig validates the base URL and returns a configuration
// carrying the fixed tuning values. An empty unblockKey means none.
func NewInstanceConfig(baseURL, apiKey, unblockKey string) (InstanceConfig, error) {
	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return InstanceConfig{}, err
	}
	if apiKey == "" {
		return InstanceConfig{}, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	return InstanceConfig{
		BaseURL:                  u,
		APIKey:                   apiKey,
		UnblockKey:               unblockKey,
		ConnectionTimeout:        DefaultConnectionTimeout,
		ReadTimeout:              DefaultReadTimeout,
		APIVersion:               DefaultAPIVersion,
		AwaitLockStateMaxRetries: DefaultAwaitLockStateMaxRetries,
		AwaitLockStateInterval:   DefaultAwaitLockStateInterval,
	}, nil
}

// uriChars holds the RFC 3986 unreserved and reserved characters plus '%'
const uriChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
	"-._~" + ":/?#[]@" + "!$&'()*+,;=" + "%"

// ParseBaseURL parses raw as an absolute URI with a scheme and host.
// Any byte outside the RFC 3986 character set is rejected, including
// whitespace and characters such as '<', '{', '|' and '"'.
func ParseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, &URISyntaxError{Input: raw, Reason: "empty"}
	}
	for i := 0; i < len(raw); i++ {
		if strings.IndexByte(uriChars, raw[i]) < 0 {
			return nil, &URISyntaxError{Input: raw, Reason: fmt.Sprintf("illegal character %q at index %d", raw[i], i)}
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &URISyntaxError{Input: raw, Reason: "parse failed", Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &URISyntaxError{Input: raw, Reason: "not an absolute URI"}
	}

	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

// HasUnblockKey reports whether admin endpoints can be unblocked
func (c InstanceConfig) HasUnblockKey() bool {
	return c.UnblockKey != ""
}
