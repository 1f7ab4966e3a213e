package dataverse

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// unblockParams returns the query carrying the unblock key, or
// ErrNoUnblockKey when the instance has none
func (c *Client) unblockParams() (url.Values, error) {
	if !c.cfg.HasUnblockKey() {
		return nil, ErrNoUnblockKey
	}
	return url.Values{"unblock-key": {c.cfg.UnblockKey}}, nil
}

// GetSetting reads one database setting through the admin API
func (c *Client) GetSetting(ctx context.Context, name string) (string, error) {
	params, err := c.unblockParams()
	if err != nil {
		return "", err
	}

	data, err := c.doRequest(ctx, http.MethodGet, params, nil, "admin", "settings", name)
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", name, err)
	}

	// The value is wrapped as {"message": "..."}
	return gjson.GetBytes(data, "message").String(), nil
}

// ListSettings reads all database settings through the admin API
func (c *Client) ListSettings(ctx context.Context) (map[string]string, error) {
	params, err := c.unblockParams()
	if err != nil {
		return nil, err
	}

	data, err := c.doRequest(ctx, http.MethodGet, params, nil, "admin", "settings")
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	settings := make(map[string]string)
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		settings[key.String()] = value.String()
		return true
	})
	return settings, nil
}
