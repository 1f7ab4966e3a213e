package dataverse

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	persistentIDSegment = ":persistentId"
	latestVersion       = ":latest"
)

func pidParams(pid string) url.Values {
	return url.Values{"persistentId": {pid}}
}

// CreateDataset creates a dataset in the given dataverse from its JSON
// representation
func (c *Client) CreateDataset(ctx context.Context, alias string, datasetJSON []byte) (*DatasetIdentifier, error) {
	if !gjson.ValidBytes(datasetJSON) {
		return nil, ErrInvalidJSON
	}

	data, err := c.doRequest(ctx, http.MethodPost, nil, datasetJSON, "dataverses", alias, "datasets")
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset in %s: %w", alias, err)
	}

	var id DatasetIdentifier
	if err := decodeData(data, &id); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("dataverse", alias).
		Str("pid", id.PersistentID).
		Msg("Created dataset")
	return &id, nil
}

// GetDataset retrieves a version of a dataset. An empty version means the
// latest version visible to the API key.
func (c *Client) GetDataset(ctx context.Context, pid, version string) (*DatasetVersion, error) {
	if version == "" {
		version = latestVersion
	}

	data, err := c.doRequest(ctx, http.MethodGet, pidParams(pid), nil, "datasets", persistentIDSegment, "versions", version)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset %s: %w", pid, err)
	}

	var v DatasetVersion
	if err := decodeData(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// buildEditPayload renders fields as {"fields":[{"typeName":..,"value":..}]}
func buildEditPayload(fields []FieldUpdate) ([]byte, error) {
	payload := []byte(`{"fields":[]}`)
	for i, f := range fields {
		if f.TypeName == "" {
			return nil, fmt.Errorf("field %d has no type name", i)
		}
		var err error
		prefix := "fields." + strconv.Itoa(i)
		payload, err = sjson.SetBytes(payload, prefix+".typeName", f.TypeName)
		if err != nil {
			return nil, err
		}
		payload, err = sjson.SetBytes(payload, prefix+".value", f.Value)
		if err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// EditMetadata updates metadata fields of the draft version. With replace
// set, existing values are overwritten instead of added to.
func (c *Client) EditMetadata(ctx context.Context, pid string, fields []FieldUpdate, replace bool) (*DatasetVersion, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	payload, err := buildEditPayload(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata payload: %w", err)
	}

	params := pidParams(pid)
	if replace {
		params.Set("replace", "true")
	}

	data, err := c.doRequest(ctx, http.MethodPut, params, payload, "datasets", persistentIDSegment, "editMetadata")
	if err != nil {
		return nil, fmt.Errorf("failed to edit metadata of %s: %w", pid, err)
	}

	var v DatasetVersion
	if err := decodeData(data, &v); err != nil {
		return nil, err
	}

	c.logger.Info().Str("pid", pid).Int("fields", len(fields)).Msg("Updated dataset metadata")
	return &v, nil
}

// PublishDataset publishes the draft version as a major or minor release.
// Publication finishes asynchronously; use AwaitUnlock to wait for it.
func (c *Client) PublishDataset(ctx context.Context, pid string, major bool) error {
	params := pidParams(pid)
	if major {
		params.Set("type", "major")
	} else {
		params.Set("type", "minor")
	}

	if _, err := c.doRequest(ctx, http.MethodPost, params, nil, "datasets", persistentIDSegment, "actions", ":publish"); err != nil {
		return fmt.Errorf("failed to publish %s: %w", pid, err)
	}

	c.logger.Info().Str("pid", pid).Str("type", params.Get("type")).Msg("Requested dataset publication")
	return nil
}
