package dataverse

import (
	"context"
)

// API defines the Dataverse operations used by the example commands
type API interface {
	// TestConnection verifies the client can reach the instance
	TestConnection(ctx context.Context) error

	GetVersion(ctx context.Context) (*VersionInfo, error)
	GetDataverse(ctx context.Context, alias string) (*Dataverse, error)
	GetContents(ctx context.Context, alias string) ([]DvObject, error)

	// Dataset operations
	CreateDataset(ctx context.Context, alias string, datasetJSON []byte) (*DatasetIdentifier, error)
	GetDataset(ctx context.Context, pid, version string) (*DatasetVersion, error)
	GetDatasets(ctx context.Context, pids []string, version string) BatchResult
	EditMetadata(ctx context.Context, pid string, fields []FieldUpdate, replace bool) (*DatasetVersion, error)
	PublishDataset(ctx context.Context, pid string, major bool) error

	// Lock operations
	GetLocks(ctx context.Context, pid string) ([]Lock, error)
	AwaitUnlock(ctx context.Context, pid string) error

	// Admin operations, available only with an unblock key
	GetSetting(ctx context.Context, name string) (string, error)
	ListSettings(ctx context.Context) (map[string]string, error)
}

var _ API = (*Client)(nil)
