package dataverse

import (
	"encoding/json"
	"fmt"
	"time"
)

// Object types returned by the contents endpoint
const (
	TypeDataset   = "dataset"
	TypeDataverse = "dataverse"
	TypeDatafile  = "datafile"
)

// VersionInfo is the server version reported by info/version
type VersionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
}

// String returns the version with its build, if any
func (v VersionInfo) String() string {
	if v.Build == "" {
		return v.Version
	}
	return fmt.Sprintf("%s (build %s)", v.Version, v.Build)
}

// Dataverse represents a dataverse collection
type Dataverse struct {
	ID            int64  `json:"id"`
	Alias         string `json:"alias"`
	Name          string `json:"name"`
	Affiliation   string `json:"affiliation"`
	Description   string `json:"description"`
	DataverseType string `json:"dataverseType"`
	CreationDate  string `json:"creationDate"`
}

// DvObject is one entry in the contents of a dataverse
type DvObject struct {
	Type              string `json:"type"`
	ID                int64  `json:"id"`
	Identifier        string `json:"identifier"`
	Protocol          string `json:"protocol"`
	Authority         string `json:"authority"`
	Publisher         string `json:"publisher"`
	PublicationDate   string `json:"publicationDate"`
	StorageIdentifier string `json:"storageIdentifier"`
	Title             string `json:"title"`
}

// PersistentID returns the protocol:authority/identifier form, or "" for
// objects without a persistent identifier
func (o DvObject) PersistentID() string {
	if o.Protocol == "" || o.Identifier == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s/%s", o.Protocol, o.Authority, o.Identifier)
}

// Published reports whether the object has a publication date
func (o DvObject) Published() bool {
	return o.PublicationDate != ""
}

// PublishedAt parses the publication date. The zero time is returned for
// unpublished objects.
func (o DvObject) PublishedAt() time.Time {
	t, err := time.Parse("2006-01-02", o.PublicationDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DatasetIdentifier is returned when a dataset is created
type DatasetIdentifier struct {
	ID           int64  `json:"id"`
	PersistentID string `json:"persistentId"`
}

// DatasetVersion is one version of a dataset
type DatasetVersion struct {
	ID                  int64                    `json:"id"`
	DatasetID           int64                    `json:"datasetId"`
	DatasetPersistentID string                   `json:"datasetPersistentId"`
	VersionNumber       int                      `json:"versionNumber"`
	VersionMinorNumber  int                      `json:"versionMinorNumber"`
	VersionState        string                   `json:"versionState"`
	LastUpdateTime      string                   `json:"lastUpdateTime"`
	ReleaseTime         string                   `json:"releaseTime"`
	MetadataBlocks      map[string]MetadataBlock `json:"metadataBlocks"`
}

// MetadataBlock groups metadata fields, e.g. "citation"
type MetadataBlock struct {
	DisplayName string          `json:"displayName"`
	Fields      []MetadataField `json:"fields"`
}

// MetadataField is a single field in a metadata block
type MetadataField struct {
	TypeName  string          `json:"typeName"`
	Multiple  bool            `json:"multiple"`
	TypeClass string          `json:"typeClass"`
	Value     json.RawMessage `json:"value"`
}

// Title returns the citation title of the version
func (v DatasetVersion) Title() string {
	block, ok := v.MetadataBlocks["citation"]
	if !ok {
		return ""
	}
	for _, f := range block.Fields {
		if f.TypeName != "title" {
			continue
		}
		var title string
		if err := json.Unmarshal(f.Value, &title); err == nil {
			return title
		}
	}
	return ""
}

// Version returns "major.minor", or "DRAFT" for unreleased versions
func (v DatasetVersion) Version() string {
	if v.VersionState == "DRAFT" {
		return "DRAFT"
	}
	return fmt.Sprintf("%d.%d", v.VersionNumber, v.VersionMinorNumber)
}

// Lock is a lock held on a dataset
type Lock struct {
	LockType string `json:"lockType"`
	Date     string `json:"date"`
	User     string `json:"user"`
	Message  string `json:"message"`
}

// FieldUpdate is one field in an editMetadata request
type FieldUpdate struct {
	TypeName string
	Value    any
}
