package gcloud

import (
	"time"
)

// Resource is the base structure shared by all API resources. Records are
// value-like: a refresh produces a new snapshot, nothing is mutated in place.
type Resource struct {
	ID        string     `json:"id"                   yaml:"id"`
	Etag      string     `json:"etag,omitempty"       yaml:"etag,omitempty"`
	SelfLink  string     `json:"selfLink,omitempty"   yaml:"selfLink,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"  yaml:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"  yaml:"updatedAt,omitempty"`
}

// Dataset is a container for tables.
type Dataset struct {
	Resource    `yaml:",inline"`
	Name        string            `json:"name"                  yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Location    string            `json:"location,omitempty"    yaml:"location,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"      yaml:"labels,omitempty"`
}

// DatasetCreateRequest creates a dataset.
type DatasetCreateRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// DatasetUpdateRequest patches mutable dataset fields.
type DatasetUpdateRequest struct {
	Description *string           `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Table lives inside a dataset.
type Table struct {
	Resource  `yaml:",inline"`
	DatasetID string        `json:"datasetId"           yaml:"datasetId"`
	Name      string        `json:"name"                yaml:"name"`
	Schema    []TableColumn `json:"schema,omitempty"    yaml:"schema,omitempty"`
	NumRows   int64         `json:"numRows,omitempty"   yaml:"numRows,omitempty"`
	NumBytes  int64         `json:"numBytes,omitempty"  yaml:"numBytes,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

// TableColumn is one column of a table schema.
type TableColumn struct {
	Name     string `json:"name"               yaml:"name"`
	Type     string `json:"type"               yaml:"type"`
	Mode     string `json:"mode,omitempty"     yaml:"mode,omitempty"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}

// TableCreateRequest creates a table inside a dataset.
type TableCreateRequest struct {
	Name   string        `json:"name"`
	Schema []TableColumn `json:"schema,omitempty"`
}

// TableUpdateRequest patches mutable table fields.
type TableUpdateRequest struct {
	Schema    []TableColumn `json:"schema,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty"`
}

// Job states.
const (
	JobStatePending = "PENDING"
	JobStateRunning = "RUNNING"
	JobStateDone    = "DONE"
)

// Job is a server-side unit of work (query, load, copy, extract) accepted
// immediately and completed asynchronously.
type Job struct {
	Resource `yaml:",inline"`
	Type     string    `json:"type"             yaml:"type"`
	Status   JobStatus `json:"status"           yaml:"status"`
	UserID   string    `json:"userId,omitempty" yaml:"userId,omitempty"`
}

// JobStatus carries a job's state and any terminal errors.
type JobStatus struct {
	State       string        `json:"state"                 yaml:"state"`
	ErrorResult *ErrorDetail  `json:"errorResult,omitempty" yaml:"errorResult,omitempty"`
	Errors      []ErrorDetail `json:"errors,omitempty"      yaml:"errors,omitempty"`
}

// Done reports whether the job reached its terminal state.
func (s JobStatus) Done() bool {
	return s.State == JobStateDone
}

// Failed reports whether the job finished with an error result.
func (s JobStatus) Failed() bool {
	return s.Done() && s.ErrorResult != nil
}

// Bucket is a container for blobs.
type Bucket struct {
	Resource     `yaml:",inline"`
	Name         string            `json:"name"                   yaml:"name"`
	Location     string            `json:"location,omitempty"     yaml:"location,omitempty"`
	StorageClass string            `json:"storageClass,omitempty" yaml:"storageClass,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"       yaml:"labels,omitempty"`
}

// BucketCreateRequest creates a bucket.
type BucketCreateRequest struct {
	Name         string            `json:"name"`
	Location     string            `json:"location,omitempty"`
	StorageClass string            `json:"storageClass,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"`
}

// BucketUpdateRequest patches mutable bucket fields.
type BucketUpdateRequest struct {
	StorageClass *string           `json:"storageClass,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"`
}

// Blob is an object stored in a bucket. Generation identifies one immutable
// payload version; it drives the precondition options on mutations.
type Blob struct {
	Resource    `yaml:",inline"`
	Bucket      string            `json:"bucket"                yaml:"bucket"`
	Name        string            `json:"name"                  yaml:"name"`
	Size        int64             `json:"size,omitempty"        yaml:"size,omitempty"`
	ContentType string            `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Generation  int64             `json:"generation,omitempty"  yaml:"generation,omitempty"`
	MD5         string            `json:"md5,omitempty"         yaml:"md5,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
}

// BlobUpdateRequest patches mutable blob fields.
type BlobUpdateRequest struct {
	ContentType *string           `json:"contentType,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Zone is a deployment area that hosts instances.
type Zone struct {
	Resource   `yaml:",inline"`
	Name       string `json:"name"                 yaml:"name"`
	Region     string `json:"region,omitempty"     yaml:"region,omitempty"`
	Status     string `json:"status,omitempty"     yaml:"status,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Instance is a virtual machine living in a zone.
type Instance struct {
	Resource    `yaml:",inline"`
	Zone        string            `json:"zone"                  yaml:"zone"`
	Name        string            `json:"name"                  yaml:"name"`
	MachineType string            `json:"machineType,omitempty" yaml:"machineType,omitempty"`
	Status      string            `json:"status,omitempty"      yaml:"status,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"      yaml:"labels,omitempty"`
}

// InstanceCreateRequest creates an instance in a zone.
type InstanceCreateRequest struct {
	Name        string            `json:"name"`
	MachineType string            `json:"machineType"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// InstanceUpdateRequest patches mutable instance fields.
type InstanceUpdateRequest struct {
	MachineType *string           `json:"machineType,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}
