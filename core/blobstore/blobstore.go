package blobstore

import (
	"context"
	"strings"
)

// Blobstore defines the interface for object storage operations.
//
// Implementations prepend their configured key prefix, so callers always work
// with logical keys like "master/events_master.parquet".
type Blobstore interface {
	// Name identifies the backend, e.g. "s3" or "gcs". Used in reports and logs.
	Name() string
	// Exists checks whether an object exists for the given key.
	Exists(ctx context.Context, key string) (bool, error)
	// Get downloads the full object. Returns a NotFound error if the key
	// does not exist; any other error indicates a genuine store failure.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put uploads an object and returns its URI (e.g. "s3://bucket/key").
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// NotFound is an error type used only when a key is not found in a Blobstore.
type NotFound struct {
	Key string
}

// Error returns the key which was not found
func (nf NotFound) Error() string {
	return "blob not found: " + nf.Key
}

// IsNotFoundError is a helper used to determine if a returned error resulted
// because the key didn't exist as opposed to something going wrong.
func IsNotFoundError(err error) bool {
	_, ok := err.(NotFound)

	return ok
}

// joinPrefix joins a configured key prefix with a logical key.
func joinPrefix(prefix, key string) string {
	p := strings.Trim(prefix, "/")
	k := strings.TrimLeft(key, "/")
	if p == "" {
		return k
	}
	return p + "/" + k
}
