// Package blobstore provides an abstraction layer for object storage services.
//
// It exposes a minimal get/put/exists interface over a named bucket/prefix
// pair, with backends for S3-compatible services (via the MinIO Go client)
// and Google Cloud Storage, plus an in-memory implementation for tests.
//
// # Absent vs. failed
//
// A download of a key that does not exist is not a failure: Get returns a
// NotFound error, and callers branch on IsNotFoundError to treat the object
// as absent (e.g. "no prior master table"). Every other error from a backend
// is a genuine store failure and should be propagated.
//
// # Prefixes
//
// Each backend is constructed with a bucket and key prefix and joins the
// prefix internally, so callers always address objects by logical key
// ("master/events_master.parquet", "snapshots/events_20240101.geojson").
//
// # Usage
//
//	store, err := blobstore.NewS3Store(cfg)
//	data, err := store.Get(ctx, "master/events_master.parquet")
//	if blobstore.IsNotFoundError(err) {
//	    // first run, no master yet
//	}
package blobstore
