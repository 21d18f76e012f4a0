// Package config provides centralized configuration management.
//
// Configuration is loaded from environment variables, optionally seeded from
// a .env file in the working directory. Nested keys map to underscored
// environment variables: stores.s3.bucket becomes STORES_S3_BUCKET.
//
// Defaults come from `default:` struct tags on the per-package config
// structs, registered in Viper via reflection so that every key also
// participates in AutomaticEnv.
//
// Core logic never reads ambient process state: the loaded Config is passed
// explicitly into the fetcher, the blobstore constructors, and the sync
// orchestrator.
package config
