package blobstore

// S3Config holds configuration for an S3-compatible store target (AWS S3 or
// self-hosted MinIO).
type S3Config struct {
	// Enabled turns this store target on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"s3.amazonaws.com"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// Bucket is the name of the bucket holding the master and snapshots.
	Bucket string `mapstructure:"bucket" default:""`
	// Prefix is the key prefix under which all objects are stored.
	Prefix string `mapstructure:"prefix" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// GCSConfig holds configuration for a Google Cloud Storage target.
type GCSConfig struct {
	// Enabled turns this store target on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Bucket is the name of the bucket holding the master and snapshots.
	Bucket string `mapstructure:"bucket" default:""`
	// Prefix is the key prefix under which all objects are stored.
	Prefix string `mapstructure:"prefix" default:""`
	// CredentialsJSON is the service account key as a JSON string.
	// When empty, application default credentials are used.
	CredentialsJSON string `mapstructure:"credentials_json" default:""`
}
