package config

import (
	"reflect"
	"strings"

	"event-archiver/core/arcgis"
	"event-archiver/core/blobstore"
	"event-archiver/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// ArcGIS holds configuration for the upstream feature service.
	ArcGIS arcgis.Config `mapstructure:"arcgis"`
	// Dataset holds configuration for the archived dataset.
	Dataset DatasetConfig `mapstructure:"dataset"`
	// Stores holds configuration for the object store targets.
	Stores StoresConfig `mapstructure:"stores"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// DatasetConfig identifies the archived dataset.
type DatasetConfig struct {
	// Name is used in object keys: master/<name>_master.parquet,
	// snapshots/<name>_<YYYYMMDD>.geojson.
	Name string `mapstructure:"name" default:"events"`
}

// StoresConfig lists the configured store targets. Each enabled target owns
// an independent copy of the master table; targets are never reconciled with
// each other.
type StoresConfig struct {
	// S3 configures an S3-compatible target (AWS S3 or MinIO).
	S3 blobstore.S3Config `mapstructure:"s3"`
	// GCS configures a Google Cloud Storage target.
	GCS blobstore.GCSConfig `mapstructure:"gcs"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. STORES_S3_BUCKET -> stores.s3.bucket)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
