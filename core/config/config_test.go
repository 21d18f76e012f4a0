package config_test

import (
	"testing"

	"event-archiver/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "events", cfg.Dataset.Name)
	assert.Equal(t, "1=1", cfg.ArcGIS.Where)
	assert.Equal(t, 2000, cfg.ArcGIS.PageSize)
	assert.Equal(t, 4326, cfg.ArcGIS.OutSR)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Stores.S3.Enabled)
	assert.False(t, cfg.Stores.GCS.Enabled)
	assert.Equal(t, "s3.amazonaws.com", cfg.Stores.S3.Endpoint)
	assert.Equal(t, 30, cfg.Stores.S3.TimeoutSeconds)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DATASET_NAME", "AlphaPoliceEvent")
	t.Setenv("ARCGIS_PAGE_SIZE", "500")
	t.Setenv("STORES_S3_ENABLED", "true")
	t.Setenv("STORES_S3_BUCKET", "events-bucket")
	t.Setenv("STORES_S3_PREFIX", "alphapd")
	t.Setenv("STORES_GCS_ENABLED", "true")
	t.Setenv("STORES_GCS_BUCKET", "events-gcs")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "AlphaPoliceEvent", cfg.Dataset.Name)
	assert.Equal(t, 500, cfg.ArcGIS.PageSize)
	assert.True(t, cfg.Stores.S3.Enabled)
	assert.Equal(t, "events-bucket", cfg.Stores.S3.Bucket)
	assert.Equal(t, "alphapd", cfg.Stores.S3.Prefix)
	assert.True(t, cfg.Stores.GCS.Enabled)
	assert.Equal(t, "events-gcs", cfg.Stores.GCS.Bucket)
	assert.Equal(t, "debug", cfg.Log.Level)
}
