package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-archiver/core/blobstore"
	"event-archiver/core/blobstore/mocks"
	"event-archiver/feature/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSyncMasterTwoRuns(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewInMemoryStore("mem")
	syncer := events.NewSyncer("events", zap.NewNop())

	// First run: no prior master.
	report, err := syncer.SyncMaster(ctx, store, keyedTable("a", "b"))
	require.NoError(t, err)
	assert.False(t, report.MasterExisted)
	assert.Equal(t, 2, report.Appended)
	assert.Equal(t, 2, report.MasterTotal)
	assert.Equal(t, "mem://mem/master/events_master.parquet", report.ParquetURI)
	assert.Equal(t, "mem://mem/master/events_master.csv", report.CSVURI)

	// Both persisted forms exist.
	ok, err := store.Exists(ctx, "master/events_master.parquet")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "text/csv", store.ContentType("master/events_master.csv"))

	// Second run with an overlapping batch: only the new key is appended.
	report, err = syncer.SyncMaster(ctx, store, keyedTable("b", "c"))
	require.NoError(t, err)
	assert.True(t, report.MasterExisted)
	assert.Equal(t, 1, report.Appended)
	assert.Equal(t, 3, report.MasterTotal)

	// Third run repeating the same batch appends nothing.
	report, err = syncer.SyncMaster(ctx, store, keyedTable("b", "c"))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Appended)
	assert.Equal(t, 3, report.MasterTotal)

	// The stored master preserves row order across runs.
	data, err := store.Get(ctx, "master/events_master.parquet")
	require.NoError(t, err)
	master, err := events.DecodeParquet(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, masterKeys(*master))
}

func TestSyncMasterTransientStoreError(t *testing.T) {
	// A genuine download failure must propagate; it is not "no prior master".
	store := new(mocks.Blobstore)
	store.On("Name").Return("bad")
	store.On("Get", mock.Anything, "master/events_master.parquet").
		Return(nil, errors.New("connection reset"))

	syncer := events.NewSyncer("events", zap.NewNop())
	_, err := syncer.SyncMaster(context.Background(), store, keyedTable("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download master")
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncMasterUnkeyedBatch(t *testing.T) {
	store := blobstore.NewInMemoryStore("mem")
	syncer := events.NewSyncer("events", zap.NewNop())

	batch := events.Table{Columns: []string{"id"}, Rows: []events.Row{{"id": "a"}}}
	_, err := syncer.SyncMaster(context.Background(), store, batch)
	require.Error(t, err)
	assert.True(t, events.IsInvalidInputError(err))
}

func TestUploadSnapshot(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewInMemoryStore("mem")
	syncer := events.NewSyncer("events", zap.NewNop())

	date := time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC)
	raw := []byte(`{"type":"FeatureCollection","features":[]}`)

	uri, err := syncer.UploadSnapshot(ctx, store, raw, date)
	require.NoError(t, err)
	assert.Equal(t, "mem://mem/snapshots/events_20240309.geojson", uri)

	stored, err := store.Get(ctx, "snapshots/events_20240309.geojson")
	require.NoError(t, err)
	assert.Equal(t, raw, stored)
	assert.Equal(t, "application/geo+json", store.ContentType("snapshots/events_20240309.geojson"))
}

func TestRunSyncsTargetsIndependently(t *testing.T) {
	ctx := context.Background()

	good := blobstore.NewInMemoryStore("good")

	bad := new(mocks.Blobstore)
	bad.On("Name").Return("bad")
	bad.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket gone"))

	syncer := events.NewSyncer("events", zap.NewNop())
	results := syncer.Run(ctx,
		[]blobstore.Blobstore{bad, good},
		[]byte(`{"type":"FeatureCollection","features":[]}`),
		keyedTable("a"),
		time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))

	require.Len(t, results, 2)

	assert.Equal(t, "bad", results[0].Store)
	assert.Error(t, results[0].Err)
	assert.Nil(t, results[0].Report)

	// The defective target did not stop the healthy one.
	assert.Equal(t, "good", results[1].Store)
	require.NoError(t, results[1].Err)
	require.NotNil(t, results[1].Report)
	assert.Equal(t, 1, results[1].Report.Appended)
	assert.NotEmpty(t, results[1].Report.SnapshotURI)

	ok, err := good.Exists(ctx, "snapshots/events_20240309.geojson")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunSharedBatchNotMutated(t *testing.T) {
	// Both targets merge the same batch; the first target's sync must not
	// change what the second target sees.
	ctx := context.Background()
	one := blobstore.NewInMemoryStore("one")
	two := blobstore.NewInMemoryStore("two")

	syncer := events.NewSyncer("events", zap.NewNop())
	batch := keyedTable("a", "b")
	results := syncer.Run(ctx,
		[]blobstore.Blobstore{one, two},
		[]byte("{}"), batch, time.Now())

	require.Len(t, results, 2)
	for _, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, 2, res.Report.Appended)
		assert.Equal(t, 2, res.Report.MasterTotal)
	}
	assert.Equal(t, []string{"a", "b"}, masterKeys(batch))
}
