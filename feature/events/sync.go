package events

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"event-archiver/core/blobstore"
	"event-archiver/core/logger"
)

const (
	contentTypeParquet = "application/octet-stream"
	contentTypeCSV     = "text/csv"
	contentTypeGeoJSON = "application/geo+json"
)

// Report summarizes one store target's sync.
type Report struct {
	// Store is the backend name of the target.
	Store string `json:"store"`
	// MasterExisted reports whether a prior master table was found.
	MasterExisted bool `json:"master_existed"`
	// Appended is the number of newly appended rows.
	Appended int `json:"appended"`
	// MasterTotal is the row count of the updated master.
	MasterTotal int `json:"master_total"`
	// ParquetURI is where the authoritative master was uploaded.
	ParquetURI string `json:"parquet_uri"`
	// CSVURI is where the human-auditable master was uploaded.
	CSVURI string `json:"csv_uri"`
	// SnapshotURI is where the dated raw snapshot was uploaded.
	SnapshotURI string `json:"snapshot_uri,omitempty"`
}

// RunResult pairs a store target with its report or its failure.
type RunResult struct {
	// Store is the backend name of the target.
	Store string
	// Report is the sync summary; nil when the target failed.
	Report *Report
	// Err is the failure that aborted this target's sync, if any.
	Err error
}

// Syncer persists snapshots and master tables to store targets. One Syncer
// serves all targets of a run; it holds no per-target merge state, so a
// failure in one target's write path cannot corrupt another's.
type Syncer struct {
	dataset string
	logger  *zap.Logger
}

// NewSyncer creates a Syncer for the named dataset.
func NewSyncer(dataset string, log *zap.Logger) *Syncer {
	return &Syncer{dataset: dataset, logger: log}
}

// MasterParquetKey returns the object key of the authoritative master table.
func (s *Syncer) MasterParquetKey() string {
	return fmt.Sprintf("master/%s_master.parquet", s.dataset)
}

// MasterCSVKey returns the object key of the CSV rendition of the master.
func (s *Syncer) MasterCSVKey() string {
	return fmt.Sprintf("master/%s_master.csv", s.dataset)
}

// SnapshotKey returns the dated object key for a raw snapshot.
func (s *Syncer) SnapshotKey(date time.Time) string {
	return fmt.Sprintf("snapshots/%s_%s.geojson", s.dataset, date.Format("20060102"))
}

// SyncMaster downloads the target's master table if present, merges the
// batch into it, and uploads the updated master in both persisted forms.
// A missing master is the first-run case, not an error.
func (s *Syncer) SyncMaster(ctx context.Context, store blobstore.Blobstore, batch Table) (*Report, error) {
	l := logger.WithStore(s.logger, store.Name())

	var master *Table
	existed := false

	data, err := store.Get(ctx, s.MasterParquetKey())
	switch {
	case err == nil:
		existed = true
		master, err = DecodeParquet(data)
		if err != nil {
			return nil, fmt.Errorf("decode master: %w", err)
		}
		l.Debug("Downloaded existing master", zap.Int("rows", master.Len()))
	case blobstore.IsNotFoundError(err):
		l.Info("No existing master, starting fresh")
	default:
		return nil, fmt.Errorf("download master: %w", err)
	}

	merged, appended, err := Merge(batch, master)
	if err != nil {
		return nil, err
	}

	parquetBytes, err := EncodeParquet(&merged)
	if err != nil {
		return nil, fmt.Errorf("encode master parquet: %w", err)
	}
	csvBytes, err := EncodeCSV(&merged)
	if err != nil {
		return nil, fmt.Errorf("encode master csv: %w", err)
	}

	parquetURI, err := store.Put(ctx, s.MasterParquetKey(), parquetBytes, contentTypeParquet)
	if err != nil {
		return nil, fmt.Errorf("upload master parquet: %w", err)
	}
	csvURI, err := store.Put(ctx, s.MasterCSVKey(), csvBytes, contentTypeCSV)
	if err != nil {
		return nil, fmt.Errorf("upload master csv: %w", err)
	}

	l.Info("Master synced",
		zap.Bool("master_existed", existed),
		zap.Int("appended", appended),
		zap.Int("master_total", merged.Len()))

	return &Report{
		Store:         store.Name(),
		MasterExisted: existed,
		Appended:      appended,
		MasterTotal:   merged.Len(),
		ParquetURI:    parquetURI,
		CSVURI:        csvURI,
	}, nil
}

// UploadSnapshot stores the raw feature collection bytes under the dated
// snapshot key. Snapshots are audit artifacts: written once, never merged.
func (s *Syncer) UploadSnapshot(ctx context.Context, store blobstore.Blobstore, raw []byte, date time.Time) (string, error) {
	uri, err := store.Put(ctx, s.SnapshotKey(date), raw, contentTypeGeoJSON)
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return uri, nil
}

// Run syncs every store target independently: snapshot upload followed by
// master merge and upload. One target's failure is reported but never stops
// the others; the identity-tagged batch is shared read-only across targets.
func (s *Syncer) Run(ctx context.Context, stores []blobstore.Blobstore, snapshot []byte, batch Table, date time.Time) []RunResult {
	results := make([]RunResult, 0, len(stores))

	for _, store := range stores {
		l := logger.WithStore(s.logger, store.Name())

		snapURI, err := s.UploadSnapshot(ctx, store, snapshot, date)
		if err != nil {
			l.Error("Snapshot upload failed", zap.Error(err))
			results = append(results, RunResult{Store: store.Name(), Err: err})
			continue
		}

		report, err := s.SyncMaster(ctx, store, batch)
		if err != nil {
			l.Error("Master sync failed", zap.Error(err))
			results = append(results, RunResult{Store: store.Name(), Err: err})
			continue
		}

		report.SnapshotURI = snapURI
		results = append(results, RunResult{Store: store.Name(), Report: report})
	}

	return results
}
