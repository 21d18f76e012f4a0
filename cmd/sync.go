package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"event-archiver/core/arcgis"
	"event-archiver/core/blobstore"
	"event-archiver/core/config"
	"event-archiver/core/logger"
	"event-archiver/feature/events"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd runs the archive pipeline once: fetch, dedupe, merge, upload.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the latest events and sync every configured store target",
	Long: `Fetch the complete current result set from the configured feature service,
assign dedupe keys, and for each enabled store target: upload the dated raw
snapshot, merge the batch into that target's master table, and upload the
updated master as parquet and CSV.

Store targets are synced independently; a failure in one does not stop the
others. Concurrent runs against the same target are not safe and must be
serialized by the scheduler.`,
	RunE: runSync,
}

func init() {
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	stores, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		return fmt.Errorf("no store targets enabled; set STORES_S3_ENABLED or STORES_GCS_ENABLED")
	}

	batch, snapshot, err := fetchBatch(ctx, cfg, logg)
	if err != nil {
		// Fetch and identity failures are fatal to the whole run: without a
		// valid batch there is nothing to merge and no snapshot to persist.
		return err
	}

	syncer := events.NewSyncer(cfg.Dataset.Name, logg)
	results := syncer.Run(ctx, stores, snapshot, batch, time.Now())

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Printf("store %-4s FAILED: %v\n", res.Store, res.Err)
			continue
		}
		r := res.Report
		fmt.Printf("store %-4s master_existed=%v appended=%d master_total=%d\n",
			r.Store, r.MasterExisted, r.Appended, r.MasterTotal)
		fmt.Printf("  snapshot: %s\n", r.SnapshotURI)
		fmt.Printf("  parquet:  %s\n", r.ParquetURI)
		fmt.Printf("  csv:      %s\n", r.CSVURI)
	}

	if failed == len(results) {
		return fmt.Errorf("all %d store targets failed", failed)
	}
	return nil
}

// fetchBatch pulls the current result set and prepares the identity-tagged
// batch plus the raw snapshot bytes.
func fetchBatch(ctx context.Context, cfg *config.Config, logg *zap.Logger) (events.Table, []byte, error) {
	client := arcgis.NewClient(cfg.ArcGIS, logg)

	fc, err := client.FetchAll(ctx)
	if err != nil {
		return events.Table{}, nil, fmt.Errorf("fetch features: %w", err)
	}

	snapshot, err := json.Marshal(fc)
	if err != nil {
		return events.Table{}, nil, fmt.Errorf("encode snapshot: %w", err)
	}

	batch, err := events.Flatten(fc)
	if err != nil {
		return events.Table{}, nil, fmt.Errorf("flatten features: %w", err)
	}
	if err := events.AssignIdentity(&batch); err != nil {
		return events.Table{}, nil, fmt.Errorf("assign identity: %w", err)
	}

	logg.Info("Batch prepared",
		zap.Int("rows", batch.Len()),
		zap.Int("columns", len(batch.Columns)))

	return batch, snapshot, nil
}

// buildStores constructs a blobstore for every enabled target.
func buildStores(ctx context.Context, cfg *config.Config) ([]blobstore.Blobstore, error) {
	var stores []blobstore.Blobstore

	if cfg.Stores.S3.Enabled {
		s3, err := blobstore.NewS3Store(cfg.Stores.S3)
		if err != nil {
			return nil, fmt.Errorf("create s3 store: %w", err)
		}
		stores = append(stores, s3)
	}

	if cfg.Stores.GCS.Enabled {
		gcs, err := blobstore.NewGCSStore(ctx, cfg.Stores.GCS)
		if err != nil {
			return nil, fmt.Errorf("create gcs store: %w", err)
		}
		stores = append(stores, gcs)
	}

	return stores, nil
}
