package cmd

import (
	"fmt"

	"event-archiver/core/config"
	"event-archiver/core/logger"
	"event-archiver/feature/events"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// previewCmd fetches and keys the current batch without touching any store.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Fetch and key the current batch without uploading anything",
	Long: `Fetch the complete current result set, flatten it and assign dedupe keys,
then report row, column and key statistics. No store target is read or
written; useful for checking connectivity and key quality before enabling
a target.`,
	RunE: runPreview,
}

func init() {
	RootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
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

	batch, _, err := fetchBatch(cmd.Context(), cfg, logg)
	if err != nil {
		return err
	}

	unique := make(map[string]struct{}, batch.Len())
	blank := 0
	for _, row := range batch.Rows {
		key, _ := row[events.KeyColumn].(string)
		if key == "" {
			blank++
		}
		unique[key] = struct{}{}
	}

	fmt.Printf("dataset:      %s\n", cfg.Dataset.Name)
	fmt.Printf("rows:         %d\n", batch.Len())
	fmt.Printf("columns:      %d\n", len(batch.Columns))
	fmt.Printf("unique keys:  %d\n", len(unique))
	fmt.Printf("blank keys:   %d\n", blank)
	if dupes := batch.Len() - len(unique); dupes > 0 {
		fmt.Printf("duplicates:   %d (will be dropped on merge)\n", dupes)
	}
	return nil
}
