package events

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"event-archiver/core/utils"
)

// EncodeCSV renders the table as delimited text: a header row of column
// names followed by one record per row, nulls as empty cells.
//
// The CSV form is a human-auditable derivative of the parquet master and is
// regenerated from the merged table on every write; it is never read back.
func EncodeCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			record[j] = utils.ToString(row[col])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
