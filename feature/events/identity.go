package events

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"event-archiver/core/utils"
)

// globalIDColumn is the upstream-assigned unique identifier. ArcGIS layers
// expose it under varying capitalization, so matching is case-insensitive.
const globalIDColumn = "globalid"

// hashExcluded lists columns (case-insensitive) that never participate in the
// content hash: system-assigned sequential identifiers that change between
// fetches of the same event, and the key column itself.
var hashExcluded = []string{"objectid", KeyColumn}

// AssignIdentity computes the dedupe key for every row and records it in
// KeyColumn.
//
// When the table has a global identifier column, the key is that value
// coerced to string for the whole batch, even for rows where it is blank --
// degenerate blank keys are upstream's problem and are passed through
// unchanged. Otherwise the key is a content hash over all non-volatile
// columns, so re-running on an unchanged upstream row yields the same key.
func AssignIdentity(t *Table) error {
	if col, ok := findGlobalID(t); ok {
		for _, row := range t.Rows {
			row[KeyColumn] = utils.ToString(row[col])
		}
		t.AddColumn(KeyColumn)
		return nil
	}

	cols := hashColumns(t)
	for i, row := range t.Rows {
		key, err := rowHash(row, cols)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		row[KeyColumn] = key
	}
	t.AddColumn(KeyColumn)
	return nil
}

// findGlobalID returns the first column matching the global identifier name.
func findGlobalID(t *Table) (string, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c, globalIDColumn) {
			return c, true
		}
	}
	return "", false
}

// hashColumns returns the lexicographically sorted columns participating in
// the content hash.
func hashColumns(t *Table) []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if isHashExcluded(c) {
			continue
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func isHashExcluded(col string) bool {
	for _, ex := range hashExcluded {
		if strings.EqualFold(col, ex) {
			return true
		}
	}
	return false
}

// rowHash builds the canonical representation of a row -- sorted column
// names, canonical JSON scalar encoding, missing columns as null -- and
// digests it with SHA-256, returning a lowercase hex string.
func rowHash(row Row, sortedCols []string) (string, error) {
	payload := make(map[string]any, len(sortedCols))
	for _, c := range sortedCols {
		payload[c] = row[c]
	}

	// encoding/json marshals map keys in sorted order, and scalar encoding
	// (shortest round-trip floats) is deterministic across runs.
	canonical, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("canonicalize row: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
