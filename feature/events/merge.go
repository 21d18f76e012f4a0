package events

import "event-archiver/core/utils"

// InvalidInputError indicates a batch that cannot be merged, typically
// because identity assignment was skipped.
type InvalidInputError struct {
	Reason string
}

func (e InvalidInputError) Error() string {
	return "invalid merge input: " + e.Reason
}

// IsInvalidInputError reports whether err is an InvalidInputError.
func IsInvalidInputError(err error) bool {
	_, ok := err.(InvalidInputError)

	return ok
}

// Merge combines a freshly fetched batch with the existing master table and
// returns the updated master plus the number of newly appended rows.
//
// The batch must already carry dedupe keys. The master may be nil or empty
// (first run), in which case the batch becomes the master. Otherwise rows of
// the batch whose key is already present in the master are dropped, and the
// remainder is appended after the master's rows, preserving both orders.
//
// Merge never alters or removes a master row, and merging the same batch
// twice appends nothing the second time. The batch is read-only input: store
// targets sharing one batch cannot corrupt each other through the merge.
func Merge(batch Table, master *Table) (Table, int, error) {
	if !batch.HasColumn(KeyColumn) {
		return Table{}, 0, InvalidInputError{Reason: "batch has no " + KeyColumn + " column"}
	}

	if master.Len() == 0 {
		out := batch.Clone()
		return out, out.Len(), nil
	}

	if !master.HasColumn(KeyColumn) {
		// A master written before dedupe keys existed is rebuilt from the
		// current batch, discarding its rows. Historical behavior of this
		// pipeline, kept for compatibility; see DESIGN.md before changing.
		out := batch.Clone()
		return out, out.Len(), nil
	}

	existing := make(map[string]struct{}, master.Len())
	for _, row := range master.Rows {
		existing[utils.ToString(row[KeyColumn])] = struct{}{}
	}

	out := master.Clone()
	for _, c := range batch.Columns {
		out.AddColumn(c)
	}

	appended := 0
	for _, row := range batch.Rows {
		key := utils.ToString(row[KeyColumn])
		if _, ok := existing[key]; ok {
			continue
		}
		// Marking the key keeps batch-internal duplicates (two rows hashing
		// identically) from being appended twice.
		existing[key] = struct{}{}
		out.Rows = append(out.Rows, row)
		appended++
	}

	return out, appended, nil
}
