package events_test

import (
	"testing"

	"event-archiver/feature/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyOf(t *testing.T, row events.Row) string {
	t.Helper()
	key, ok := row[events.KeyColumn].(string)
	require.True(t, ok, "row has no string dedupe key")
	return key
}

func TestAssignIdentityGlobalIDPath(t *testing.T) {
	table := events.Table{
		Columns: []string{"GlobalID", "Description"},
		Rows: []events.Row{
			{"GlobalID": "abc-123", "Description": "theft"},
			{"GlobalID": "def-456", "Description": "assault"},
		},
	}

	require.NoError(t, events.AssignIdentity(&table))
	assert.True(t, table.HasColumn(events.KeyColumn))
	assert.Equal(t, "abc-123", keyOf(t, table.Rows[0]))
	assert.Equal(t, "def-456", keyOf(t, table.Rows[1]))
}

func TestAssignIdentityGlobalIDCaseVariants(t *testing.T) {
	for _, col := range []string{"GlobalID", "globalid", "GLOBALID"} {
		t.Run(col, func(t *testing.T) {
			table := events.Table{
				Columns: []string{col},
				Rows:    []events.Row{{col: "x-1"}},
			}
			require.NoError(t, events.AssignIdentity(&table))
			assert.Equal(t, "x-1", keyOf(t, table.Rows[0]))
		})
	}
}

func TestAssignIdentityGlobalIDCoercesNumbers(t *testing.T) {
	table := events.Table{
		Columns: []string{"GlobalID"},
		Rows:    []events.Row{{"GlobalID": float64(12345678)}},
	}
	require.NoError(t, events.AssignIdentity(&table))
	assert.Equal(t, "12345678", keyOf(t, table.Rows[0]))
}

func TestAssignIdentityBlankGlobalIDsPassThrough(t *testing.T) {
	// The id path applies uniformly when the column exists, even when
	// individual values are blank. Degenerate keys are accepted upstream
	// behavior, not corrected here.
	table := events.Table{
		Columns: []string{"GlobalID", "Description"},
		Rows: []events.Row{
			{"GlobalID": nil, "Description": "a"},
			{"GlobalID": nil, "Description": "b"},
		},
	}
	require.NoError(t, events.AssignIdentity(&table))
	assert.Equal(t, "", keyOf(t, table.Rows[0]))
	assert.Equal(t, "", keyOf(t, table.Rows[1]))
}

func TestAssignIdentityHashPathStable(t *testing.T) {
	mkTable := func() events.Table {
		return events.Table{
			Columns: []string{"Description", "When", events.GeometryColumn},
			Rows: []events.Row{
				{"Description": "theft", "When": float64(1700000000), events.GeometryColumn: `{"coordinates":[-84.3,34.1],"type":"Point"}`},
			},
		}
	}

	first := mkTable()
	require.NoError(t, events.AssignIdentity(&first))
	second := mkTable()
	require.NoError(t, events.AssignIdentity(&second))

	key := keyOf(t, first.Rows[0])
	assert.Len(t, key, 64)
	assert.Equal(t, key, keyOf(t, second.Rows[0]))
}

func TestAssignIdentityHashChangesWithContent(t *testing.T) {
	base := events.Table{
		Columns: []string{"Description"},
		Rows:    []events.Row{{"Description": "theft"}},
	}
	changed := events.Table{
		Columns: []string{"Description"},
		Rows:    []events.Row{{"Description": "burglary"}},
	}

	require.NoError(t, events.AssignIdentity(&base))
	require.NoError(t, events.AssignIdentity(&changed))
	assert.NotEqual(t, keyOf(t, base.Rows[0]), keyOf(t, changed.Rows[0]))
}

func TestAssignIdentityHashIgnoresVolatileColumns(t *testing.T) {
	// Two rows identical except for the system-assigned sequential id must
	// hash to the same key.
	table := events.Table{
		Columns: []string{"OBJECTID", "Description", events.GeometryColumn},
		Rows: []events.Row{
			{"OBJECTID": float64(1), "Description": "theft", events.GeometryColumn: "{}"},
			{"OBJECTID": float64(2), "Description": "theft", events.GeometryColumn: "{}"},
		},
	}
	require.NoError(t, events.AssignIdentity(&table))
	assert.Equal(t, keyOf(t, table.Rows[0]), keyOf(t, table.Rows[1]))
}

func TestAssignIdentityHashIgnoresObjectIDCase(t *testing.T) {
	a := events.Table{
		Columns: []string{"ObjectId", "Description"},
		Rows:    []events.Row{{"ObjectId": float64(7), "Description": "x"}},
	}
	b := events.Table{
		Columns: []string{"objectid", "Description"},
		Rows:    []events.Row{{"objectid": float64(8), "Description": "x"}},
	}
	require.NoError(t, events.AssignIdentity(&a))
	require.NoError(t, events.AssignIdentity(&b))
	assert.Equal(t, keyOf(t, a.Rows[0]), keyOf(t, b.Rows[0]))
}

func TestAssignIdentityIsRepeatable(t *testing.T) {
	// Assigning twice must not change the key: the key column itself is
	// excluded from the hash.
	table := events.Table{
		Columns: []string{"Description"},
		Rows:    []events.Row{{"Description": "theft"}},
	}
	require.NoError(t, events.AssignIdentity(&table))
	key := keyOf(t, table.Rows[0])

	require.NoError(t, events.AssignIdentity(&table))
	assert.Equal(t, key, keyOf(t, table.Rows[0]))
}
