package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"event-archiver/core/arcgis"
)

// Flatten converts a feature collection into a flat table: one row per
// feature holding its properties, plus the canonical geometry encoding in
// GeometryColumn.
//
// Column order is the sorted order of first appearance per feature, which
// keeps the layout deterministic even though property maps carry no order.
// GeometryColumn always comes last.
func Flatten(fc *arcgis.FeatureCollection) (Table, error) {
	t := Table{}

	for i, feat := range fc.Features {
		row := Row{}

		keys := make([]string, 0, len(feat.Properties))
		for k := range feat.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			row[k] = feat.Properties[k]
			t.AddColumn(k)
		}

		geom, err := canonicalGeometry(feat.Geometry)
		if err != nil {
			return Table{}, fmt.Errorf("feature %d: %w", i, err)
		}
		row[GeometryColumn] = geom

		t.Rows = append(t.Rows, row)
	}

	t.AddColumn(GeometryColumn)
	return t, nil
}

// canonicalGeometry re-encodes a raw GeoJSON geometry with sorted object keys
// and compact whitespace. Absent or null geometries canonicalize to "{}" so
// every row carries a hashable value.
func canonicalGeometry(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "{}", nil
	}

	// UseNumber keeps coordinate literals exactly as served; re-encoding
	// floats would make the canonical form depend on formatting.
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var geom any
	if err := dec.Decode(&geom); err != nil {
		return "", fmt.Errorf("decode geometry: %w", err)
	}

	// encoding/json marshals map keys in sorted order.
	out, err := json.Marshal(geom)
	if err != nil {
		return "", fmt.Errorf("canonicalize geometry: %w", err)
	}
	return string(out), nil
}
