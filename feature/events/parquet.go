package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"event-archiver/core/utils"
)

// parquetSchemaNode mirrors the JSON schema format of the parquet writer.
type parquetSchemaNode struct {
	Tag    string              `json:"Tag"`
	Fields []parquetSchemaNode `json:"Fields,omitempty"`
}

// EncodeParquet serializes a table to parquet bytes. This is the
// authoritative persisted form of the master table: it round-trips the three
// scalar types the pipeline produces (string, float64, bool) plus nulls.
//
// Every column is OPTIONAL. The physical type is inferred from the first
// non-null value; all-null and mixed-type columns fall back to UTF8.
func EncodeParquet(t *Table) ([]byte, error) {
	schema, types, err := parquetSchema(t)
	if err != nil {
		return nil, err
	}

	pf := buffer.NewBufferFile()
	pw, err := writer.NewJSONWriter(schema, pf, 1)
	if err != nil {
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}

	for i, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for _, col := range t.Columns {
			rec[col] = parquetValue(row[col], types[col])
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := pw.Write(string(data)); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finalize parquet: %w", err)
	}
	if err := pf.Close(); err != nil {
		return nil, fmt.Errorf("close parquet buffer: %w", err)
	}
	return pf.Bytes(), nil
}

// DecodeParquet reads parquet bytes back into a table, restoring the original
// column names and their file order.
func DecodeParquet(data []byte) (*Table, error) {
	pf := buffer.NewBufferFileFromBytes(data)
	pr, err := reader.NewParquetColumnReader(pf, 1)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer pr.ReadStop()

	num := int(pr.GetNumRows())
	t := &Table{Rows: make([]Row, num)}
	for i := range t.Rows {
		t.Rows[i] = Row{}
	}

	for _, path := range pr.SchemaHandler.ValueColumns {
		idx, ok := pr.SchemaHandler.MapIndex[path]
		if !ok {
			return nil, fmt.Errorf("parquet column %q missing from schema index", path)
		}
		// The writer mangles names that cannot head a Go identifier
		// (leading underscore, as in _dedupe_key); undo it.
		name := strings.TrimPrefix(pr.SchemaHandler.Infos[idx].ExName, "PARGO_PREFIX_")

		vals, _, dls, err := pr.ReadColumnByPath(path, int64(num))
		if err != nil {
			return nil, fmt.Errorf("read parquet column %q: %w", name, err)
		}
		if len(dls) != num {
			return nil, fmt.Errorf("parquet column %q: %d definition levels for %d rows", name, len(dls), num)
		}

		t.AddColumn(name)

		// Optional columns come back with nil placeholders at null slots
		// when values align one-to-one with definition levels; older layouts
		// pack only the present values.
		packed := len(vals) != len(dls)
		vi := 0
		for i := 0; i < num; i++ {
			if dls[i] == 0 {
				t.Rows[i][name] = nil
				if !packed {
					vi++
				}
				continue
			}
			t.Rows[i][name] = vals[vi]
			vi++
		}
	}

	return t, nil
}

// parquetSchema builds the JSON schema string for a table and returns the
// inferred logical type per column.
func parquetSchema(t *Table) (string, map[string]string, error) {
	root := parquetSchemaNode{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	types := make(map[string]string, len(t.Columns))

	for _, col := range t.Columns {
		// Column names become schema tags; separators would corrupt them.
		if strings.ContainsAny(col, ",=") {
			return "", nil, fmt.Errorf("column name %q not representable in parquet schema", col)
		}

		typ := inferColumnType(t, col)
		types[col] = typ

		var tag string
		switch typ {
		case "double":
			tag = fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", col)
		case "boolean":
			tag = fmt.Sprintf("name=%s, type=BOOLEAN, repetitiontype=OPTIONAL", col)
		default:
			tag = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", col)
		}
		root.Fields = append(root.Fields, parquetSchemaNode{Tag: tag})
	}

	out, err := json.Marshal(root)
	if err != nil {
		return "", nil, fmt.Errorf("marshal parquet schema: %w", err)
	}
	return string(out), types, nil
}

// inferColumnType picks a logical type from the column's values: "double",
// "boolean" or "utf8". Mixed-type columns degrade to utf8.
func inferColumnType(t *Table, col string) string {
	typ := ""
	for _, row := range t.Rows {
		v := row[col]
		if v == nil {
			continue
		}

		var cur string
		switch v.(type) {
		case float64, float32, int, int32, int64:
			cur = "double"
		case bool:
			cur = "boolean"
		default:
			cur = "utf8"
		}

		if typ == "" {
			typ = cur
		} else if typ != cur {
			return "utf8"
		}
	}
	if typ == "" {
		return "utf8"
	}
	return typ
}

// parquetValue coerces a row value to the column's inferred logical type.
func parquetValue(v any, typ string) any {
	if v == nil {
		return nil
	}
	switch typ {
	case "double":
		if f, ok := utils.ToFloat64(v); ok {
			return f
		}
		return nil
	case "boolean":
		if b, ok := v.(bool); ok {
			return b
		}
		return nil
	default:
		return utils.ToString(v)
	}
}
