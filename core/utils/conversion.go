package utils

import (
	"fmt"
	"strconv"
)

// ToString converts scalar values to a stable string form.
//
// Floats use the shortest representation that round-trips ('f' format, no
// exponent), so numeric identifiers like 12345678 never pick up scientific
// notation. This rule must stay fixed: dedupe keys coerced with it are
// persisted in master tables across runs.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToFloat64 converts various numeric types to float64 using explicit type
// switching. The second return reports whether the value was numeric.
func ToFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
