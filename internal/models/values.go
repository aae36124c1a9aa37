package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MissingLabel is the text used for missing values in labels and tables.
const MissingLabel = "NULL"

const labelTimeLayout = "2006-01-02 15:04:05"

// NormalizeValue converts driver and Go scalar values into the small set of
// types a Dataset holds.
func NormalizeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return uintValue(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []byte:
		return string(x)
	case string, bool:
		return x
	case time.Time:
		return x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case fmt.Stringer:
		return x.String()
	default:
		return v
	}
}

func uintValue(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

// ToFloat reports the float value of a numeric cell.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint8:
		return float64(x), true
	case float32:
		return float64(x), true
	default:
		return 0, false
	}
}

// IsMissing reports whether a cell holds no value (nil or NaN).
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return true
	}
	return false
}

// Label renders a cell as display text.
func Label(v any) string {
	if IsMissing(v) {
		return MissingLabel
	}
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(labelTimeLayout)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

// JSONValue returns a value encoding/json can always marshal.
func JSONValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		return JSONValue(float64(x))
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case []byte:
		return strings.ToValidUTF8(string(x), "")
	case string, bool, int64, int, int32:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		if f, ok := ToFloat(x); ok {
			return JSONValue(f)
		}
		return fmt.Sprint(x)
	}
}

// KindFromDatabaseType maps a driver type name (DuckDB or PostgreSQL) to a
// Kind. Nested and other non-scalar types (LIST, STRUCT, MAP, INTERVAL, BLOB)
// are treated as text.
func KindFromDatabaseType(name string) Kind {
	t := strings.ToUpper(strings.TrimSpace(name))
	if strings.Contains(t, "[") {
		return KindString
	}
	if i := strings.Index(t, "("); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	switch t {
	case "TINYINT", "SMALLINT", "INTEGER", "INT", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT", "UHUGEINT",
		"INT2", "INT4", "INT8", "FLOAT", "FLOAT4", "FLOAT8", "REAL",
		"DOUBLE", "DOUBLE PRECISION", "DECIMAL", "NUMERIC":
		return KindNumeric
	case "VARCHAR", "TEXT", "CHAR", "BPCHAR", "NAME", "STRING", "UUID", "ENUM", "CITEXT":
		return KindString
	case "DATE", "TIMESTAMP", "TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE",
		"TIMESTAMP WITHOUT TIME ZONE", "TIMESTAMP_S", "TIMESTAMP_MS", "TIMESTAMP_NS", "DATETIME":
		return KindTemporal
	case "BOOLEAN", "BOOL":
		return KindBoolean
	default:
		return KindString
	}
}
