package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// ExecMode tells where a result came from.
type ExecMode string

const (
	ExecModeCache ExecMode = "cache"
	ExecModeDB    ExecMode = "db"
)

// QueryRequest is one pipeline invocation.
type QueryRequest struct {
	SQL    string
	Params map[string]any
	Plan   *Plan
}

type ExecMeta struct {
	CacheKey string   `json:"cache_key"`
	CacheHit bool     `json:"cache_hit"`
	Rows     int      `json:"rows"`
	Seconds  float64  `json:"seconds"`
	Mode     ExecMode `json:"mode"`
}

// CacheKey derives the snapshot key of a request.
//
// Canonical form: sql, "|", then a JSON array of [key, value] pairs sorted by
// key. The SHA-256 of that UTF-8 text, hex encoded, is the key.
func CacheKey(sql string, params map[string]any) string {
	sum := sha256.Sum256(CanonicalRequest(sql, params))
	return hex.EncodeToString(sum[:])
}

func CanonicalRequest(sql string, params map[string]any) []byte {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]any, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]any{k, canonicalParam(params[k])})
	}

	encoded, err := json.Marshal(pairs)
	if err != nil {
		// params are scalars; fall back to their display form
		fallback := make([][2]string, 0, len(pairs))
		for _, p := range pairs {
			fallback = append(fallback, [2]string{p[0].(string), Label(p[1])})
		}
		encoded, _ = json.Marshal(fallback)
	}

	out := make([]byte, 0, len(sql)+1+len(encoded))
	out = append(out, sql...)
	out = append(out, '|')
	return append(out, encoded...)
}

func canonicalParam(v any) any {
	switch x := NormalizeValue(v).(type) {
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	default:
		return JSONValue(x)
	}
}
