package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
)

// Property extraction is the sole boundary between untrusted external data
// and entity fields. Every mapping routine must read the record through
// these functions rather than touching the bag directly. A missing key,
// wrong type, or malformed value never produces an error: a warning is
// logged and the caller-supplied default is returned.

// ExtractString reads a string value from the record. Scalar values of
// other types are passed through in their string form.
func ExtractString(ctx context.Context, rec *model.Record, key, def string) string {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case string:
		return v
	case bool, int, int32, int64, float32, float64, json.Number:
		return fmt.Sprintf("%v", v)
	default:
		logging.From(ctx).Warn("unexpected value type for string property, using default",
			"key", key, "type", fmt.Sprintf("%T", raw))
		return def
	}
}

// ExtractBool reads a boolean value from the record, parsing string forms
// ("true", "1", ...) with the default on parse failure.
func ExtractBool(ctx context.Context, rec *model.Record, key string, def bool) bool {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			logging.From(ctx).Warn("malformed boolean property, using default",
				"key", key, "value", v)
			return def
		}
		return parsed
	default:
		logging.From(ctx).Warn("unexpected value type for boolean property, using default",
			"key", key, "type", fmt.Sprintf("%T", raw))
		return def
	}
}

// ExtractInt64 reads an integer value from the record. JSON-decoded numbers
// arrive as float64 and are accepted when they carry no fractional part.
func ExtractInt64(ctx context.Context, rec *model.Record, key string, def int64) int64 {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		if v != float64(int64(v)) {
			logging.From(ctx).Warn("fractional value for integer property, using default",
				"key", key, "value", v)
			return def
		}
		return int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			logging.From(ctx).Warn("malformed numeric property, using default",
				"key", key, "value", v.String())
			return def
		}
		return n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			logging.From(ctx).Warn("malformed integer property, using default",
				"key", key, "value", v)
			return def
		}
		return n
	default:
		logging.From(ctx).Warn("unexpected value type for integer property, using default",
			"key", key, "type", fmt.Sprintf("%T", raw))
		return def
	}
}

// ExtractInt reads an integer value from the record
func ExtractInt(ctx context.Context, rec *model.Record, key string, def int) int {
	return int(ExtractInt64(ctx, rec, key, int64(def)))
}

// timeLayouts are the timestamp forms the directory service is known to emit
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ExtractTime reads an optional timestamp from the record. Absence and
// parse failure both yield nil.
func ExtractTime(ctx context.Context, rec *model.Record, key string) *time.Time {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return &t
			}
		}
		logging.From(ctx).Warn("malformed timestamp property, treating as absent",
			"key", key, "value", v)
		return nil
	default:
		logging.From(ctx).Warn("unexpected value type for timestamp property, treating as absent",
			"key", key, "type", fmt.Sprintf("%T", raw))
		return nil
	}
}

// ExtractRecord reads a nested record from the record. The value is
// returned only if it already is record-shaped.
func ExtractRecord(ctx context.Context, rec *model.Record, key string) *model.Record {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case *model.Record:
		return v
	case map[string]any:
		return model.RecordFrom(v)
	default:
		logging.From(ctx).Warn("unexpected value type for nested record property, treating as absent",
			"key", key, "type", fmt.Sprintf("%T", raw))
		return nil
	}
}

// ExtractSlice reads an array value from the record. The value is returned
// only if it already is array-shaped.
func ExtractSlice(ctx context.Context, rec *model.Record, key string) []any {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		logging.From(ctx).Warn("unexpected value type for array property, treating as absent",
			"key", key, "type", fmt.Sprintf("%T", raw))
		return nil
	}
}
