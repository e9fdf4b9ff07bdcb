package mirror

import (
	"encoding/base64"
	"math"
	"regexp"
	"time"
)

// MaxFieldBytes is the Firestore per-field size ceiling. Oversized string
// fields (member photos in practice) are dropped from the mirrored document
// rather than failing the whole batch.
const MaxFieldBytes = 1048487

var dateLike = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)

// ConvertRow maps one relational row onto a mirror-safe document. Nil values
// are omitted, date-shaped strings become timestamps, byte blobs become
// base64, and anything Firestore cannot store (NaN, Inf, oversized fields)
// is dropped.
func ConvertRow(row map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for key, value := range row {
		if converted, ok := convertValue(value); ok {
			out[key] = converted
		}
	}
	return out
}

func convertValue(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		if len(v) > MaxFieldBytes {
			return nil, false
		}
		if dateLike.MatchString(v) {
			if t, err := parseDateString(v); err == nil {
				return t, true
			}
		}
		return v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		return v, true
	case float32:
		return convertValue(float64(v))
	case []byte:
		encoded := base64.StdEncoding.EncodeToString(v)
		if len(encoded) > MaxFieldBytes {
			return nil, false
		}
		return encoded, true
	case time.Time:
		return v, true
	default:
		return v, true
	}
}

func parseDateString(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
