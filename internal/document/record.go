// Package document is the access layer over the portal's key-value tables.
//
// Every resource type lives in its own table keyed by an integer "id". An
// Adapter hides the store's pagination and numeric encoding: numbers are
// persisted as exact decimal text and come back as int64 when they have no
// fractional part, float64 otherwise.
package document

import (
	"errors"
	"math"
	"time"
)

const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"

	// TimestampLayout is ISO-8601 in UTC without a zone suffix, which keeps
	// timestamps string-sortable and matches records already in the tables.
	TimestampLayout = "2006-01-02T15:04:05.000000"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrExists        = errors.New("record already exists")
	ErrDuplicate     = errors.New("value already in list")
	ErrInvalidNumber = errors.New("number cannot be stored")
)

// Record is one schemaless document. Values are int64, float64, string, bool,
// []any, map[string]any or nil.
type Record map[string]any

func (r Record) ID() (int64, bool) {
	return r.Int(FieldID)
}

func (r Record) Int(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func (r Record) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (r Record) clone() Record {
	out := make(Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormatTimestamp renders t the way created_at and updated_at are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
