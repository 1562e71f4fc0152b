package models

import (
	"fmt"
	"strconv"
)

// FirstString returns the first key in keys whose value in raw is a
// non-empty string (numbers are stringified). Deterministic first-match-wins
// extraction over the backend's duck-typed payloads.
func FirstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringValue(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

// NestedFirstString descends into raw[field] (when it is an object) and
// applies FirstString over keys there.
func NestedFirstString(raw map[string]any, field string, keys ...string) string {
	nested, ok := raw[field].(map[string]any)
	if !ok {
		return ""
	}
	return FirstString(nested, keys...)
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return ""
	case nil:
		return ""
	default:
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return ""
	}
}
