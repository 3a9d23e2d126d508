package utils

import (
	"fmt"
	"math"
	"strconv"
)

// ToInt converts decoded field values to int using explicit type switching.
// Decoders hand out integers as any of the sized types (CBOR yields uint64 or
// int64, JSON yields float64), so every numeric kind is accepted. The second
// return value is false when val is not a whole number or numeric string.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case int16:
		return int(v), true
	case int8:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case uint16:
		return int(v), true
	case uint8:
		return int(v), true
	case float64:
		return int(v), v == math.Trunc(v)
	case float32:
		return int(v), float64(v) == math.Trunc(float64(v))
	case string:
		i, err := strconv.Atoi(v)
		return i, err == nil
	default:
		return 0, false
	}
}

// ToString converts a field value to string. Nil yields "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToMap returns val as a field map, or nil when it is not one.
func ToMap(val any) map[string]any {
	if m, ok := val.(map[string]any); ok {
		return m
	}
	return nil
}

// ToSlice returns val as a list, or nil when it is not one.
func ToSlice(val any) []any {
	switch v := val.(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	default:
		return nil
	}
}

// ToStrings converts a list value to a string slice, skipping non-string entries.
func ToStrings(val any) []string {
	if s, ok := val.([]string); ok {
		return s
	}
	var out []string
	for _, item := range ToSlice(val) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
