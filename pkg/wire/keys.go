// Package wire translates between the hub's camelCase JSON keys and the
// snake_case names used by local types.
//
// The translation is purely mechanical: every upper-case letter in a wire key
// starts a new snake segment, and every snake segment after the first is
// capitalised on the way back. For any key without underscores,
// Camel(Snake(k)) == k, so attribute names never need an exception table.
package wire

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Snake converts a lowerCamelCase wire key to its snake_case local name.
// "colorTemperatureMin" becomes "color_temperature_min" and "currentPM25"
// becomes "current_p_m25".
func Snake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Camel converts a snake_case local name to its lowerCamelCase wire key.
func Camel(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	b.Grow(len(name))
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(p[size:])
	}
	return b.String()
}

// SnakeKeys returns a copy of v with every object key, at any depth, passed
// through Snake. Values are left untouched.
func SnakeKeys(v any) any {
	return mapKeys(v, Snake)
}

// CamelKeys returns a copy of v with every object key, at any depth, passed
// through Camel.
func CamelKeys(v any) any {
	return mapKeys(v, Camel)
}

func mapKeys(v any, fn func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fn(k)] = mapKeys(val, fn)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = mapKeys(val, fn)
		}
		return out
	default:
		return v
	}
}
