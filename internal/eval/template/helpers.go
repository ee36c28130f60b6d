package template

import (
	"strings"

	"github.com/aescanero/dago-node-render/internal/value"
)

// builtinHelpers returns the utility helpers bound on every template.
// Params are taken as interface{} and converted with the value package so
// helpers behave the same for Go data and decoded JSON.
func builtinHelpers() map[string]interface{} {
	return map[string]interface{}{
		"uppercase": func(v interface{}) string {
			return strings.ToUpper(value.FromGo(v).String())
		},
		"lowercase": func(v interface{}) string {
			return strings.ToLower(value.FromGo(v).String())
		},
		"trim": func(v interface{}) string {
			return strings.TrimSpace(value.FromGo(v).String())
		},
		"default": defaultHelper,
		"eq": func(a, b interface{}) bool {
			return value.FromGo(a).Equal(value.FromGo(b))
		},
		"ne": func(a, b interface{}) bool {
			return !value.FromGo(a).Equal(value.FromGo(b))
		},
		"gt": func(a, b interface{}) bool {
			x, y, ok := numbers(a, b)
			return ok && x > y
		},
		"lt": func(a, b interface{}) bool {
			x, y, ok := numbers(a, b)
			return ok && x < y
		},
		"contains": func(str, substr interface{}) bool {
			return strings.Contains(value.FromGo(str).String(), value.FromGo(substr).String())
		},
		"join": joinHelper,
		"len": func(v interface{}) int {
			return value.Shallow(v).Len()
		},
	}
}

// defaultHelper returns defaultValue when v is null or the empty string
func defaultHelper(v interface{}, defaultValue interface{}) interface{} {
	converted := value.Shallow(v)
	if converted.IsNull() {
		return defaultValue
	}
	if s, ok := converted.AsString(); ok && s == "" {
		return defaultValue
	}
	return v
}

func joinHelper(arr interface{}, sep interface{}) string {
	items := value.FromGo(arr)
	if items.Kind() != value.KindArray {
		return items.String()
	}
	strs := make([]string, items.Len())
	for i := range strs {
		strs[i] = items.Index(i).String()
	}
	return strings.Join(strs, value.FromGo(sep).String())
}

func numbers(a, b interface{}) (float64, float64, bool) {
	x, okX := value.FromGo(a).AsNumber()
	y, okY := value.FromGo(b).AsNumber()
	return x, y, okX && okY
}
