package value

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by ParseJSON for malformed documents
var ErrInvalidJSON = errors.New("invalid json")

// ParseJSON decodes a JSON document into a Value
func ParseJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Null(), ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	}

	if r.IsArray() {
		results := r.Array()
		items := make([]Value, len(results))
		for i, item := range results {
			items[i] = fromResult(item)
		}
		return Array(items...)
	}

	fields := make(map[string]Value)
	r.ForEach(func(key, item gjson.Result) bool {
		fields[key.String()] = fromResult(item)
		return true
	})
	return Object(fields)
}
