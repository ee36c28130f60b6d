package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value
type Kind uint8

const (
	// KindNull is the zero Kind, so the zero Value is Null
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable dynamic value
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value
func Null() Value {
	return Value{}
}

// Bool wraps a boolean
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number wraps a float64. NaN and infinities are kept as is.
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// String wraps a string
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array wraps a sequence of values
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Object wraps a mapping of string keys to values
func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, obj: fields}
}

// Kind returns the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is Null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean held by v
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsNumber returns the number held by v
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// AsString returns the string held by v
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Len returns the number of elements of a String, Array or Object, and 0 otherwise
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.s)
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the i-th element of an Array, or Null when out of range
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Null()
	}
	return v.arr[i]
}

// Get returns the field of an Object, or Null when missing
func (v Value) Get(key string) Value {
	if v.kind != KindObject {
		return Null()
	}
	return v.obj[key]
}

// Keys returns the sorted keys of an Object
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports deep equality. NaN is never equal to itself.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, fv := range v.obj {
			ov, ok := other.obj[k]
			if !ok || !fv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v the way a template would print it
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindString:
		return v.s
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, item := range v.arr {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindObject:
		return fmt.Sprintf("[object %d]", len(v.obj))
	default:
		return ""
	}
}
