package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	valueType      = reflect.TypeOf(Value{})
	jsonNumberType = reflect.TypeOf(json.Number(""))
)

// FromGo converts host data to a Value. The conversion is total: kinds
// without a natural counterpart (funcs, channels) become their fmt rendering,
// and a reference that leads back into its own ancestors becomes Null.
func FromGo(data interface{}) Value {
	if v, ok := fromScalar(data); ok {
		return v
	}
	c := converter{active: make(map[visit]struct{})}
	return c.convert(reflect.ValueOf(data))
}

// Shallow converts only the top level of data. Containers keep their length
// and keys but every element is Null, which is all Truthy and Len need.
func Shallow(data interface{}) Value {
	if v, ok := fromScalar(data); ok {
		return v
	}
	c := converter{shallow: true}
	return c.convert(reflect.ValueOf(data))
}

func fromScalar(data interface{}) (Value, bool) {
	switch d := data.(type) {
	case nil:
		return Null(), true
	case Value:
		return d, true
	case bool:
		return Bool(d), true
	case string:
		return String(d), true
	case float64:
		return Number(d), true
	case int:
		return Number(float64(d)), true
	case json.Number:
		return fromNumber(d), true
	}
	return Value{}, false
}

func fromNumber(n json.Number) Value {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return String(string(n))
	}
	return Number(f)
}

// visit identifies a reference currently being converted
type visit struct {
	ptr uintptr
	typ reflect.Type
}

type converter struct {
	shallow bool
	active  map[visit]struct{}
}

// enter marks rv as in progress. It reports false when rv is already on the
// current path.
func (c *converter) enter(rv reflect.Value) (visit, bool) {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if _, seen := c.active[key]; seen {
		return key, false
	}
	c.active[key] = struct{}{}
	return key, true
}

func (c *converter) leave(key visit) {
	delete(c.active, key)
}

// child converts a container element
func (c *converter) child(rv reflect.Value) Value {
	if c.shallow {
		return Null()
	}
	return c.convert(rv)
}

func (c *converter) convert(rv reflect.Value) Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null()
		}
		if rv.Kind() == reflect.Pointer && !c.shallow {
			key, ok := c.enter(rv)
			if !ok {
				return Null()
			}
			defer c.leave(key)
		}
		rv = rv.Elem()
	}

	switch rv.Type() {
	case valueType:
		return rv.Interface().(Value)
	case jsonNumberType:
		return fromNumber(json.Number(rv.String()))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return Array()
		}
		if rv.Len() > 0 && !c.shallow {
			key, ok := c.enter(rv)
			if !ok {
				return Null()
			}
			defer c.leave(key)
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = c.child(rv.Index(i))
		}
		return Array(items...)
	case reflect.Map:
		if !rv.IsNil() && !c.shallow {
			key, ok := c.enter(rv)
			if !ok {
				return Null()
			}
			defer c.leave(key)
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[mapKey(iter.Key())] = c.child(iter.Value())
		}
		return Object(fields)
	case reflect.Struct:
		return c.convertStruct(rv)
	default:
		return String(fmt.Sprint(rv.Interface()))
	}
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

func (c *converter) convertStruct(rv reflect.Value) Value {
	rt := rv.Type()
	fields := make(map[string]Value, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields[name] = c.child(rv.Field(i))
	}
	return Object(fields)
}

// Interface converts v back to plain Go data: nil, bool, float64, string,
// []interface{} or map[string]interface{}.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		items := make([]interface{}, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Interface()
		}
		return items
	case KindObject:
		fields := make(map[string]interface{}, len(v.obj))
		for k, item := range v.obj {
			fields[k] = item.Interface()
		}
		return fields
	default:
		return nil
	}
}
