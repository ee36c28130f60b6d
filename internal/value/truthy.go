package value

import "math"

// Truthy maps v to a boolean for conditional evaluation.
// Zero counts as true only when includeZero is set; NaN is always false.
func Truthy(v Value, includeZero bool) bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		if math.IsNaN(v.n) {
			return false
		}
		if v.n == 0 {
			return includeZero
		}
		return true
	case KindString:
		return v.s != ""
	case KindArray:
		return len(v.arr) > 0
	case KindObject:
		return len(v.obj) > 0
	}
	// unreachable: Value can only be built through the constructors above
	return false
}

// Truthy is a shorthand for Truthy(v, includeZero)
func (v Value) Truthy(includeZero bool) bool {
	return Truthy(v, includeZero)
}
