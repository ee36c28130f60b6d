// Package value provides the dynamic data model seen by template helpers.
//
// A Value is a closed variant over six kinds: Null, Bool, Number, String,
// Array and Object. Host data is converted with FromGo or ParseJSON before it
// reaches a helper, so helpers only ever switch over a known set of kinds.
//
// Example usage:
//
//	v := value.FromGo(map[string]interface{}{
//	    "count": 0,
//	    "tags":  []string{"a", "b"},
//	})
//
//	v.Get("count").Truthy(false) // false
//	v.Get("count").Truthy(true)  // true (includeZero)
//	v.Get("tags").Truthy(false)  // true
//
// Truthiness rules:
//   - Null is false
//   - Bool is its own value
//   - Number is false for NaN, false for zero unless includeZero is set, true otherwise
//   - String, Array and Object are true when non-empty
package value
