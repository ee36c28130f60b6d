package helper

import (
	"github.com/aescanero/dago-node-render/internal/value"
)

// Template is an opaque handle to a compiled sub-template owned by the host.
// Helpers never inspect it; they only hand it back to the Renderer.
type Template interface{}

// Context is the host's current data scope, passed through untouched
type Context interface{}

// State is the host's mutable render book-keeping, passed through untouched
type State interface{}

// Output is the append-only sink a render writes to
type Output interface {
	WriteString(s string) (int, error)
}

// Renderer is the render-delegate capability supplied by the host
type Renderer interface {
	Render(tmpl Template, ctx Context, state State, out Output) error
}

// Helper is a named block helper the host can dispatch to
type Helper interface {
	Name() string
	Call(r Renderer, inv *Invocation, ctx Context, state State, out Output) error
}

// Invocation is the bound call site of a block helper
type Invocation struct {
	Params   []value.Value
	Hash     map[string]value.Value
	Template Template // primary block, nil when absent
	Inverse  Template // else block, nil when absent
}

// Param returns the i-th positional value
func (inv *Invocation) Param(i int) (value.Value, bool) {
	if inv == nil || i < 0 || i >= len(inv.Params) {
		return value.Null(), false
	}
	return inv.Params[i], true
}

// HashBool returns a boolean hash option. Missing or non-boolean options
// report ok=false.
func (inv *Invocation) HashBool(name string) (bool, bool) {
	if inv == nil {
		return false, false
	}
	v, ok := inv.Hash[name]
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// Builtins returns a fresh registration table for the conditional helpers
func Builtins() map[string]Helper {
	return map[string]Helper{
		If.Name():     If,
		Unless.Name(): Unless,
	}
}
