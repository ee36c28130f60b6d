package helper

import (
	"github.com/aescanero/dago-node-render/internal/value"
)

// Polarity selects between `if` and `unless` behavior
type Polarity uint8

const (
	// Positive renders the primary block when the condition is truthy
	Positive Polarity = iota
	// Negated renders the primary block when the condition is falsy
	Negated
)

// String returns the helper name bound to the polarity
func (p Polarity) String() string {
	if p == Negated {
		return "unless"
	}
	return "if"
}

// IncludeZeroOption is the hash option that makes a numeric zero truthy
const IncludeZeroOption = "includeZero"

var (
	// If is the helper registered as `if`
	If = Conditional{Polarity: Positive}
	// Unless is the helper registered as `unless`
	Unless = Conditional{Polarity: Negated}
)

// Conditional is the shared implementation of `if` and `unless`.
// It holds no mutable state and is safe for concurrent use.
type Conditional struct {
	Polarity Polarity
}

// Name returns the registration name
func (c Conditional) Name() string {
	return c.Polarity.String()
}

// Select returns the sub-template the invocation should render, or nil
func (c Conditional) Select(inv *Invocation) (Template, error) {
	param, ok := inv.Param(0)
	if !ok {
		return nil, &MissingArgumentError{Helper: c.Name()}
	}

	includeZero, _ := inv.HashBool(IncludeZeroOption)

	matched := value.Truthy(param, includeZero)
	if c.Polarity == Negated {
		matched = !matched
	}

	if matched {
		return inv.Template, nil
	}
	return inv.Inverse, nil
}

// Call selects a sub-template and delegates its rendering to r.
// The delegate's error is returned unchanged.
func (c Conditional) Call(r Renderer, inv *Invocation, ctx Context, state State, out Output) error {
	tmpl, err := c.Select(inv)
	if err != nil {
		return err
	}
	if tmpl == nil {
		return nil
	}
	return r.Render(tmpl, ctx, state, out)
}
