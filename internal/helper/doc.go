// Package helper implements the conditional block helpers `if` and `unless`.
//
// A helper never walks the template tree itself. The host renderer hands it
// an Invocation (resolved positional values, hash options and handles to
// the primary and inverse sub-templates) together with a Renderer callback.
// The helper evaluates its condition, picks at most one sub-template and
// asks the Renderer to render it into the same output.
//
// Example usage:
//
//	inv := &helper.Invocation{
//	    Params:   []value.Value{value.Number(0)},
//	    Hash:     map[string]value.Value{"includeZero": value.Bool(true)},
//	    Template: primary,
//	    Inverse:  inverse,
//	}
//
//	err := helper.If.Call(renderer, inv, ctx, state, out) // renders primary
//
// Registration contract:
//   - if     - Conditional{Polarity: Positive}
//   - unless - Conditional{Polarity: Negated}
//
// Template syntax handled by the host parser:
//
//	{{#if EXPR [includeZero=BOOL]}} PRIMARY {{else}} INVERSE {{/if}}
//	{{#unless EXPR [includeZero=BOOL]}} PRIMARY {{else}} INVERSE {{/unless}}
package helper
