package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/aescanero/dago-node-render/internal/helper"
	"github.com/aescanero/dago-node-render/internal/value"
)

var errExtraParams = errors.New("expects exactly one parameter")

// blockHandle names one of the two sub-templates of the current raymond block
type blockHandle uint8

const (
	primaryBlock blockHandle = iota + 1
	inverseBlock
)

// blockRenderer renders the current block's sub-templates through raymond.
// Scope push/pop for the block body stays with raymond.
type blockRenderer struct {
	options *raymond.Options
}

func (r blockRenderer) Render(tmpl helper.Template, _ helper.Context, _ helper.State, out helper.Output) error {
	handle, ok := tmpl.(blockHandle)
	if !ok {
		return fmt.Errorf("unknown block handle %T", tmpl)
	}

	var result string
	switch handle {
	case primaryBlock:
		result = r.options.Fn()
	case inverseBlock:
		result = r.options.Inverse()
	default:
		return fmt.Errorf("unknown block handle %d", handle)
	}

	_, err := out.WriteString(result)
	return err
}

// blockHelper adapts a helper.Helper to raymond's block helper signature.
// raymond enforces the single positional parameter before the call; errors
// from the helper abort the render through raymond's panic recovery, which
// only recovers plain errors.
func blockHelper(h helper.Helper) func(interface{}, *raymond.Options) interface{} {
	return func(_ interface{}, options *raymond.Options) interface{} {
		// raymond fills a nil second parameter into the options slot
		if options == nil {
			panic(fmt.Errorf("helper %s: %w", h.Name(), errExtraParams))
		}

		var out strings.Builder
		err := h.Call(blockRenderer{options: options}, newInvocation(options), options.Ctx(), options.DataFrame(), &out)
		if err != nil {
			panic(fmt.Errorf("helper %s: %w", h.Name(), err))
		}
		return out.String()
	}
}

// newInvocation converts raymond's evaluated params and hash into an Invocation.
// Only the top level of each value is converted. raymond renders a missing
// block as the empty string, so both handles are always present.
func newInvocation(options *raymond.Options) *helper.Invocation {
	params := options.Params()
	inv := &helper.Invocation{
		Params:   make([]value.Value, len(params)),
		Hash:     make(map[string]value.Value, len(options.Hash())),
		Template: primaryBlock,
		Inverse:  inverseBlock,
	}

	for i, p := range params {
		inv.Params[i] = value.Shallow(p)
	}
	for k, v := range options.Hash() {
		inv.Hash[k] = value.Shallow(v)
	}

	return inv
}
