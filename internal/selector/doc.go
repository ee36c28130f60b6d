// Package selector picks which stored template a render request uses.
//
// Rules are CEL expressions evaluated in order against the request data; the
// first rule that returns true selects its template. When no rule matches, or
// a rule fails to evaluate, the fallback template is used.
//
// Example:
//
//	config := &selector.Config{
//	    Rules: []selector.Rule{
//	        {Condition: "data.locale == 'es'", Template: "welcome_es"},
//	        {Condition: "data.plan == 'pro'", Template: "welcome_pro"},
//	    },
//	    Fallback: "welcome",
//	}
//	selection, err := sel.Select(ctx, data, config)
package selector
