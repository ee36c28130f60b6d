// Package cel provides a CEL (Common Expression Language) evaluator for template selection rules.
//
// Rules see the render request data under the `data` variable.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//
//	vars := map[string]interface{}{
//	    "data": map[string]interface{}{
//	        "locale": "es",
//	        "score":  0.95,
//	    },
//	}
//
//	result, err := evaluator.Evaluate(ctx, "data.locale == 'es'", vars)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched := result.(bool) // true
package cel
