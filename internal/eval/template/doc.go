// Package template provides the Handlebars host engine for the render worker.
//
// Templates are parsed by raymond and cached. Every compiled template gets its
// own helper bindings, so the package never mutates raymond's global helper
// table and several engines can live in one process. The conditional block
// helpers `if` and `unless` are served by package helper through a bridge;
// raymond only walks the tree and renders the block the helper selects.
//
// Example usage:
//
//	engine := template.NewEngine(template.WithLogger(logger))
//
//	data := map[string]interface{}{
//	    "a": map[string]interface{}{"b": 99, "c": map[string]interface{}{"d": true}},
//	}
//
//	result, err := engine.Render("{{#if a.c.d}}hello {{a.b}}{{/if}}", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: hello 99
//
// Built-in helpers:
//   - if / unless - Conditional blocks, `includeZero=true` makes 0 truthy
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - trim - Trim whitespace from string
//   - default - Return default value if first arg is null or empty
//   - eq / ne - Equality comparison on converted values
//   - gt / lt - Numeric comparison
//   - contains - Check if string contains substring
//   - join - Join array elements with separator
//   - len - Get length of array/string/map
//
// Example with helpers:
//
//	{{#if count includeZero=true}}{{count}} items{{else}}unknown{{/if}}
//	{{#unless (eq status "active")}}inactive{{/unless}}
//	{{default nickname "N/A"}}
package template
