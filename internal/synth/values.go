// Package synth produces deterministic placeholder and example values for
// parameters and request bodies that lack caller-supplied data.
package synth

import (
	"fmt"
	"strings"

	"oas2har/internal/document"
)

// Values maps parameter names to caller-supplied values.
type Values map[string]any

// ParamValue synthesizes the value for a path or query parameter. Precedence:
// declared example, caller-supplied value, declared default, then the
// type-based placeholder "SOME_<TYPE>_VALUE".
func ParamValue(param *document.Map, values Values) string {
	return paramValue(param, values, typePlaceholder)
}

// HeaderValue synthesizes the value for a header parameter. Same precedence
// as ParamValue, but the placeholder is name-based: "SOME_<NAME>_VALUE".
func HeaderValue(param *document.Map, values Values) string {
	return paramValue(param, values, namePlaceholder)
}

func paramValue(param *document.Map, values Values, placeholder func(*document.Map) string) string {
	if example, ok := lookupField(param, "example"); ok {
		return stringify(example)
	}
	if values != nil {
		if v, ok := values[param.GetString("name")]; ok {
			return stringify(v)
		}
	}
	if def, ok := lookupField(param, "default"); ok {
		return stringify(def)
	}
	return placeholder(param)
}

// lookupField reads a field from the parameter itself, falling back to its
// schema. Swagger 2 declares example/default on the parameter, OpenAPI 3
// under parameter.schema.
func lookupField(param *document.Map, field string) (any, bool) {
	if v, ok := param.Get(field); ok {
		return v, true
	}
	if schema := param.GetMap("schema"); schema != nil {
		if v, ok := schema.Get(field); ok {
			return v, true
		}
	}
	return nil, false
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// SchemaType reads the parameter's declared type, from its schema when
// present (OpenAPI 3) or from the parameter itself (Swagger 2).
func SchemaType(param *document.Map) string {
	if schema := param.GetMap("schema"); schema != nil {
		if t := schema.GetString("type"); t != "" {
			return t
		}
	}
	return param.GetString("type")
}

func typePlaceholder(param *document.Map) string {
	return "SOME_" + strings.ToUpper(SchemaType(param)) + "_VALUE"
}

func namePlaceholder(param *document.Map) string {
	return "SOME_" + strings.ToUpper(param.GetString("name")) + "_VALUE"
}
