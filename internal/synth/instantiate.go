package synth

import "oas2har/internal/document"

// Instantiator materializes an example value from a fully resolved schema.
// The converter serializes whatever it returns as the request body text.
type Instantiator func(schema *document.Map) any

// maxDepth caps recursion into nested objects and arrays. Resolved cyclic
// definitions keep their innermost reference unexpanded, but a deeply nested
// acyclic schema should not blow the stack either.
const maxDepth = 16

// Instantiate is the default deterministic instantiator: declared example,
// then first enum entry, then declared default, then a format- or type-based
// sample value. Objects and arrays recurse into their properties and items.
func Instantiate(schema *document.Map) any {
	return instantiate(schema, 0)
}

func instantiate(schema *document.Map, depth int) any {
	if schema == nil || depth > maxDepth {
		return nil
	}

	if example, ok := schema.Get("example"); ok {
		return example
	}
	if enum, ok := schema.Get("enum"); ok {
		if list, ok := enum.([]any); ok && len(list) > 0 {
			return list[0]
		}
	}
	if def, ok := schema.Get("default"); ok {
		return def
	}

	switch schema.GetString("type") {
	case "object":
		return instantiateObject(schema, depth)
	case "array":
		if items := schema.GetMap("items"); items != nil {
			return []any{instantiate(items, depth+1)}
		}
		return []any{"sample_item"}
	case "string":
		return sampleString(schema.GetString("format"))
	case "number":
		return 123.45
	case "integer":
		if schema.GetString("format") == "int64" {
			return 123456789
		}
		return 123
	case "boolean":
		return true
	}

	// Untyped nodes with properties are treated as objects.
	if schema.GetMap("properties") != nil {
		return instantiateObject(schema, depth)
	}
	return nil
}

// instantiateObject keeps property declaration order in the produced value.
func instantiateObject(schema *document.Map, depth int) any {
	properties := schema.GetMap("properties")
	if properties == nil {
		return document.NewMap()
	}
	out := document.NewMap()
	for _, name := range properties.Keys() {
		if prop := properties.GetMap(name); prop != nil {
			out.Set(name, instantiate(prop, depth+1))
		}
	}
	return out
}

func sampleString(format string) string {
	switch format {
	case "email":
		return "test@example.com"
	case "date":
		return "2024-01-01"
	case "date-time":
		return "2024-01-01T12:00:00Z"
	case "uuid":
		return "123e4567-e89b-12d3-a456-426614174000"
	case "uri":
		return "https://example.com"
	case "ipv4":
		return "192.168.1.1"
	case "ipv6":
		return "2001:db8::1"
	}
	return "sample_string"
}
