// Package resolver implements local JSON-Reference resolution for the subset
// of pointer shapes OpenAPI documents use: "#/definitions/X" and
// "#/components/...". References prefixed with an HTTP(S) scheme point at
// external documents and are never touched.
package resolver

import (
	"strings"

	"oas2har/internal/document"
)

// Resolve walks root along the given pointer, one key lookup per segment
// after the leading "#". Pointers with fewer than two segments resolve to an
// empty object; a lookup through a missing or non-mapping segment resolves to
// nil. Resolution is one level deep: a resolved value may itself contain
// further references.
func Resolve(root *document.Map, ref string) any {
	parts := strings.Split(ref, "/")
	if len(parts) < 2 {
		return document.NewMap()
	}
	var current any = root
	for _, segment := range parts[1:] {
		m, ok := current.(*document.Map)
		if !ok {
			return nil
		}
		current, _ = m.Get(segment)
	}
	return current
}

// IsExternal reports whether ref points outside the document.
func IsExternal(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// ResolveSchema replaces every local "$ref" reachable from schema — through
// object properties and array items — with a deep copy of the referenced
// definition, looked up by the pointer's last segment in the document's
// definitions mapping. The returned node contains no reachable local "$ref"
// unless the definitions are cyclic, in which case expansion of a reference
// already being expanded stops and the inner occurrence is left as a bare
// copy of the definition.
func ResolveSchema(doc *document.Document, schema any) any {
	return resolveNode(doc, schema, make(map[string]bool))
}

// resolveNode substitutes node if it is a reference, then descends into it.
// expanding tracks the references on the current expansion path so cyclic
// definitions terminate instead of recursing without bound.
func resolveNode(doc *document.Document, node any, expanding map[string]bool) any {
	m, ok := node.(*document.Map)
	if !ok {
		return node
	}

	ref := m.GetString("$ref")
	if ref == "" {
		resolveChildren(doc, m, expanding)
		return m
	}
	if IsExternal(ref) {
		return m
	}

	definition := lookupDefinition(doc, ref)
	if definition == nil {
		return m
	}
	resolved := definition.Clone()
	if expanding[ref] {
		return resolved
	}
	expanding[ref] = true
	resolveChildren(doc, resolved, expanding)
	delete(expanding, ref)
	return resolved
}

// resolveChildren descends into every property or item regardless of whether
// a substitution occurred, so nested references at any depth are resolved.
func resolveChildren(doc *document.Document, schema *document.Map, expanding map[string]bool) {
	switch schema.GetString("type") {
	case "object":
		properties := schema.GetMap("properties")
		if properties == nil {
			return
		}
		for _, name := range properties.Keys() {
			child, _ := properties.Get(name)
			properties.Set(name, resolveNode(doc, child, expanding))
		}
	case "array":
		if items, ok := schema.Get("items"); ok {
			schema.Set("items", resolveNode(doc, items, expanding))
		}
	}
}

// lookupDefinition finds the definition named by the pointer's last segment.
func lookupDefinition(doc *document.Document, ref string) *document.Map {
	definitions := doc.Definitions()
	if definitions == nil {
		return nil
	}
	segments := strings.Split(ref, "/")
	name := segments[len(segments)-1]
	return definitions.GetMap(name)
}
