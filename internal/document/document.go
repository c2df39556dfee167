// Package document holds the raw, order-preserving view of an OpenAPI or
// Swagger description that the conversion engine operates on.
package document

import "strings"

// httpMethods are the only path-item keys treated as operations. Sibling keys
// such as "parameters" or "summary" are not operations.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// Document is a read-only view over one parsed API description.
type Document struct {
	root *Map
}

// New wraps a parsed root mapping.
func New(root *Map) *Document {
	if root == nil {
		root = NewMap()
	}
	return &Document{root: root}
}

// Root returns the raw root mapping.
func (d *Document) Root() *Map {
	return d.root
}

// PathNames returns the declared paths in document order.
func (d *Document) PathNames() []string {
	paths := d.root.GetMap("paths")
	if paths == nil {
		return nil
	}
	return paths.Keys()
}

// Methods returns the HTTP methods declared under path, in document order.
func (d *Document) Methods(path string) []string {
	paths := d.root.GetMap("paths")
	if paths == nil {
		return nil
	}
	item := paths.GetMap(path)
	if item == nil {
		return nil
	}
	var methods []string
	for _, key := range item.Keys() {
		if httpMethods[strings.ToLower(key)] {
			methods = append(methods, key)
		}
	}
	return methods
}

// Operation returns the operation object declared for (path, method), or nil.
func (d *Document) Operation(path, method string) *Map {
	paths := d.root.GetMap("paths")
	if paths == nil {
		return nil
	}
	item := paths.GetMap(path)
	if item == nil {
		return nil
	}
	return item.GetMap(method)
}

// Definitions returns the mapping reference targets are defined in:
// "definitions" for Swagger 2 documents, "components.schemas" for OpenAPI 3.
func (d *Document) Definitions() *Map {
	if defs := d.root.GetMap("definitions"); defs != nil {
		return defs
	}
	if components := d.root.GetMap("components"); components != nil {
		return components.GetMap("schemas")
	}
	return nil
}

// BaseURL returns the first declared server URL, or the Swagger 2 equivalent
// assembled from schemes, host and basePath. Empty when the document declares
// neither.
func (d *Document) BaseURL() string {
	if servers, ok := d.root.Get("servers"); ok {
		if list, ok := servers.([]any); ok && len(list) > 0 {
			if first, ok := list[0].(*Map); ok {
				if url := first.GetString("url"); url != "" {
					return url
				}
			}
		}
	}
	host := d.root.GetString("host")
	if host == "" {
		return ""
	}
	scheme := "https"
	if schemes, ok := d.root.Get("schemes"); ok {
		if list, ok := schemes.([]any); ok && len(list) > 0 {
			if s, ok := list[0].(string); ok && s != "" {
				scheme = s
			}
		}
	}
	return scheme + "://" + host + d.root.GetString("basePath")
}
