// Package converter turns every declared path+method pair of an API
// description into a synthetic HAR request descriptor.
package converter

import (
	"encoding/json"
	"fmt"
	"strings"

	"oas2har/internal/document"
	"oas2har/internal/har"
	"oas2har/internal/resolver"
	"oas2har/internal/synth"
)

const (
	defaultMimeType    = "application/json"
	defaultDescription = "No description available"
)

// Options carries the caller-supplied inputs of one conversion run.
type Options struct {
	// Values maps parameter names to values used when a parameter declares
	// neither an example nor a default.
	Values synth.Values

	// APIKey, when set, is emitted as "Bearer <APIKey>" for required
	// Authorization header parameters.
	APIKey string

	// Instantiate materializes an example body value from a resolved schema.
	// Defaults to synth.Instantiate.
	Instantiate synth.Instantiator
}

func (o Options) instantiator() synth.Instantiator {
	if o.Instantiate != nil {
		return o.Instantiate
	}
	return synth.Instantiate
}

// Entry is one batch output element.
type Entry struct {
	Method      string       `json:"method"`
	URL         string       `json:"url"`
	Description string       `json:"description"`
	Har         *har.Request `json:"har"`
}

// Result tags one endpoint's conversion outcome with its (path, method) pair,
// so a failing operation does not hide which endpoint failed.
type Result struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Entry  *Entry `json:"entry,omitempty"`
	Err    error  `json:"-"`
}

// Converter builds HAR request descriptors from one API description.
type Converter struct {
	doc *document.Document
}

// New creates a converter over doc. The converter mutates nothing in doc:
// schema resolution substitutes deep copies of definition nodes, so distinct
// conversion runs over the same document are independent.
func New(doc *document.Document) *Converter {
	return &Converter{doc: doc}
}

// Endpoint converts the single operation declared for (path, method). Unlike
// the batch entry points it has no failure boundary: a malformed operation
// surfaces its error directly.
func (c *Converter) Endpoint(path, method string, opts Options) (*har.Request, error) {
	op := c.doc.Operation(path, method)
	if op == nil {
		return nil, fmt.Errorf("no %s operation declared for %s", strings.ToUpper(method), path)
	}

	classified, err := classifyParameters(c.doc, op, opts)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
	}

	postData, contentType, err := buildPayload(c.doc, op, opts.instantiator())
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
	}

	return &har.Request{
		Method:          strings.ToUpper(method),
		URL:             c.doc.BaseURL() + path,
		HTTPVersion:     "HTTP/1.1",
		Cookies:         []har.Cookie{},
		Headers:         assembleHeaders(contentType, classified.headers),
		QueryString:     classified.query,
		PostData:        postData,
		HeadersSize:     0,
		BodySize:        0,
		Operation:       op,
		Path:            path,
		PathParams:      classified.pathParams,
		RequiredHeaders: classified.required,
	}, nil
}

// Results converts every declared (path, method) pair in document order,
// isolating failures per endpoint.
func (c *Converter) Results(opts Options) []Result {
	var results []Result
	for _, path := range c.doc.PathNames() {
		for _, method := range c.doc.Methods(path) {
			req, err := c.Endpoint(path, method, opts)
			if err != nil {
				results = append(results, Result{Path: path, Method: method, Err: err})
				continue
			}
			results = append(results, Result{
				Path:   path,
				Method: method,
				Entry: &Entry{
					Method:      req.Method,
					URL:         req.URL,
					Description: describe(req.Operation),
					Har:         req,
				},
			})
		}
	}
	return results
}

// All is the legacy batch contract: one entry per declared operation in
// document order, or nil if any endpoint failed to convert.
func (c *Converter) All(opts Options) []Entry {
	results := c.Results(opts)
	entries := make([]Entry, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			return nil
		}
		entries = append(entries, *result.Entry)
	}
	return entries
}

func describe(op *document.Map) string {
	if op != nil {
		if description := op.GetString("description"); description != "" {
			return description
		}
	}
	return defaultDescription
}

type classified struct {
	pathParams []har.PathParam
	query      []har.QueryParam
	headers    []har.Header
	required   []har.Header
}

// classifyParameters routes the operation's declared parameters by location,
// resolving one level of "$ref" per parameter first. Only required headers
// are surfaced; a required Authorization header combined with a caller API
// key yields "Bearer <key>" in the header entry and the raw key in the
// required-header metadata. Emission follows declaration order.
func classifyParameters(doc *document.Document, op *document.Map, opts Options) (classified, error) {
	out := classified{
		pathParams: []har.PathParam{},
		query:      []har.QueryParam{},
		headers:    []har.Header{},
		required:   []har.Header{},
	}

	raw, ok := op.Get("parameters")
	if !ok {
		return out, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return out, fmt.Errorf("parameters is not a list")
	}

	for i, item := range list {
		param, ok := item.(*document.Map)
		if !ok {
			return out, fmt.Errorf("parameter %d is not an object", i)
		}
		if ref := param.GetString("$ref"); ref != "" {
			resolved, ok := resolver.Resolve(doc.Root(), ref).(*document.Map)
			if !ok {
				return out, fmt.Errorf("parameter reference %q did not resolve to an object", ref)
			}
			param = resolved
		}

		switch param.GetString("in") {
		case "path":
			out.pathParams = append(out.pathParams, har.PathParam{
				Name:  param.GetString("name"),
				Value: synth.ParamValue(param, opts.Values),
				Type:  synth.SchemaType(param),
			})
		case "query":
			out.query = append(out.query, har.QueryParam{
				Name:  param.GetString("name"),
				Value: synth.ParamValue(param, opts.Values),
			})
		case "header":
			if !param.GetBool("required") {
				continue
			}
			name := param.GetString("name")
			if name == "Authorization" && opts.APIKey != "" {
				out.headers = append(out.headers, har.Header{Name: name, Value: "Bearer " + opts.APIKey})
				out.required = append(out.required, har.Header{Name: name, Value: opts.APIKey})
				continue
			}
			value := synth.HeaderValue(param, opts.Values)
			out.headers = append(out.headers, har.Header{Name: name, Value: value})
			out.required = append(out.required, har.Header{Name: name, Value: value})
		}
	}
	return out, nil
}

// buildPayload extracts the request body, if any. Only the first declared
// content type is used; its schema is fully resolved, materialized through
// the instantiator and serialized as JSON text.
func buildPayload(doc *document.Document, op *document.Map, instantiate synth.Instantiator) (*har.PostData, string, error) {
	requestBody := op.GetMap("requestBody")
	if requestBody == nil {
		return nil, "", nil
	}
	content := requestBody.GetMap("content")
	if content == nil || content.Len() == 0 {
		return nil, "", nil
	}

	contentType := content.Keys()[0]
	var schema *document.Map
	if media := content.GetMap(contentType); media != nil {
		if raw, ok := media.Get("schema"); ok {
			resolved, ok := resolver.ResolveSchema(doc, raw).(*document.Map)
			if !ok {
				return nil, "", fmt.Errorf("request body schema for %q is not an object", contentType)
			}
			schema = resolved
		}
	}

	value := instantiate(schema)
	text, err := json.Marshal(value)
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize request body example: %w", err)
	}
	return &har.PostData{MimeType: contentType, Text: string(text)}, contentType, nil
}

// assembleHeaders emits the unconditional accept/content-type pair first —
// set to the first body content type, or application/json when the operation
// has no body — followed by the required declared headers in order.
func assembleHeaders(contentType string, declared []har.Header) []har.Header {
	if contentType == "" {
		contentType = defaultMimeType
	}
	headers := []har.Header{
		{Name: "accept", Value: contentType},
		{Name: "content-type", Value: contentType},
	}
	return append(headers, declared...)
}
