// Package har defines the HAR 1.2 request shape the converter emits,
// extended with underscore-prefixed custom fields per the HAR convention.
package har

import "oas2har/internal/document"

// Header is one request header entry.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// QueryParam is one query string entry.
type QueryParam struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PathParam describes one path template parameter and its synthesized value.
type PathParam struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Cookie is one request cookie entry. The converter never emits cookies but
// the HAR shape requires the field.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PostData carries the serialized request body.
type PostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// Request is a synthetic HAR request descriptor for one declared operation.
// No request is ever sent; path parameters stay unsubstituted in the URL and
// their descriptors travel in the _pathParams extension field.
type Request struct {
	Method      string       `json:"method"`
	URL         string       `json:"url"`
	HTTPVersion string       `json:"httpVersion"`
	Cookies     []Cookie     `json:"cookies"`
	Headers     []Header     `json:"headers"`
	QueryString []QueryParam `json:"queryString"`
	PostData    *PostData    `json:"postData,omitempty"`
	HeadersSize int          `json:"headersSize"`
	BodySize    int          `json:"bodySize"`

	Operation       *document.Map `json:"_operation,omitempty"`
	Path            string        `json:"_path,omitempty"`
	PathParams      []PathParam   `json:"_pathParams"`
	RequiredHeaders []Header      `json:"_requiredHeaders"`
}
