package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"oas2har/internal/document"
	"oas2har/internal/har"
	"oas2har/internal/synth"
)

func mustDocument(t *testing.T, data string) *document.Document {
	t.Helper()
	root := document.NewMap()
	require.NoError(t, yaml.Unmarshal([]byte(data), root))
	return document.New(root)
}

func TestEndpointWithoutParametersOrBody(t *testing.T) {
	doc := mustDocument(t, `{
		"servers": [{"url": "https://api.example.com"}],
		"paths": {"/pets": {"get": {}}}
	}`)

	req, err := New(doc).Endpoint("/pets", "get", Options{})
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "https://api.example.com/pets", req.URL)
	assert.Equal(t, "HTTP/1.1", req.HTTPVersion)
	assert.Equal(t, []har.Header{
		{Name: "accept", Value: "application/json"},
		{Name: "content-type", Value: "application/json"},
	}, req.Headers)
	assert.Empty(t, req.QueryString)
	assert.Nil(t, req.PostData)
	assert.Empty(t, req.Cookies)
	assert.Zero(t, req.HeadersSize)
	assert.Zero(t, req.BodySize)
	assert.Empty(t, req.PathParams)
	assert.Empty(t, req.RequiredHeaders)
}

func TestEndpointUnknownOperation(t *testing.T) {
	doc := mustDocument(t, `{"paths": {"/pets": {"get": {}}}}`)

	_, err := New(doc).Endpoint("/pets", "post", Options{})
	assert.Error(t, err)
}

func TestQueryParameterSynthesis(t *testing.T) {
	tests := []struct {
		name   string
		param  string
		values synth.Values
		want   string
	}{
		{
			name:   "example wins over caller value and default",
			param:  `{"name": "limit", "in": "query", "schema": {"type": "integer", "example": "42", "default": 10}}`,
			values: synth.Values{"limit": 99},
			want:   "42",
		},
		{
			name:  "placeholder from schema type",
			param: `{"name": "limit", "in": "query", "schema": {"type": "integer"}}`,
			want:  "SOME_INTEGER_VALUE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDocument(t, `{"paths": {"/pets": {"get": {"parameters": [`+tt.param+`]}}}}`)
			req, err := New(doc).Endpoint("/pets", "get", Options{Values: tt.values})
			require.NoError(t, err)
			require.Len(t, req.QueryString, 1)
			assert.Equal(t, har.QueryParam{Name: "limit", Value: tt.want}, req.QueryString[0])
		})
	}
}

func TestPathParametersStayInTemplate(t *testing.T) {
	doc := mustDocument(t, `{
		"servers": [{"url": "https://api.example.com"}],
		"paths": {"/pets/{petId}": {"get": {"parameters": [
			{"name": "petId", "in": "path", "required": true, "schema": {"type": "integer"}}
		]}}}
	}`)

	req, err := New(doc).Endpoint("/pets/{petId}", "get", Options{})
	require.NoError(t, err)

	// Path parameters are never substituted into the URL.
	assert.Equal(t, "https://api.example.com/pets/{petId}", req.URL)
	assert.Equal(t, []har.PathParam{
		{Name: "petId", Value: "SOME_INTEGER_VALUE", Type: "integer"},
	}, req.PathParams)
}

func TestAuthorizationHeaderWithAPIKey(t *testing.T) {
	doc := mustDocument(t, `{"paths": {"/pets": {"get": {"parameters": [
		{"name": "Authorization", "in": "header", "required": true, "schema": {"type": "string"}}
	]}}}}`)

	req, err := New(doc).Endpoint("/pets", "get", Options{APIKey: "KEY123"})
	require.NoError(t, err)

	// The HAR header carries the Bearer prefix, the required-header metadata
	// carries the raw key. Both belong to the same scenario.
	require.Len(t, req.Headers, 3)
	assert.Equal(t, har.Header{Name: "Authorization", Value: "Bearer KEY123"}, req.Headers[2])
	require.Len(t, req.RequiredHeaders, 1)
	assert.Equal(t, har.Header{Name: "Authorization", Value: "KEY123"}, req.RequiredHeaders[0])
}

func TestAuthorizationHeaderWithoutAPIKey(t *testing.T) {
	doc := mustDocument(t, `{"paths": {"/pets": {"get": {"parameters": [
		{"name": "Authorization", "in": "header", "required": true, "schema": {"type": "string"}}
	]}}}}`)

	req, err := New(doc).Endpoint("/pets", "get", Options{})
	require.NoError(t, err)

	assert.Equal(t, har.Header{Name: "Authorization", Value: "SOME_AUTHORIZATION_VALUE"}, req.Headers[2])
}

func TestOptionalHeadersAreExcluded(t *testing.T) {
	doc := mustDocument(t, `{"paths": {"/pets": {"get": {"parameters": [
		{"name": "X-Optional", "in": "header", "schema": {"type": "string"}},
		{"name": "X-Required", "in": "header", "required": true, "schema": {"type": "string"}}
	]}}}}`)

	req, err := New(doc).Endpoint("/pets", "get", Options{})
	require.NoError(t, err)

	require.Len(t, req.Headers, 3)
	assert.Equal(t, har.Header{Name: "X-Required", Value: "SOME_X-REQUIRED_VALUE"}, req.Headers[2])
	assert.Equal(t, req.Headers[2:], req.RequiredHeaders)
}

func TestParameterReferenceResolvedBeforeClassification(t *testing.T) {
	doc := mustDocument(t, `{
		"components": {"parameters": {"limitParam": {"name": "limit", "in": "query", "schema": {"type": "integer"}}}},
		"paths": {"/pets": {"get": {"parameters": [{"$ref": "#/components/parameters/limitParam"}]}}}
	}`)

	req, err := New(doc).Endpoint("/pets", "get", Options{})
	require.NoError(t, err)
	assert.Equal(t, []har.QueryParam{{Name: "limit", Value: "SOME_INTEGER_VALUE"}}, req.QueryString)
}

func TestRequestBodyUsesFirstContentType(t *testing.T) {
	doc := mustDocument(t, `{
		"components": {"schemas": {"Pet": {"type": "object", "properties": {"name": {"type": "string"}}}}},
		"paths": {"/pets": {"post": {"requestBody": {"content": {
			"application/xml": {"schema": {"$ref": "#/components/schemas/Pet"}},
			"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}
		}}}}}
	}`)

	req, err := New(doc).Endpoint("/pets", "post", Options{})
	require.NoError(t, err)

	require.NotNil(t, req.PostData)
	assert.Equal(t, "application/xml", req.PostData.MimeType)
	assert.Equal(t, `{"name":"sample_string"}`, req.PostData.Text)
	assert.Equal(t, []har.Header{
		{Name: "accept", Value: "application/xml"},
		{Name: "content-type", Value: "application/xml"},
	}, req.Headers)
}

func TestRequestBodyCustomInstantiator(t *testing.T) {
	doc := mustDocument(t, `{"paths": {"/pets": {"post": {"requestBody": {"content": {
		"application/json": {"schema": {"type": "object"}}
	}}}}}}`)

	instantiate := func(schema *document.Map) any {
		return map[string]string{"stub": "value"}
	}

	req, err := New(doc).Endpoint("/pets", "post", Options{Instantiate: instantiate})
	require.NoError(t, err)
	assert.Equal(t, `{"stub":"value"}`, req.PostData.Text)
}

func TestRequestBodyWithoutContentOmitsPostData(t *testing.T) {
	doc := mustDocument(t, `{"paths": {"/pets": {"post": {"requestBody": {"description": "empty"}}}}}`)

	req, err := New(doc).Endpoint("/pets", "post", Options{})
	require.NoError(t, err)
	assert.Nil(t, req.PostData)
	assert.Equal(t, "application/json", req.Headers[0].Value)
}

func TestResultsKeepDocumentOrder(t *testing.T) {
	doc := mustDocument(t, `{
		"paths": {
			"/pets": {"get": {"description": "list pets"}},
			"/owners": {"post": {}}
		}
	}`)

	results := New(doc).Results(Options{})
	require.Len(t, results, 2)
	assert.Equal(t, "/pets", results[0].Path)
	assert.Equal(t, "get", results[0].Method)
	assert.Equal(t, "list pets", results[0].Entry.Description)
	assert.Equal(t, "/owners", results[1].Path)
	assert.Equal(t, "POST", results[1].Entry.Method)
	assert.Equal(t, "No description available", results[1].Entry.Description)
}

func TestAllReturnsEveryDeclaredOperation(t *testing.T) {
	doc := mustDocument(t, `{
		"paths": {
			"/pets": {"get": {}, "post": {}},
			"/owners": {"get": {}}
		}
	}`)

	entries := New(doc).All(Options{})
	require.Len(t, entries, 3)
	assert.Equal(t, "GET", entries[0].Method)
	assert.Equal(t, "POST", entries[1].Method)
	assert.Equal(t, "/owners", entries[2].Har.Path)
}

func TestAllIsNilWhenAnyEndpointFails(t *testing.T) {
	doc := mustDocument(t, `{
		"paths": {
			"/pets": {"get": {}},
			"/owners": {"get": {"parameters": [{"$ref": "#/components/parameters/missing"}]}}
		}
	}`)

	conv := New(doc)
	assert.Nil(t, conv.All(Options{}))

	// The per-endpoint API isolates the failure instead.
	results := conv.Results(Options{})
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	assert.Equal(t, "/owners", results[1].Path)
	assert.Equal(t, "get", results[1].Method)
}

func TestMalformedParametersFailTheEndpoint(t *testing.T) {
	doc := mustDocument(t, `{"paths": {"/pets": {"get": {"parameters": "oops"}}}}`)

	_, err := New(doc).Endpoint("/pets", "get", Options{})
	assert.Error(t, err)
}

func TestExtensionBlockCarriesOperation(t *testing.T) {
	doc := mustDocument(t, `{"paths": {"/pets": {"get": {"description": "list pets"}}}}`)

	req, err := New(doc).Endpoint("/pets", "get", Options{})
	require.NoError(t, err)
	assert.Equal(t, "/pets", req.Path)
	require.NotNil(t, req.Operation)
	assert.Equal(t, "list pets", req.Operation.GetString("description"))
}
