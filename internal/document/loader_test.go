package document

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreV3 = `{
	"openapi": "3.0.0",
	"info": {"title": "Petstore", "version": "1.0.0"},
	"paths": {"/pets": {"get": {"responses": {"200": {"description": "ok"}}}}}
}`

func TestFromDataParsesJSONAndYAML(t *testing.T) {
	loader := NewLoader(time.Second, false)

	tests := []struct {
		name string
		data string
	}{
		{name: "json", data: petstoreV3},
		{
			name: "yaml",
			data: "openapi: 3.0.0\ninfo:\n  title: Petstore\n  version: 1.0.0\npaths:\n  /pets:\n    get: {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := loader.FromData([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, []string{"/pets"}, doc.PathNames())
		})
	}
}

func TestFromDataRejectsMalformedInput(t *testing.T) {
	loader := NewLoader(time.Second, false)
	_, err := loader.FromData([]byte(`"just a string"`))
	assert.Error(t, err)
}

func TestStrictValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "valid openapi 3", data: petstoreV3, wantErr: false},
		{
			name:    "openapi 3 missing info",
			data:    `{"openapi": "3.0.0", "paths": {}}`,
			wantErr: true,
		},
		{
			name:    "valid swagger 2",
			data:    `{"swagger": "2.0", "info": {"title": "Petstore", "version": "1.0.0"}, "paths": {}}`,
			wantErr: false,
		},
	}

	loader := NewLoader(time.Second, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.FromData([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	path := t.TempDir() + "/spec.json"
	require.NoError(t, os.WriteFile(path, []byte(petstoreV3), 0644))

	doc, err := NewLoader(time.Second, false).FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/pets"}, doc.PathNames())

	_, err = NewLoader(time.Second, false).FromFile(t.TempDir() + "/missing.json")
	assert.Error(t, err)
}

func TestFromURLProbesCandidates(t *testing.T) {
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		if r.URL.Path != "/swagger.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(petstoreV3))
	}))
	defer server.Close()

	doc, err := NewLoader(time.Second, false).FromURL(server.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"/pets"}, doc.PathNames())

	// The base URL itself and /swagger/v1/swagger.json are probed first.
	require.GreaterOrEqual(t, len(requested), 3)
	assert.Equal(t, "/", requested[0])
	assert.Equal(t, "/swagger/v1/swagger.json", requested[1])
	assert.Equal(t, "/swagger.json", requested[2])
}

func TestFromURLReportsLastError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewLoader(time.Second, false).FromURL(server.URL)
	assert.Error(t, err)
}
