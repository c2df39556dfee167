package document

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Loader parses API descriptions from files, raw bytes or URLs.
type Loader struct {
	client *http.Client
	strict bool
}

// NewLoader creates a loader. When strict is set, loaded documents are also
// run through kin-openapi validation; otherwise any well-formed JSON/YAML
// mapping is accepted.
func NewLoader(timeout time.Duration, strict bool) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
		strict: strict,
	}
}

// FromData parses an API description from raw JSON or YAML bytes.
func (l *Loader) FromData(data []byte) (*Document, error) {
	root := NewMap()
	if err := yaml.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if l.strict {
		if err := l.validate(root); err != nil {
			return nil, fmt.Errorf("document validation failed: %w", err)
		}
	}
	return New(root), nil
}

// FromFile parses an API description from a file on disk.
func (l *Loader) FromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return l.FromData(data)
}

// FromURL fetches an API description. The URL is tried as-is first, then the
// well-known swagger/openapi JSON locations under it.
func (l *Loader) FromURL(baseURL string) (*Document, error) {
	base := strings.TrimRight(baseURL, "/")
	candidates := []string{
		base,
		base + "/swagger/v1/swagger.json",
		base + "/swagger.json",
		base + "/v1/swagger.json",
		base + "/api/swagger.json",
		base + "/api/v1/swagger.json",
		base + "/openapi.json",
		base + "/swagger",
	}

	var lastErr error
	for _, url := range candidates {
		doc, err := l.fetch(url)
		if err == nil {
			return doc, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to fetch API description from any known URL under %s: %w", baseURL, lastErr)
}

func (l *Loader) fetch(url string) (*Document, error) {
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return l.FromData(body)
}

// validate runs the document through kin-openapi, switching on the declared
// description version.
func (l *Loader) validate(root *Map) error {
	data, err := json.Marshal(root)
	if err != nil {
		return err
	}

	if root.GetString("swagger") == "2.0" {
		var doc openapi2.T
		return json.Unmarshal(data, &doc)
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return err
	}
	return doc.Validate(context.Background())
}
