// Package report writes conversion results to disk as an indented JSON
// document.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"oas2har/internal/converter"
)

// Report is the on-disk shape of one conversion run.
type Report struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Source      string            `json:"source"`
	Total       int               `json:"total"`
	Failed      int               `json:"failed"`
	Requests    []converter.Entry `json:"requests"`
	Failures    []Failure         `json:"failures,omitempty"`
}

// Failure records one endpoint that could not be converted.
type Failure struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Error  string `json:"error"`
}

// Writer handles writing conversion reports
type Writer struct {
	outputDir string
}

// NewWriter creates a new writer targeting outputDir
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Write stores the results of one conversion run and returns the file path.
func (w *Writer) Write(source string, results []converter.Result) (string, error) {
	report := Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Source:      source,
		Total:       len(results),
		Requests:    make([]converter.Entry, 0, len(results)),
	}

	for _, result := range results {
		if result.Err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{
				Path:   result.Path,
				Method: result.Method,
				Error:  result.Err.Error(),
			})
			continue
		}
		report.Requests = append(report.Requests, *result.Entry)
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	reportPath := filepath.Join(w.outputDir, fmt.Sprintf("har_%s.json", report.GeneratedAt.Format("20060102_150405")))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return reportPath, nil
}
