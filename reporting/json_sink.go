package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/featlab/gofeat/result"
)

// JSONSink writes cucumber-JSON report files: one file per feature plus a
// run-level report.json aggregating every feature entry.
type JSONSink struct {
	baseDir string
}

// NewJSONSink creates a sink writing under baseDir/run-<runID>/.
func NewJSONSink(baseDir string) *JSONSink {
	return &JSONSink{baseDir: baseDir}
}

// OutputDir returns the directory reports for the run are written to.
func (s *JSONSink) OutputDir(runID string) string {
	return filepath.Join(s.baseDir, "run-"+runID)
}

// WriteFeatureReport serializes one feature aggregate and returns the path
// of the written file. The file carries a single-element top-level list,
// the shape cucumber report renderers consume.
func (s *JSONSink) WriteFeatureReport(fr *result.FeatureResult, runID string) (string, error) {
	outputDir := s.OutputDir(runID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", outputDir, err)
	}

	content, err := json.MarshalIndent([]map[string]any{fr.ToMap()}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize feature report: %w", err)
	}

	path := filepath.Join(outputDir, FeatureReportName(fr))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write feature report %s: %w", path, err)
	}
	return path, nil
}

// WriteSuiteReport serializes the whole run as report.json and returns its
// path.
func (s *JSONSink) WriteSuiteReport(suite *result.SuiteResult) (string, error) {
	outputDir := s.OutputDir(suite.RunID())
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", outputDir, err)
	}

	content, err := json.MarshalIndent(suite.ToCucumberJSON(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize suite report: %w", err)
	}

	path := filepath.Join(outputDir, "report.json")
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write suite report %s: %w", path, err)
	}
	return path, nil
}

// FeatureReportName derives a flat file name from the feature's display
// name, path separators becoming dots.
func FeatureReportName(fr *result.FeatureResult) string {
	name := strings.ReplaceAll(fr.DisplayName(), "/", ".")
	name = strings.TrimSuffix(name, ".feature")
	return name + ".json"
}
