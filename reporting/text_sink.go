package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/acarl005/stripansi"

	"github.com/featlab/gofeat/result"
)

// TextSummarySink writes a human-readable summary.log per run, next to the
// JSON reports.
type TextSummarySink struct {
	baseDir string
}

// NewTextSummarySink creates a sink writing under baseDir/run-<runID>/.
func NewTextSummarySink(baseDir string) *TextSummarySink {
	return &TextSummarySink{baseDir: baseDir}
}

// Complete renders and writes the summary for a finished run.
func (s *TextSummarySink) Complete(suite *result.SuiteResult) error {
	outputDir := filepath.Join(s.baseDir, "run-"+suite.RunID())
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	content := FormatSummary(suite)
	summaryFile := filepath.Join(outputDir, "summary.log")
	if err := os.WriteFile(summaryFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

// FormatSummary renders the run summary: one line per feature, failure
// messages for failing features, and the run totals.
func FormatSummary(suite *result.SuiteResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "run: %s\n", suite.RunID())
	fmt.Fprintf(&sb, "started: %s\n\n", suite.StartTime().Format(time.RFC3339))

	for _, fr := range suite.FeatureResults() {
		status := "passed"
		if fr.Failed() {
			status = "failed"
		}
		fmt.Fprintf(&sb, "%-7s %s  scenarios: %d  failed: %d  time: %.4f\n",
			status, fr.DisplayName(), fr.ScenarioCount(), fr.FailedCount(), fr.DurationMillis()/1000)
		if fr.Failed() {
			for _, line := range strings.Split(fr.ErrorMessages(), "\n") {
				sb.WriteString("    " + stripansi.Strip(line) + "\n")
			}
		}
	}

	fmt.Fprintf(&sb, "\nfeatures: %d | scenarios: %d | passed: %d | failed: %d | time: %.4f\n",
		suite.FeatureCount(),
		suite.ScenarioCount(),
		suite.ScenarioCount()-suite.FailedCount(),
		suite.FailedCount(),
		suite.DurationMillis()/1000)
	return sb.String()
}
