package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/acarl005/stripansi"

	"github.com/featlab/gofeat/result"
)

const (
	// LogDirName is the directory under the run directory that scenario
	// logs are written to.
	LogDirName = "logs"
	// CombinedLogFilename aggregates every feature's log in run order.
	CombinedLogFilename = "gofeat.log"
)

// FileLogger writes per-feature execution logs under the run directory:
// one file per feature with every step outcome and its captured output,
// plus a combined log for the whole run.
type FileLogger struct {
	logDir   string
	mu       sync.Mutex
	combined *AsyncFile
}

// NewFileLogger creates the log directory for a run and opens the combined
// log. Close must be called to flush it.
func NewFileLogger(baseDir, runID string) (*FileLogger, error) {
	logDir := filepath.Join(baseDir, "run-"+runID, LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}
	combined, err := NewAsyncFile(filepath.Join(logDir, CombinedLogFilename))
	if err != nil {
		return nil, err
	}
	return &FileLogger{logDir: logDir, combined: combined}, nil
}

// LogDir returns the directory scenario logs are written to.
func (l *FileLogger) LogDir() string {
	return l.logDir
}

// LogFeature writes the feature's execution log and appends it to the
// combined run log.
func (l *FileLogger) LogFeature(fr *result.FeatureResult) error {
	content := FormatFeatureLog(fr)

	name := strings.ReplaceAll(fr.DisplayName(), "/", ".")
	name = strings.TrimSuffix(name, ".feature") + ".log"

	l.mu.Lock()
	defer l.mu.Unlock()
	path := filepath.Join(l.logDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write feature log %s: %w", path, err)
	}
	return l.combined.Write([]byte(content))
}

// Close flushes and closes the combined log.
func (l *FileLogger) Close() error {
	return l.combined.Close()
}

// FormatFeatureLog renders the step-by-step log of one feature execution.
// Output and error messages are stripped of ANSI escape sequences.
func FormatFeatureLog(fr *result.FeatureResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "feature: %s\n", fr.DisplayName())

	for _, sr := range fr.ScenarioResults() {
		sc := sr.Scenario()
		fmt.Fprintf(&sb, "%s %s\n", sc.DisplayMeta(), sc.Name)
		for _, step := range sr.StepResults() {
			fmt.Fprintf(&sb, "  %s%s ... %s (%.4f ms)\n",
				step.Step.Keyword, step.Step.Text, step.Status, float64(step.DurationNanos)/1e6)
			if step.Output != "" {
				for _, line := range strings.Split(strings.TrimRight(stripansi.Strip(step.Output), "\n"), "\n") {
					sb.WriteString("    " + line + "\n")
				}
			}
			if step.Err != nil {
				fmt.Fprintf(&sb, "    error: %s\n", stripansi.Strip(step.Err.Error()))
			}
		}
	}
	return sb.String()
}
