package result

import (
	"fmt"

	"github.com/acarl005/stripansi"

	"github.com/featlab/gofeat/feature"
)

// StepStatus represents the possible states of a step execution
type StepStatus string

const (
	StepStatusPassed  StepStatus = "passed"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped"
)

// StepResult captures the outcome of a single step run
type StepResult struct {
	Step          *feature.Step
	Status        StepStatus
	DurationNanos int64
	Err           error
	Output        string // captured step log output, may contain ANSI sequences
}

// NewStepResult creates a result for an executed step.
func NewStepResult(step *feature.Step, status StepStatus, durationNanos int64, err error) *StepResult {
	return &StepResult{
		Step:          step,
		Status:        status,
		DurationNanos: durationNanos,
		Err:           err,
	}
}

// Failed reports whether the step failed.
func (sr *StepResult) Failed() bool {
	return sr.Status == StepStatusFailed
}

// ToMap renders the step as a report entry. Captured output and error
// messages are stripped of ANSI escape sequences at this boundary so the
// serialized report stays terminal-agnostic.
func (sr *StepResult) ToMap() map[string]any {
	res := map[string]any{
		"status":   string(sr.Status),
		"duration": sr.DurationNanos,
	}
	if sr.Err != nil {
		res["error_message"] = stripansi.Strip(sr.Err.Error())
	}
	m := map[string]any{
		"name":    sr.Step.Text,
		"keyword": sr.Step.Keyword,
		"line":    sr.Step.Line,
		"result":  res,
		"match":   map[string]any{"location": fmt.Sprintf("step:%d", sr.Step.Line)},
	}
	if sr.Step.DocString != "" {
		m["doc_string"] = map[string]any{
			"content": sr.Step.DocString,
			"line":    sr.Step.Line,
		}
	}
	if sr.Output != "" {
		m["output"] = stripansi.Strip(sr.Output)
	}
	return m
}
