package result

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/featlab/gofeat/feature"
)

// FeatureResult aggregates the outcomes of all scenarios of one feature
// run. One instance is owned by exactly one feature execution; AddResult is
// safe under concurrent invocation so scenarios may run in parallel.
//
// It is a monotonic accumulator: counts only grow, results and errors only
// append, until the engine reads the aggregate out for reporting.
type FeatureResult struct {
	mu sync.Mutex

	feature     *feature.Feature
	displayName string

	scenarioResults []*ScenarioResult
	scenarioCount   int
	failedCount     int
	errs            []error
	durationMillis  float64

	resultVars map[string]any
	callArg    map[string]any
	loopIndex  int
}

// NewFeatureResult creates the aggregator for one feature execution. The
// display name is derived once from the feature's relative path.
func NewFeatureResult(f *feature.Feature) *FeatureResult {
	return &FeatureResult{
		feature:     f,
		displayName: feature.RemovePrefix(f.RelativePath),
		errs:        []error{},
		loopIndex:   -1,
	}
}

// AddResult records one scenario outcome: appends it, accumulates duration
// and counts, and captures the error when the scenario failed. For outline
// instances the error is wrapped so its message carries the iteration's
// display metadata while the original stack trace is retained.
//
// The whole sequence is applied atomically per call.
func (fr *FeatureResult) AddResult(sr *ScenarioResult) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	fr.scenarioResults = append(fr.scenarioResults, sr)
	fr.durationMillis += nanosToMillis(sr.DurationNanos())
	fr.scenarioCount++
	if sr.Failed() {
		scenario := sr.Scenario()
		if scenario.IsOutline() {
			cause := sr.Err()
			wrapped := &EngineError{
				Message: scenario.DisplayMeta() + " " + cause.Error(),
				Cause:   cause,
			}
			var ee *EngineError
			if errors.As(cause, &ee) {
				wrapped.Stack = ee.Stack
			}
			fr.addError(wrapped)
		} else {
			fr.addError(sr.Err())
		}
	}
}

func (fr *FeatureResult) addError(err error) {
	fr.failedCount++
	fr.errs = append(fr.errs, err)
}

// Failed reports whether at least one scenario failed.
func (fr *FeatureResult) Failed() bool {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return len(fr.errs) > 0
}

// ErrorsCombined consolidates all scenario failures into a single error for
// a caller that invoked this feature as a sub-call: nil when nothing
// failed, the sole EngineError unchanged, a sole foreign error wrapped as
// "call failed", and multiple failures joined into one EngineError whose
// message lists every failure message in order.
func (fr *FeatureResult) ErrorsCombined() error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if len(fr.errs) == 0 {
		return nil
	}
	if len(fr.errs) == 1 {
		err := fr.errs[0]
		var ee *EngineError
		if errors.As(err, &ee) {
			return ee
		}
		return WrapEngineError("call failed", err)
	}
	return NewEngineError(fr.errorMessages())
}

// ErrorMessages returns the newline-joined messages of every recorded
// failure, in the order the failing scenarios were added.
func (fr *FeatureResult) ErrorMessages() string {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.errorMessages()
}

func (fr *FeatureResult) errorMessages() string {
	messages := make([]string, 0, len(fr.errs))
	for _, err := range fr.errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "\n")
}

// StepResults flattens all steps from all scenarios into one sequence,
// preserving scenario order then step order.
func (fr *FeatureResult) StepResults() []*StepResult {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	var list []*StepResult
	for _, sr := range fr.scenarioResults {
		list = append(list, sr.StepResults()...)
	}
	return list
}

// ToMap renders the feature-level report entry. The key names and nesting
// are a wire contract with downstream report consumers.
func (fr *FeatureResult) ToMap() map[string]any {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	m := make(map[string]any, 8)
	elements := make([]map[string]any, 0, len(fr.scenarioResults))
	for _, sr := range fr.scenarioResults {
		if sr.Scenario().Feature.BackgroundPresent() {
			elements = append(elements, sr.BackgroundToMap())
		}
		elements = append(elements, sr.ToMap())
	}
	m["elements"] = elements
	m["keyword"] = feature.Keyword
	m["line"] = fr.feature.Line
	m["uri"] = fr.displayName
	m["name"] = fr.displayName
	m["id"] = feature.ToIDString(fr.feature.Name)
	description := fr.feature.Name
	if fr.feature.Description != "" {
		description = description + "\n" + fr.feature.Description
	}
	m["description"] = strings.TrimSpace(description)
	if len(fr.feature.Tags) > 0 {
		m["tags"] = feature.TagsToResultList(fr.feature.Tags)
	}
	return m
}

// PrintStats writes the fixed-width console summary block for this feature
// to standard output. An empty reportPath omits the report line.
func (fr *FeatureResult) PrintStats(reportPath string) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("---------------------------------------------------------\n")
	sb.WriteString("feature: " + fr.feature.RelativePath + "\n")
	if reportPath != "" {
		sb.WriteString("report: " + reportPath + "\n")
	}
	fmt.Fprintf(&sb, "scenarios: %2d | passed: %2d | failed: %2d | time: %.4f\n",
		fr.scenarioCount, fr.scenarioCount-fr.failedCount, fr.failedCount, fr.durationMillis/1000)
	sb.WriteString("---------------------------------------------------------")
	fmt.Println(sb.String())
}

// Feature returns the immutable feature definition.
func (fr *FeatureResult) Feature() *feature.Feature {
	return fr.feature
}

// DisplayName is the prefix-normalized relative path of the feature.
func (fr *FeatureResult) DisplayName() string {
	return fr.displayName
}

// CallName is the display name prefixed with the loop index when this
// feature result is one iteration of a called loop.
func (fr *FeatureResult) CallName() string {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if fr.loopIndex == -1 {
		return fr.displayName
	}
	return fmt.Sprintf("[%d] %s", fr.loopIndex, fr.displayName)
}

// CallArg returns the argument map this feature was called with, nil when
// it was not invoked as a call.
func (fr *FeatureResult) CallArg() map[string]any {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.callArg
}

// SetCallArg records the argument map supplied by the calling feature.
func (fr *FeatureResult) SetCallArg(callArg map[string]any) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.callArg = callArg
}

// CallArgPretty renders the call argument as indented JSON with cyclic
// references removed first. Empty string when there is no call argument.
func (fr *FeatureResult) CallArgPretty() string {
	fr.mu.Lock()
	arg := fr.callArg
	fr.mu.Unlock()
	if arg == nil {
		return ""
	}
	return toPrettyJSON(removeCyclicReferences(arg))
}

// LoopIndex is this result's position when the feature was called in a
// loop, -1 when not part of a loop.
func (fr *FeatureResult) LoopIndex() int {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.loopIndex
}

// SetLoopIndex records the loop position assigned by the caller.
func (fr *FeatureResult) SetLoopIndex(loopIndex int) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.loopIndex = loopIndex
}

// DurationMillis is the accumulated duration of all added scenarios.
func (fr *FeatureResult) DurationMillis() float64 {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.durationMillis
}

// FailedCount is the number of failing scenarios added so far.
func (fr *FeatureResult) FailedCount() int {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.failedCount
}

// ScenarioCount is the number of scenarios added so far.
func (fr *FeatureResult) ScenarioCount() int {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.scenarioCount
}

// Errors returns the recorded failure causes in order, one per failing
// scenario.
func (fr *FeatureResult) Errors() []error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.errs
}

// ScenarioResults returns all scenario outcomes in the order they were
// added.
func (fr *FeatureResult) ScenarioResults() []*ScenarioResult {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.scenarioResults
}

// SetResultVars snapshots the final variable state after the feature ran
// as a reusable call unit.
func (fr *FeatureResult) SetResultVars(vars map[string]any) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.resultVars = vars
}

// ResultVars returns the snapshotted final variable state, nil when the
// feature was not run as a call.
func (fr *FeatureResult) ResultVars() map[string]any {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.resultVars
}

// ResultAsPrimitiveMap returns the result variables reduced to
// JSON-primitive terms, an empty map when none were set.
func (fr *FeatureResult) ResultAsPrimitiveMap() map[string]any {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if fr.resultVars == nil {
		return map[string]any{}
	}
	return toPrimitiveMap(fr.resultVars)
}

func nanosToMillis(nanos int64) float64 {
	return float64(nanos) / 1e6
}
