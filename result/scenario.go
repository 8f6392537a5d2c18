package result

import (
	"time"

	"github.com/featlab/gofeat/feature"
)

// ScenarioResult captures the outcome of a single scenario run, including
// the background steps that were executed for it.
type ScenarioResult struct {
	scenario    *feature.Scenario
	stepResults []*StepResult
	failed      bool
	err         error
	startTime   time.Time
	durationNs  int64
}

// NewScenarioResult creates an empty result for a scenario about to run.
func NewScenarioResult(scenario *feature.Scenario) *ScenarioResult {
	return &ScenarioResult{
		scenario:  scenario,
		startTime: time.Now(),
	}
}

// AddStepResult appends a step outcome. The first failing step decides the
// scenario's failure state and error cause.
func (sr *ScenarioResult) AddStepResult(step *StepResult) {
	sr.stepResults = append(sr.stepResults, step)
	sr.durationNs += step.DurationNanos
	if step.Failed() && !sr.failed {
		sr.failed = true
		sr.err = step.Err
	}
}

// Scenario returns the originating scenario reference.
func (sr *ScenarioResult) Scenario() *feature.Scenario {
	return sr.scenario
}

// Failed reports whether any step of the scenario failed.
func (sr *ScenarioResult) Failed() bool {
	return sr.failed
}

// Err returns the error of the first failing step, nil when passed.
func (sr *ScenarioResult) Err() error {
	return sr.err
}

// DurationNanos is the summed duration of all executed steps.
func (sr *ScenarioResult) DurationNanos() int64 {
	return sr.durationNs
}

// StartTime is when the scenario began executing.
func (sr *ScenarioResult) StartTime() time.Time {
	return sr.startTime
}

// StepResults returns all step outcomes, background steps included, in
// execution order.
func (sr *ScenarioResult) StepResults() []*StepResult {
	return sr.stepResults
}

// ToMap renders the scenario as a report entry, excluding background steps
// (those are reported through BackgroundToMap).
func (sr *ScenarioResult) ToMap() map[string]any {
	steps := make([]map[string]any, 0, len(sr.stepResults))
	for _, step := range sr.stepResults {
		if step.Step.Background {
			continue
		}
		steps = append(steps, step.ToMap())
	}
	m := map[string]any{
		"keyword":     sr.scenario.Keyword,
		"type":        "scenario",
		"name":        sr.scenario.Name,
		"description": sr.scenario.Description,
		"id":          feature.ToIDString(sr.scenario.Name),
		"line":        sr.scenario.Line,
		"steps":       steps,
	}
	if tags := sr.scenario.AllTags(); len(tags) > 0 {
		m["tags"] = feature.TagsToResultList(tags)
	}
	return m
}

// BackgroundToMap renders the background steps that ran ahead of this
// scenario as their own report entry.
func (sr *ScenarioResult) BackgroundToMap() map[string]any {
	steps := make([]map[string]any, 0)
	for _, step := range sr.stepResults {
		if step.Step.Background {
			steps = append(steps, step.ToMap())
		}
	}
	m := map[string]any{
		"keyword": "Background",
		"type":    "background",
		"steps":   steps,
	}
	if bg := sr.scenario.Feature.Background; bg != nil {
		m["name"] = bg.Name
		m["line"] = bg.Line
	}
	return m
}
