package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featlab/gofeat/feature"
)

func TestScenarioResult_FirstFailureWins(t *testing.T) {
	f := makeFeature("Accounts", false)
	sr := NewScenarioResult(makeScenario(f, 0, -1))

	first := NewEngineError("first")
	second := NewEngineError("second")
	sr.AddStepResult(NewStepResult(&feature.Step{Text: "ok"}, StepStatusPassed, 10, nil))
	sr.AddStepResult(NewStepResult(&feature.Step{Text: "bad"}, StepStatusFailed, 20, first))
	sr.AddStepResult(NewStepResult(&feature.Step{Text: "worse"}, StepStatusFailed, 30, second))

	assert.True(t, sr.Failed())
	assert.Same(t, first, sr.Err())
	assert.Equal(t, int64(60), sr.DurationNanos())
	assert.Len(t, sr.StepResults(), 3)
}

func TestScenarioResult_ToMap_SeparatesBackground(t *testing.T) {
	f := makeFeature("Accounts", true)
	sc := makeScenario(f, 0, -1)
	sr := NewScenarioResult(sc)
	sr.AddStepResult(NewStepResult(f.Background.Steps[0], StepStatusPassed, 0, nil))
	sr.AddStepResult(NewStepResult(&feature.Step{Line: 11, Keyword: "When ", Text: "money moves"}, StepStatusPassed, 0, nil))

	m := sr.ToMap()
	assert.Equal(t, "scenario", m["type"])
	assert.Equal(t, "Scenario", m["keyword"])
	steps := m["steps"].([]map[string]any)
	require.Len(t, steps, 1)
	assert.Equal(t, "money moves", steps[0]["name"])

	bg := sr.BackgroundToMap()
	assert.Equal(t, "background", bg["type"])
	assert.Equal(t, "Background", bg["keyword"])
	bgSteps := bg["steps"].([]map[string]any)
	require.Len(t, bgSteps, 1)
	assert.Equal(t, "a clean slate", bgSteps[0]["name"])
	assert.Equal(t, 3, bg["line"])
}

func TestStepResult_ToMap(t *testing.T) {
	step := &feature.Step{Line: 7, Keyword: "Then ", Text: "it works", DocString: "payload"}
	sr := NewStepResult(step, StepStatusFailed, 1500, NewEngineError("\x1b[31mred failure\x1b[0m"))
	sr.Output = "line one\n\x1b[32mline two\x1b[0m"

	m := sr.ToMap()
	assert.Equal(t, "it works", m["name"])
	assert.Equal(t, "Then ", m["keyword"])
	assert.Equal(t, 7, m["line"])

	res := m["result"].(map[string]any)
	assert.Equal(t, "failed", res["status"])
	assert.Equal(t, int64(1500), res["duration"])
	// ANSI sequences are stripped at the report boundary
	assert.Equal(t, "red failure", res["error_message"])
	assert.Equal(t, "line one\nline two", m["output"])

	doc := m["doc_string"].(map[string]any)
	assert.Equal(t, "payload", doc["content"])
}

func TestStepResult_ToMap_Passing(t *testing.T) {
	step := &feature.Step{Line: 3, Keyword: "Given ", Text: "nothing special"}
	m := NewStepResult(step, StepStatusPassed, 100, nil).ToMap()

	res := m["result"].(map[string]any)
	assert.Equal(t, "passed", res["status"])
	_, hasError := res["error_message"]
	assert.False(t, hasError)
	_, hasOutput := m["output"]
	assert.False(t, hasOutput)
}
