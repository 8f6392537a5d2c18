package result

import (
	"strings"
	"sync"
	"time"
)

// SuiteResult merges the feature-level aggregates of one run into a
// suite-level verdict, the way FeatureResult merges scenario outcomes.
type SuiteResult struct {
	mu sync.Mutex

	runID     string
	startTime time.Time

	featureResults []*FeatureResult
	featureCount   int
	failedFeatures int
	scenarioCount  int
	failedCount    int
	durationMillis float64
}

// NewSuiteResult creates the aggregate for one run.
func NewSuiteResult(runID string) *SuiteResult {
	return &SuiteResult{
		runID:     runID,
		startTime: time.Now(),
	}
}

// Add records one feature aggregate into the suite totals.
func (s *SuiteResult) Add(fr *FeatureResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.featureResults = append(s.featureResults, fr)
	s.featureCount++
	s.scenarioCount += fr.ScenarioCount()
	s.failedCount += fr.FailedCount()
	s.durationMillis += fr.DurationMillis()
	if fr.Failed() {
		s.failedFeatures++
	}
}

// RunID identifies this run.
func (s *SuiteResult) RunID() string {
	return s.runID
}

// StartTime is when the run began.
func (s *SuiteResult) StartTime() time.Time {
	return s.startTime
}

// Failed reports whether any feature of the run failed.
func (s *SuiteResult) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failedFeatures > 0
}

// FeatureResults returns the feature aggregates in the order added.
func (s *SuiteResult) FeatureResults() []*FeatureResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.featureResults
}

// FeatureCount is the number of features in the run.
func (s *SuiteResult) FeatureCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.featureCount
}

// FailedFeatureCount is the number of features with at least one failing
// scenario.
func (s *SuiteResult) FailedFeatureCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failedFeatures
}

// ScenarioCount is the total number of scenarios across all features.
func (s *SuiteResult) ScenarioCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenarioCount
}

// FailedCount is the total number of failing scenarios.
func (s *SuiteResult) FailedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failedCount
}

// DurationMillis is the summed duration of all features.
func (s *SuiteResult) DurationMillis() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.durationMillis
}

// ErrorMessages joins every feature's failure messages, one block per
// failing feature, in run order.
func (s *SuiteResult) ErrorMessages() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []string
	for _, fr := range s.featureResults {
		if fr.Failed() {
			messages = append(messages, fr.ErrorMessages())
		}
	}
	return strings.Join(messages, "\n")
}

// ToCucumberJSON renders the run as an ordered list of feature report
// entries, the top-level shape report renderers consume.
func (s *SuiteResult) ToCucumberJSON() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]map[string]any, 0, len(s.featureResults))
	for _, fr := range s.featureResults {
		list = append(list, fr.ToMap())
	}
	return list
}
