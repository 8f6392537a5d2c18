package gofeat

import (
	"github.com/featlab/gofeat/metrics"
	"github.com/featlab/gofeat/result"
)

// MetricsReporter is responsible for reporting metrics from run results.
type MetricsReporter interface {
	ReportResults(suite *result.SuiteResult)
}

// DefaultMetricsReporter implements the MetricsReporter interface.
type DefaultMetricsReporter struct{}

// NewDefaultMetricsReporter creates a new DefaultMetricsReporter.
func NewDefaultMetricsReporter() *DefaultMetricsReporter {
	return &DefaultMetricsReporter{}
}

// ReportResults reports the run results to metrics systems.
func (r *DefaultMetricsReporter) ReportResults(suite *result.SuiteResult) {
	for _, fr := range suite.FeatureResults() {
		metrics.RecordFeature(
			suite.RunID(),
			fr.DisplayName(),
			fr.Failed(),
			fr.ScenarioCount(),
			fr.FailedCount(),
			fr.DurationMillis(),
		)
	}
}
