package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricsNamespace = "gofeat"
)

var (
	Debug                bool = true
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	scenariosTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "scenarios_total",
		Help:      "Count of executed scenarios",
	}, []string{
		"run_id",
		"feature",
		"result",
	})

	featureResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "feature_results",
		Help:      "Result of feature runs",
	}, []string{
		"run_id",
		"feature",
		"result",
	})

	featureScenarioTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "feature_scenario_total",
		Help:      "Total number of scenarios per feature run",
	}, []string{
		"run_id",
		"feature",
	})

	featureScenarioFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "feature_scenario_failed",
		Help:      "Number of failed scenarios per feature run",
	}, []string{
		"run_id",
		"feature",
	})

	featureDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "feature_duration_seconds",
		Help:      "Duration of feature runs in seconds",
	}, []string{
		"run_id",
		"feature",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

func RecordScenario(runID string, featureName string, failed bool) {
	result := "passed"
	if failed {
		result = "failed"
	}
	if Debug {
		log.Debug("metric inc",
			"m", "scenarios_total",
			"run_id", runID,
			"feature", featureName,
			"result", result)
	}
	scenariosTotal.WithLabelValues(runID, featureName, result).Inc()
}

func RecordFeature(
	runID string,
	featureName string,
	failed bool,
	scenarios int,
	failures int,
	durationMillis float64,
) {
	result := "passed"
	if failed {
		result = "failed"
	}
	featureResults.WithLabelValues(runID, featureName, result).Set(1)
	featureScenarioTotal.WithLabelValues(runID, featureName).Add(float64(scenarios))
	featureScenarioFailed.WithLabelValues(runID, featureName).Add(float64(failures))
	featureDuration.WithLabelValues(runID, featureName).Set(durationMillis / 1000)
}
