package gofeat

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/featlab/gofeat/feature"
	"github.com/featlab/gofeat/logging"
	"github.com/featlab/gofeat/metrics"
	"github.com/featlab/gofeat/reporting"
	"github.com/featlab/gofeat/result"
	"github.com/featlab/gofeat/runner"
	"github.com/featlab/gofeat/ui"
)

// App runs feature suites: it discovers feature files, executes them, and
// materializes the per-feature and run-level reports.
type App struct {
	ctx    context.Context
	config *Config
	runner *runner.Runner
	filter *feature.TagFilter
	result *result.SuiteResult

	jsonSink    *reporting.JSONSink
	summarySink *reporting.TextSummarySink
	htmlSink    *reporting.HTMLSink
	reporter    MetricsReporter

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	shutdownCallback func(error) // Callback to signal application shutdown
}

// New creates the app. The registry carries the step definitions features
// are executed against.
func New(ctx context.Context, config *Config, registry *runner.Registry, shutdownCallback func(error)) (*App, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating gofeat with config",
		"featureDir", config.FeatureDir,
		"tags", config.Tags,
		"reportDir", config.ReportDir,
		"concurrency", config.Concurrency,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	filter, err := feature.NewTagFilter(config.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag filter: %w", err)
	}

	featureRunner, err := runner.NewRunner(runner.Config{
		Registry:    registry,
		Log:         config.Log,
		Concurrency: config.Concurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	htmlSink, err := reporting.NewHTMLSink(config.ReportDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTML sink: %w", err)
	}

	return &App{
		ctx:              ctx,
		config:           config,
		runner:           featureRunner,
		filter:           filter,
		jsonSink:         reporting.NewJSONSink(config.ReportDir),
		summarySink:      reporting.NewTextSummarySink(config.ReportDir),
		htmlSink:         htmlSink,
		reporter:         NewDefaultMetricsReporter(),
		done:             make(chan struct{}),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the suite immediately, then either exits (run-once mode) or
// keeps re-running at the configured interval.
func (a *App) Start(ctx context.Context) error {
	a.ctx = ctx
	a.done = make(chan struct{})
	a.running.Store(true)

	if a.config.RunOnce {
		a.config.Log.Info("Starting gofeat in run-once mode")
	} else {
		a.config.Log.Info("Starting gofeat in continuous mode", "interval", a.config.RunInterval)
	}

	err := a.runSuite()
	if err != nil {
		return err
	}

	if a.config.RunOnce {
		a.config.Log.Info("Run completed, exiting (run-once mode)")
		if a.result != nil && a.result.Failed() {
			return NewTestFailureError(fmt.Sprintf("%d of %d scenarios failed",
				a.result.FailedCount(), a.result.ScenarioCount()))
		}
		go func() {
			a.shutdownCallback(nil)
		}()
		return nil
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for {
			select {
			case <-time.After(a.config.RunInterval):
				if !a.running.Load() {
					return
				}
				a.config.Log.Info("Running periodic suite")
				if err := a.runSuite(); err != nil {
					a.config.Log.Error("Error running periodic suite", "error", err)
				}
			case <-a.done:
				return
			case <-ctx.Done():
				a.running.Store(false)
				return
			}
		}
	}()
	a.config.Log.Debug("gofeat started successfully")
	return nil
}

// Stop stops the gofeat service.
func (a *App) Stop(ctx context.Context) error {
	a.config.Log.Info("Stopping gofeat")
	if !a.running.Load() {
		return nil
	}
	a.running.Store(false)
	close(a.done)
	a.wg.Wait()
	a.config.Log.Info("gofeat stopped successfully")
	return nil
}

// Stopped returns true if the service is stopped.
func (a *App) Stopped() bool {
	return !a.running.Load()
}

// Result returns the aggregate of the most recent run.
func (a *App) Result() *result.SuiteResult {
	return a.result
}

// runSuite discovers, parses, and executes every feature, materializing
// reports as each feature completes. Parse and I/O problems are runtime
// errors; scenario failures only shape the suite verdict.
func (a *App) runSuite() error {
	runID := uuid.New().String()
	a.config.Log.Info("Running all features...", "run_id", runID)

	paths, err := a.discoverFeatures()
	if err != nil {
		return NewRuntimeError(err)
	}
	if len(paths) == 0 {
		return NewRuntimeError(fmt.Errorf("no feature files found in %s", a.config.FeatureDir))
	}

	features := make([]*feature.Feature, 0, len(paths))
	for _, path := range paths {
		feat, err := feature.LoadFile(path, a.config.FeatureDir)
		if err != nil {
			metrics.RecordErrorDetails("feature load failed", err)
			return NewRuntimeError(err)
		}
		features = append(features, feat)
	}
	fmt.Print(ui.RenderFeatureTree(features))

	fileLogger, err := logging.NewFileLogger(a.config.ReportDir, runID)
	if err != nil {
		a.config.Log.Error("Failed to create file logger", "error", err)
	}

	suite := result.NewSuiteResult(runID)
	for _, feat := range features {
		if err := a.ctx.Err(); err != nil {
			return NewRuntimeError(err)
		}

		fr, err := a.runner.RunFeature(a.ctx, feat, a.filter)
		if err != nil {
			return NewRuntimeError(err)
		}
		suite.Add(fr)

		reportPath, err := a.jsonSink.WriteFeatureReport(fr, runID)
		if err != nil {
			a.config.Log.Error("Failed to write feature report", "feature", fr.DisplayName(), "error", err)
			metrics.RecordErrorDetails("report write failed", err)
			reportPath = ""
		}
		fr.PrintStats(reportPath)

		if fileLogger != nil {
			if err := fileLogger.LogFeature(fr); err != nil {
				a.config.Log.Error("Failed to write feature log", "feature", fr.DisplayName(), "error", err)
			}
		}
		for _, sr := range fr.ScenarioResults() {
			metrics.RecordScenario(runID, fr.DisplayName(), sr.Failed())
		}
	}

	if fileLogger != nil {
		if err := fileLogger.Close(); err != nil {
			a.config.Log.Error("Failed to close run log", "error", err)
		}
	}

	if _, err := a.jsonSink.WriteSuiteReport(suite); err != nil {
		a.config.Log.Error("Failed to write suite report", "error", err)
		metrics.RecordErrorDetails("report write failed", err)
	}
	if err := a.summarySink.Complete(suite); err != nil {
		a.config.Log.Error("Failed to write run summary", "error", err)
	}
	if err := a.htmlSink.Complete(suite); err != nil {
		a.config.Log.Error("Failed to write HTML results", "error", err)
	}

	a.result = suite
	a.reporter.ReportResults(suite)
	a.printResultsTable(suite)
	a.config.Log.Info("Run completed",
		"run_id", runID,
		"features", suite.FeatureCount(),
		"scenarios", suite.ScenarioCount(),
		"failed", suite.FailedCount())
	return nil
}

// discoverFeatures walks the feature directory and returns the sorted list
// of *.feature files, so run order is deterministic.
func (a *App) discoverFeatures() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(a.config.FeatureDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".feature") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover feature files in %s: %w", a.config.FeatureDir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
