package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/featlab/gofeat/feature"
	"github.com/featlab/gofeat/result"
)

const tracerName = "github.com/featlab/gofeat/runner"

// Config holds the runner configuration.
type Config struct {
	Registry    *Registry
	Log         log.Logger
	Concurrency int // scenario workers per feature; <= 1 runs serially
}

// Runner executes the scenarios of a feature and feeds each outcome into
// the feature's result aggregator.
type Runner struct {
	registry    *Registry
	log         log.Logger
	concurrency int
	tracer      trace.Tracer
}

// NewRunner creates a Runner from config.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Registry == nil {
		return nil, errors.New("step registry is required")
	}
	logger := cfg.Log
	if logger == nil {
		logger = log.Root()
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		registry:    cfg.Registry,
		log:         logger,
		concurrency: concurrency,
		tracer:      otel.Tracer(tracerName),
	}, nil
}

// RunFeature executes every scenario of the feature matching the filter and
// returns the populated aggregate. A nil filter runs everything. The
// returned error reflects engine problems only; scenario failures are
// recorded on the FeatureResult.
func (r *Runner) RunFeature(ctx context.Context, f *feature.Feature, filter *feature.TagFilter) (*result.FeatureResult, error) {
	fr := result.NewFeatureResult(f)

	var selected []*feature.Scenario
	for _, sc := range f.Scenarios {
		if filter == nil || filter.Match(sc.AllTags()) {
			selected = append(selected, sc)
		}
	}
	r.log.Debug("Running feature",
		"feature", fr.DisplayName(),
		"scenarios", len(selected),
		"concurrency", r.concurrency)

	if r.concurrency <= 1 || len(selected) <= 1 {
		for _, sc := range selected {
			if err := ctx.Err(); err != nil {
				return fr, err
			}
			fr.AddResult(r.runScenario(ctx, sc, nil))
		}
		return fr, ctx.Err()
	}

	work := make(chan *feature.Scenario)
	done := make(chan struct{})
	for i := 0; i < r.concurrency; i++ {
		go func() {
			for sc := range work {
				fr.AddResult(r.runScenario(ctx, sc, nil))
			}
			done <- struct{}{}
		}()
	}
	for _, sc := range selected {
		work <- sc
	}
	close(work)
	for i := 0; i < r.concurrency; i++ {
		<-done
	}
	return fr, ctx.Err()
}

// CallFeature runs a feature as a sub-call on behalf of another feature:
// the call argument seeds every scenario's variables, the loop index and
// final variable state are recorded on the aggregate, and the combined
// error is returned for the caller to propagate.
func (r *Runner) CallFeature(ctx context.Context, f *feature.Feature, callArg map[string]any, loopIndex int) (*result.FeatureResult, error) {
	fr := result.NewFeatureResult(f)
	fr.SetCallArg(callArg)
	fr.SetLoopIndex(loopIndex)

	var lastVars map[string]any
	for _, sc := range f.Scenarios {
		if err := ctx.Err(); err != nil {
			return fr, err
		}
		sr, vars := r.runScenarioVars(ctx, sc, callArg)
		fr.AddResult(sr)
		lastVars = vars
	}
	fr.SetResultVars(lastVars)
	return fr, fr.ErrorsCombined()
}

func (r *Runner) runScenario(ctx context.Context, sc *feature.Scenario, seed map[string]any) *result.ScenarioResult {
	sr, _ := r.runScenarioVars(ctx, sc, seed)
	return sr
}

// runScenarioVars executes the background steps then the scenario steps,
// skipping the remainder after the first failure, and returns the final
// variable state alongside the outcome.
func (r *Runner) runScenarioVars(ctx context.Context, sc *feature.Scenario, seed map[string]any) (*result.ScenarioResult, map[string]any) {
	ctx, span := r.tracer.Start(ctx, "scenario",
		trace.WithAttributes(
			attribute.String("feature.path", sc.Feature.RelativePath),
			attribute.String("scenario.name", sc.Name),
			attribute.String("scenario.meta", sc.DisplayMeta()),
		))
	defer span.End()

	sr := result.NewScenarioResult(sc)
	stepCtx := NewContext(sc, seed)

	var steps []*feature.Step
	if bg := sc.Feature.Background; bg != nil {
		steps = append(steps, bg.Steps...)
	}
	steps = append(steps, sc.Steps...)

	failed := false
	for _, step := range steps {
		if failed {
			sr.AddStepResult(result.NewStepResult(step, result.StepStatusSkipped, 0, nil))
			continue
		}
		stepResult := r.runStep(ctx, stepCtx, step)
		sr.AddStepResult(stepResult)
		if stepResult.Failed() {
			failed = true
			span.SetStatus(codes.Error, stepResult.Err.Error())
		}
	}
	if failed {
		r.log.Debug("Scenario failed", "scenario", sc.Name, "meta", sc.DisplayMeta(), "err", sr.Err())
	}
	return sr, stepCtx.Vars()
}

// runStep executes one step through the registry, converting panics and
// unmatched steps into engine errors with captured stacks.
func (r *Runner) runStep(ctx context.Context, stepCtx *Context, step *feature.Step) (stepResult *result.StepResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err := result.NewEngineError(fmt.Sprintf("step panicked: %v", rec))
			stepResult = result.NewStepResult(step, result.StepStatusFailed, time.Since(start).Nanoseconds(), err)
			stepResult.Output = stepCtx.takeOutput()
		}
	}()

	fn, args, ok := r.registry.Lookup(step.Text)
	if !ok {
		err := result.NewEngineError("no step definition matches: " + step.Text)
		return result.NewStepResult(step, result.StepStatusFailed, time.Since(start).Nanoseconds(), err)
	}

	var err error
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = result.WrapEngineError("step aborted", ctxErr)
	} else if stepErr := fn(stepCtx, args); stepErr != nil {
		var ee *result.EngineError
		if errors.As(stepErr, &ee) {
			err = ee
		} else {
			err = result.WrapEngineError(stepErr.Error(), stepErr)
		}
	}

	status := result.StepStatusPassed
	if err != nil {
		status = result.StepStatusFailed
	}
	stepResult = result.NewStepResult(step, status, time.Since(start).Nanoseconds(), err)
	stepResult.Output = stepCtx.takeOutput()
	return stepResult
}
