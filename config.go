package gofeat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/featlab/gofeat/flags"
)

// RunConfig is the optional YAML run configuration. CLI flags win over file
// values when both are set.
type RunConfig struct {
	FeatureDir  string        `yaml:"features,omitempty"`
	Tags        string        `yaml:"tags,omitempty"`
	ReportDir   string        `yaml:"report_dir,omitempty"`
	Concurrency int           `yaml:"concurrency,omitempty"`
	RunInterval time.Duration `yaml:"run_interval,omitempty"`
}

// Config holds the application configuration
type Config struct {
	FeatureDir  string        // Directory to discover *.feature files in
	Tags        string        // Tag expression selecting scenarios
	ReportDir   string        // Directory to write reports to
	Concurrency int           // Scenario workers per feature (1 = serial)
	RunInterval time.Duration // Interval between runs
	RunOnce     bool          // Indicates if the service should exit after one run
	Log         log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	var fileCfg RunConfig
	if path := ctx.String(flags.RunConfig.Name); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read run config '%s': %w", path, err)
		}
		if err := yaml.Unmarshal(content, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse run config '%s': %w", path, err)
		}
	}

	featureDir := ctx.String(flags.FeatureDir.Name)
	if featureDir == "" {
		featureDir = fileCfg.FeatureDir
	}
	if featureDir == "" {
		return nil, errors.New("feature directory is required")
	}
	absFeatureDir, err := filepath.Abs(featureDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for feature directory '%s': %w", featureDir, err)
	}

	tags := ctx.String(flags.Tags.Name)
	if tags == "" {
		tags = fileCfg.Tags
	}

	reportDir := ctx.String(flags.ReportDir.Name)
	if !ctx.IsSet(flags.ReportDir.Name) && fileCfg.ReportDir != "" {
		reportDir = fileCfg.ReportDir
	}
	reportDir, err = filepath.Abs(reportDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for report directory '%s': %w", reportDir, err)
	}

	concurrency := ctx.Int(flags.Concurrency.Name)
	if !ctx.IsSet(flags.Concurrency.Name) && fileCfg.Concurrency > 0 {
		concurrency = fileCfg.Concurrency
	}
	if concurrency < 1 {
		concurrency = 1
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)
	if !ctx.IsSet(flags.RunInterval.Name) && fileCfg.RunInterval > 0 {
		runInterval = fileCfg.RunInterval
	}

	return &Config{
		FeatureDir:  absFeatureDir,
		Tags:        tags,
		ReportDir:   reportDir,
		Concurrency: concurrency,
		RunInterval: runInterval,
		RunOnce:     runInterval == 0,
		Log:         logger,
	}, nil
}
