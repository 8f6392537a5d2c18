package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "GOFEAT"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	FeatureDir = &cli.StringFlag{
		Name:    "features",
		Value:   "",
		EnvVars: prefixEnvVars("FEATURES"),
		Usage:   "Path to the directory from which to discover *.feature files",
	}
	RunConfig = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: prefixEnvVars("CONFIG"),
		Usage:   "Path to an optional YAML run config (eg. 'gofeat.yaml')",
	}
	Tags = &cli.StringFlag{
		Name:    "tags",
		Value:   "",
		EnvVars: prefixEnvVars("TAGS"),
		Usage:   "Tag expression selecting scenarios to run (eg. '@smoke and not @wip')",
	}
	ReportDir = &cli.StringFlag{
		Name:    "report-dir",
		Value:   "reports",
		EnvVars: prefixEnvVars("REPORT_DIR"),
		Usage:   "Directory to write JSON reports and run summaries to",
	}
	Concurrency = &cli.IntFlag{
		Name:    "concurrency",
		Value:   1,
		EnvVars: prefixEnvVars("CONCURRENCY"),
		Usage:   "Number of concurrent scenario workers per feature (1 = serial)",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}
)

var requiredFlags = []cli.Flag{
	FeatureDir,
}

var optionalFlags = []cli.Flag{
	RunConfig,
	Tags,
	ReportDir,
	Concurrency,
	RunInterval,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

// CheckRequired verifies the feature directory is discoverable: either the
// features flag is set directly, or a run config file that may carry it.
func CheckRequired(ctx *cli.Context) error {
	if !ctx.IsSet(FeatureDir.Name) && !ctx.IsSet(RunConfig.Name) {
		return fmt.Errorf("flag %s is required", FeatureDir.Name)
	}
	return nil
}
