package gofeat

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/featlab/gofeat/flags"
)

// parseConfig runs the flag set against args and returns the resulting
// config, as cmd/main.go would build it.
func parseConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	app := &cli.App{
		Name:  "gofeat-test",
		Flags: flags.Flags,
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfig(ctx, log.New())
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"gofeat-test"}, args...)))
	return cfg, cfgErr
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(t, "--features", "features")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.FeatureDir))
	assert.True(t, filepath.IsAbs(cfg.ReportDir))
	assert.Equal(t, "reports", filepath.Base(cfg.ReportDir))
	assert.Empty(t, cfg.Tags)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Zero(t, cfg.RunInterval)
	assert.True(t, cfg.RunOnce)
}

func TestNewConfig_FlagsSet(t *testing.T) {
	cfg, err := parseConfig(t,
		"--features", "f",
		"--tags", "@smoke and not @wip",
		"--report-dir", "out",
		"--concurrency", "4",
		"--run-interval", "30m")
	require.NoError(t, err)

	assert.Equal(t, "@smoke and not @wip", cfg.Tags)
	assert.Equal(t, "out", filepath.Base(cfg.ReportDir))
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30*time.Minute, cfg.RunInterval)
	assert.False(t, cfg.RunOnce)
}

func TestNewConfig_MissingFeatureDir(t *testing.T) {
	_, err := parseConfig(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestNewConfig_RunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gofeat.yaml")
	content := `features: from-file
tags: "@nightly"
report_dir: file-reports
concurrency: 3
run_interval: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := parseConfig(t, "--config", path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", filepath.Base(cfg.FeatureDir))
	assert.Equal(t, "@nightly", cfg.Tags)
	assert.Equal(t, "file-reports", filepath.Base(cfg.ReportDir))
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.False(t, cfg.RunOnce)
}

func TestNewConfig_FlagsWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gofeat.yaml")
	content := `features: from-file
concurrency: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := parseConfig(t, "--config", path, "--features", "from-flag", "--concurrency", "8")
	require.NoError(t, err)

	assert.Equal(t, "from-flag", filepath.Base(cfg.FeatureDir))
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestNewConfig_BadRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gofeat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0644))

	_, err := parseConfig(t, "--config", path)
	require.Error(t, err)
}
