package flags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestFlagsHavePrefixedEnvVars(t *testing.T) {
	for _, f := range Flags {
		envFlag, ok := f.(interface{ GetEnvVars() []string })
		require.True(t, ok, "flag %v has no env vars", f.Names())
		for _, envVar := range envFlag.GetEnvVars() {
			assert.True(t, strings.HasPrefix(envVar, EnvVarPrefix+"_"),
				"env var %s does not start with %s_", envVar, EnvVarPrefix)
		}
	}
}

func TestCheckRequired(t *testing.T) {
	run := func(t *testing.T, args ...string) error {
		t.Helper()
		var checkErr error
		app := &cli.App{
			Flags: Flags,
			Action: func(ctx *cli.Context) error {
				checkErr = CheckRequired(ctx)
				return nil
			},
		}
		require.NoError(t, app.Run(append([]string{"app"}, args...)))
		return checkErr
	}

	assert.Error(t, run(t))
	assert.NoError(t, run(t, "--features", "f"))
	assert.NoError(t, run(t, "--config", "gofeat.yaml"))
}
