package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featlab/gofeat/runner"
)

func run(t *testing.T, r *runner.Registry, ctx *runner.Context, text string) error {
	t.Helper()
	fn, args, ok := r.Lookup(text)
	require.True(t, ok, "no step definition matches %q", text)
	return fn(ctx, args)
}

func newCtx() *runner.Context {
	return runner.NewContext(nil, nil)
}

func TestDefAndMatch(t *testing.T) {
	r := DefaultRegistry()
	ctx := newCtx()

	require.NoError(t, run(t, r, ctx, `def amount = 42`))
	require.NoError(t, run(t, r, ctx, `match amount == 42`))
	assert.Error(t, run(t, r, ctx, `match amount == 41`))
	assert.Error(t, run(t, r, ctx, `match missing == 1`))
}

func TestDefParsesJSON(t *testing.T) {
	r := DefaultRegistry()
	ctx := newCtx()

	require.NoError(t, run(t, r, ctx, `def user = {"name":"alice"}`))
	v, ok := ctx.Get("user")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "alice"}, v)

	require.NoError(t, run(t, r, ctx, `def word = plain text`))
	v, _ = ctx.Get("word")
	assert.Equal(t, "plain text", v)
}

func TestAssert(t *testing.T) {
	r := DefaultRegistry()
	ctx := newCtx()

	require.NoError(t, run(t, r, ctx, `def ok = true`))
	require.NoError(t, run(t, r, ctx, `assert ok`))

	require.NoError(t, run(t, r, ctx, `def nope = false`))
	assert.Error(t, run(t, r, ctx, `assert nope`))
	assert.Error(t, run(t, r, ctx, `assert missing`))
}

func TestFail(t *testing.T) {
	r := DefaultRegistry()
	err := run(t, r, newCtx(), `fail with "deliberate"`)
	require.Error(t, err)
	assert.Equal(t, "deliberate", err.Error())
}

func TestPrint(t *testing.T) {
	r := DefaultRegistry()
	ctx := newCtx()
	require.NoError(t, run(t, r, ctx, `def greeting = hello`))
	require.NoError(t, run(t, r, ctx, `print greeting`))
}
