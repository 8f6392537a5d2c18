// Package steps provides the built-in step definitions: variable
// assignment, matching, and printing. Embedders register their own
// domain steps on top of this registry.
package steps

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/featlab/gofeat/result"
	"github.com/featlab/gofeat/runner"
)

// DefaultRegistry returns a registry pre-populated with the built-in steps.
func DefaultRegistry() *runner.Registry {
	r := runner.NewRegistry()
	Register(r)
	return r
}

// Register adds the built-in step definitions to an existing registry.
func Register(r *runner.Registry) {
	r.MustRegister(`def (\w+) = (.+)`, defStep)
	r.MustRegister(`match (\w+) == (.+)`, matchStep)
	r.MustRegister(`assert (\w+)`, assertStep)
	r.MustRegister(`print (.+)`, printStep)
	r.MustRegister(`sleep (\d+)ms`, sleepStep)
	r.MustRegister(`fail with "(.*)"`, failStep)
}

// defStep assigns a variable; the right-hand side is parsed as JSON when
// possible, otherwise kept as a literal string.
func defStep(ctx *runner.Context, args []string) error {
	ctx.Set(args[0], parseValue(args[1]))
	return nil
}

// matchStep compares a variable against an expected value.
func matchStep(ctx *runner.Context, args []string) error {
	actual, ok := ctx.Get(args[0])
	if !ok {
		return result.NewEngineError("no variable named " + args[0])
	}
	expected := parseValue(args[1])
	if !looseEqual(actual, expected) {
		return result.NewEngineError(fmt.Sprintf("match failed: %s, expected %v but was %v", args[0], expected, actual))
	}
	return nil
}

// assertStep fails unless the named variable is truthy.
func assertStep(ctx *runner.Context, args []string) error {
	v, ok := ctx.Get(args[0])
	if !ok {
		return result.NewEngineError("no variable named " + args[0])
	}
	if !truthy(v) {
		return result.NewEngineError(fmt.Sprintf("assert failed: %s was %v", args[0], v))
	}
	return nil
}

func printStep(ctx *runner.Context, args []string) error {
	if v, ok := ctx.Get(args[0]); ok {
		ctx.Logf("%v", v)
		return nil
	}
	ctx.Logf("%s", args[0])
	return nil
}

func sleepStep(ctx *runner.Context, args []string) error {
	ms, err := strconv.Atoi(args[0])
	if err != nil {
		return result.NewEngineError("invalid sleep duration: " + args[0])
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return nil
}

// failStep fails unconditionally with the given message, used by suites to
// exercise failure reporting.
func failStep(ctx *runner.Context, args []string) error {
	return result.NewEngineError(args[0])
}

func parseValue(text string) any {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v
	}
	return text
}

func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	// numbers arrive as float64 from JSON, ints from step code
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}
