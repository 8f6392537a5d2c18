package runner

import (
	"fmt"
	"strings"
	"sync"

	"github.com/featlab/gofeat/feature"
)

// Context is the mutable variable bag a scenario's steps share. Each
// scenario gets its own Context, seeded from the call argument when the
// feature was invoked as a call.
type Context struct {
	mu       sync.Mutex
	scenario *feature.Scenario
	vars     map[string]any
	output   strings.Builder
}

// NewContext creates a step context, seeding the variable bag. A nil
// scenario is allowed for step definition unit tests.
func NewContext(scenario *feature.Scenario, seed map[string]any) *Context {
	vars := make(map[string]any, len(seed))
	for k, v := range seed {
		vars[k] = v
	}
	return &Context{scenario: scenario, vars: vars}
}

// Scenario returns the scenario being executed.
func (c *Context) Scenario() *feature.Scenario {
	return c.scenario
}

// Set stores a variable.
func (c *Context) Set(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vars[name] = value
}

// Get reads a variable.
func (c *Context) Get(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.vars[name]
	return v, ok
}

// Vars returns a copy of the current variable state.
func (c *Context) Vars() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.vars))
	for k, v := range c.vars {
		out[k] = v
	}
	return out
}

// Logf appends to the step's captured output, surfaced in the report entry
// of the step that produced it.
func (c *Context) Logf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.output.Len() > 0 {
		c.output.WriteByte('\n')
	}
	c.output.WriteString(fmt.Sprintf(format, args...))
}

func (c *Context) takeOutput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.output.String()
	c.output.Reset()
	return out
}
