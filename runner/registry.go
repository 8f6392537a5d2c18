package runner

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// StepFunc is a step definition. Captured groups from the step pattern are
// passed as args; returning an error fails the step (and the scenario).
type StepFunc func(ctx *Context, args []string) error

type stepDef struct {
	pattern *regexp.Regexp
	fn      StepFunc
}

// Registry maps step text to step definitions. Patterns are anchored, so a
// definition matches the whole step text.
type Registry struct {
	mu   sync.RWMutex
	defs []stepDef
}

// NewRegistry creates an empty step definition registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a step definition. The pattern is compiled anchored; an
// invalid pattern is returned as an error rather than registered.
func (r *Registry) Register(pattern string, fn StepFunc) error {
	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return fmt.Errorf("invalid step pattern %q: %w", pattern, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = append(r.defs, stepDef{pattern: re, fn: fn})
	return nil
}

// MustRegister is Register that panics on an invalid pattern, for use in
// package-level step tables.
func (r *Registry) MustRegister(pattern string, fn StepFunc) {
	if err := r.Register(pattern, fn); err != nil {
		panic(err)
	}
}

// Lookup finds the definition matching the step text and the captured
// arguments. The first registered match wins.
func (r *Registry) Lookup(text string) (StepFunc, []string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, def := range r.defs {
		if m := def.pattern.FindStringSubmatch(text); m != nil {
			return def.fn, m[1:], true
		}
	}
	return nil, nil, false
}

// Patterns returns the registered patterns, sorted, for diagnostics.
func (r *Registry) Patterns() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patterns := make([]string, 0, len(r.defs))
	for _, def := range r.defs {
		patterns = append(patterns, def.pattern.String())
	}
	sort.Strings(patterns)
	return patterns
}
