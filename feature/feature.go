package feature

import (
	"fmt"
	"regexp"
	"strings"
)

// Keyword is the report keyword for a feature-level entry.
const Keyword = "Feature"

// Feature is an immutable, parsed feature specification. It is shared
// read-only between the runner and the result aggregator.
type Feature struct {
	Path         string // absolute or caller-supplied path
	RelativePath string // path relative to the feature root, may carry a "scheme:" prefix
	Line         int
	Name         string
	Description  string
	Tags         []Tag
	Background   *Background
	Scenarios    []*Scenario
}

// BackgroundPresent reports whether the feature declares a background block.
func (f *Feature) BackgroundPresent() bool {
	return f.Background != nil
}

// Background is a shared setup block implicitly prefixed to every scenario.
type Background struct {
	Line    int
	Keyword string
	Name    string
	Steps   []*Step
}

// Scenario is one executable test case. A scenario outline contributes one
// Scenario per example row, with placeholders already substituted.
type Scenario struct {
	Feature      *Feature
	Line         int
	Keyword      string
	Name         string
	Description  string
	Tags         []Tag
	Steps        []*Step
	SectionIndex int // position of the declaring section within the feature
	ExampleIndex int // example row index for outline instances, -1 otherwise
	ExampleData  map[string]string
}

// IsOutline reports whether this scenario is one iteration of a
// parameterized scenario outline.
func (s *Scenario) IsOutline() bool {
	return s.ExampleIndex != -1
}

// DisplayMeta identifies the scenario's position within the feature, e.g.
// "[2:14]" for a plain scenario or "[2.3:18]" for the third example row of
// the second section.
func (s *Scenario) DisplayMeta() string {
	meta := fmt.Sprintf("[%d", s.SectionIndex+1)
	if s.ExampleIndex != -1 {
		meta += fmt.Sprintf(".%d", s.ExampleIndex+1)
	}
	return meta + fmt.Sprintf(":%d]", s.Line)
}

// AllTags returns the feature tags followed by the scenario's own tags.
func (s *Scenario) AllTags() []Tag {
	if s.Feature == nil {
		return s.Tags
	}
	tags := make([]Tag, 0, len(s.Feature.Tags)+len(s.Tags))
	tags = append(tags, s.Feature.Tags...)
	tags = append(tags, s.Tags...)
	return tags
}

// Step is the smallest executable unit within a scenario.
type Step struct {
	Line       int
	Keyword    string // trailing space preserved, e.g. "Given "
	Text       string
	DocString  string
	Table      [][]string
	Background bool // step belongs to the feature background
}

var idSeparators = regexp.MustCompile(`[\s_]`)

// ToIDString converts a display name into a report id: whitespace and
// underscores become dashes, the rest is lowercased.
func ToIDString(name string) string {
	return strings.ToLower(idSeparators.ReplaceAllString(name, "-"))
}

// RemovePrefix strips a "scheme:" style prefix (such as "classpath:") from a
// relative path, returning the text after the first colon.
func RemovePrefix(text string) string {
	if pos := strings.Index(text, ":"); pos != -1 {
		return text[pos+1:]
	}
	return text
}
