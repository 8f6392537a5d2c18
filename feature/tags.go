package feature

import (
	"fmt"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
)

// Tag is a feature or scenario annotation, name includes the leading '@'.
type Tag struct {
	Name string
	Line int
}

// TagsToResultList renders tags in the shape report consumers expect:
// one entry per tag with its name and source line.
func TagsToResultList(tags []Tag) []map[string]any {
	list := make([]map[string]any, 0, len(tags))
	for _, t := range tags {
		list = append(list, map[string]any{
			"name": t.Name,
			"line": t.Line,
		})
	}
	return list
}

// TagFilter selects scenarios by evaluating a cucumber tag expression
// (e.g. "@smoke and not @wip") against the combined feature and scenario tags.
type TagFilter struct {
	expr tagexpressions.Evaluatable
}

// NewTagFilter parses a tag expression. An empty expression yields a filter
// that matches every scenario.
func NewTagFilter(expression string) (*TagFilter, error) {
	if expression == "" {
		return &TagFilter{}, nil
	}
	expr, err := tagexpressions.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid tag expression %q: %w", expression, err)
	}
	return &TagFilter{expr: expr}, nil
}

// Match reports whether a scenario with the given tags is selected.
func (f *TagFilter) Match(tags []Tag) bool {
	if f.expr == nil {
		return true
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return f.expr.Evaluate(names)
}
