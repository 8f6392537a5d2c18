package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsToResultList(t *testing.T) {
	list := TagsToResultList([]Tag{
		{Name: "@smoke", Line: 1},
		{Name: "@wip", Line: 2},
	})
	require.Len(t, list, 2)
	assert.Equal(t, map[string]any{"name": "@smoke", "line": 1}, list[0])
	assert.Equal(t, map[string]any{"name": "@wip", "line": 2}, list[1])
}

func TestTagFilter(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		tags       []Tag
		expected   bool
	}{
		{name: "empty matches all", expression: "", tags: nil, expected: true},
		{name: "single match", expression: "@smoke", tags: []Tag{{Name: "@smoke"}}, expected: true},
		{name: "single miss", expression: "@smoke", tags: []Tag{{Name: "@slow"}}, expected: false},
		{name: "negation", expression: "not @wip", tags: []Tag{{Name: "@smoke"}}, expected: true},
		{name: "conjunction", expression: "@smoke and not @wip", tags: []Tag{{Name: "@smoke"}, {Name: "@wip"}}, expected: false},
		{name: "disjunction", expression: "@a or @b", tags: []Tag{{Name: "@b"}}, expected: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filter, err := NewTagFilter(tc.expression)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, filter.Match(tc.tags))
		})
	}
}

func TestNewTagFilter_Invalid(t *testing.T) {
	_, err := NewTagFilter("@a and (")
	assert.Error(t, err)
}
