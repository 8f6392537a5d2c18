package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToIDString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple", input: "Account Transfers", expected: "account-transfers"},
		{name: "underscores", input: "account_transfers", expected: "account-transfers"},
		{name: "mixed case", input: "CamelCase Name", expected: "camelcase-name"},
		{name: "empty", input: "", expected: ""},
		{name: "consecutive separators", input: "a _b", expected: "a--b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ToIDString(tc.input))
		})
	}
}

func TestRemovePrefix(t *testing.T) {
	assert.Equal(t, "demo/accounts.feature", RemovePrefix("classpath:demo/accounts.feature"))
	assert.Equal(t, "demo/accounts.feature", RemovePrefix("demo/accounts.feature"))
	assert.Equal(t, "/tmp/x.feature", RemovePrefix("file:/tmp/x.feature"))
}

func TestScenario_DisplayMeta(t *testing.T) {
	plain := &Scenario{SectionIndex: 0, ExampleIndex: -1, Line: 12}
	assert.Equal(t, "[1:12]", plain.DisplayMeta())
	assert.False(t, plain.IsOutline())

	outline := &Scenario{SectionIndex: 1, ExampleIndex: 2, Line: 31}
	assert.Equal(t, "[2.3:31]", outline.DisplayMeta())
	assert.True(t, outline.IsOutline())
}

func TestScenario_AllTags(t *testing.T) {
	f := &Feature{Tags: []Tag{{Name: "@feature", Line: 1}}}
	sc := &Scenario{Feature: f, Tags: []Tag{{Name: "@scenario", Line: 5}}}

	tags := sc.AllTags()
	assert.Equal(t, []Tag{{Name: "@feature", Line: 1}, {Name: "@scenario", Line: 5}}, tags)
}
