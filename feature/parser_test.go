package feature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountsFeature = `@accounts
Feature: Account Transfers
  Moving money between accounts.

  Background:
    Given a clean ledger

  Scenario: simple transfer
    When alice sends 10 to bob
    Then bob has 10

  @boundaries
  Scenario Outline: limits
    When alice sends <amount> to bob
    Then the transfer is <verdict>

    Examples:
      | amount | verdict  |
      | 1      | accepted |
      | 99999  | rejected |
`

func TestParse_FeatureShape(t *testing.T) {
	feat, err := Parse(strings.NewReader(accountsFeature), "demo/accounts.feature")
	require.NoError(t, err)

	assert.Equal(t, "demo/accounts.feature", feat.RelativePath)
	assert.Equal(t, "Account Transfers", feat.Name)
	assert.Equal(t, "Moving money between accounts.", feat.Description)
	assert.Equal(t, 2, feat.Line)
	require.Len(t, feat.Tags, 1)
	assert.Equal(t, "@accounts", feat.Tags[0].Name)

	require.True(t, feat.BackgroundPresent())
	require.Len(t, feat.Background.Steps, 1)
	assert.True(t, feat.Background.Steps[0].Background)
	assert.Equal(t, "a clean ledger", feat.Background.Steps[0].Text)
}

func TestParse_OutlineExpansion(t *testing.T) {
	feat, err := Parse(strings.NewReader(accountsFeature), "demo/accounts.feature")
	require.NoError(t, err)

	// one plain scenario plus two outline instances
	require.Len(t, feat.Scenarios, 3)

	plain := feat.Scenarios[0]
	assert.Equal(t, "simple transfer", plain.Name)
	assert.False(t, plain.IsOutline())
	assert.Equal(t, 0, plain.SectionIndex)

	first := feat.Scenarios[1]
	second := feat.Scenarios[2]
	assert.True(t, first.IsOutline())
	assert.True(t, second.IsOutline())
	assert.Equal(t, 1, first.SectionIndex)
	assert.Equal(t, 0, first.ExampleIndex)
	assert.Equal(t, 1, second.ExampleIndex)
	assert.NotEqual(t, first.DisplayMeta(), second.DisplayMeta())

	// placeholders substituted from the example row
	assert.Equal(t, "alice sends 1 to bob", first.Steps[0].Text)
	assert.Equal(t, "the transfer is accepted", first.Steps[1].Text)
	assert.Equal(t, "alice sends 99999 to bob", second.Steps[0].Text)
	assert.Equal(t, "the transfer is rejected", second.Steps[1].Text)

	// outline instances carry scenario and examples tags
	tagNames := make([]string, 0, len(first.Tags))
	for _, tag := range first.Tags {
		tagNames = append(tagNames, tag.Name)
	}
	assert.Contains(t, tagNames, "@boundaries")

	// example rows give each instance its own line
	assert.NotEqual(t, first.Line, second.Line)
}

func TestParse_StepArguments(t *testing.T) {
	src := `Feature: args
  Scenario: docstring and table
    Given a payload
      """
      hello world
      """
    And a table
      | a | b |
      | 1 | 2 |
`
	feat, err := Parse(strings.NewReader(src), "args.feature")
	require.NoError(t, err)
	require.Len(t, feat.Scenarios, 1)
	steps := feat.Scenarios[0].Steps
	require.Len(t, steps, 2)

	assert.Equal(t, "hello world", steps[0].DocString)
	require.Len(t, steps[1].Table, 2)
	assert.Equal(t, []string{"a", "b"}, steps[1].Table[0])
	assert.Equal(t, []string{"1", "2"}, steps[1].Table[1])
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not gherkin at all {"), "broken.feature")
	assert.Error(t, err)
}

func TestParse_NoScenarios(t *testing.T) {
	feat, err := Parse(strings.NewReader("Feature: empty\n"), "empty.feature")
	require.NoError(t, err)
	assert.Empty(t, feat.Scenarios)
	assert.False(t, feat.BackgroundPresent())
}
