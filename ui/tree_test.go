package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/featlab/gofeat/feature"
)

func TestRenderFeatureTree(t *testing.T) {
	invoices := &feature.Feature{RelativePath: "classpath:billing/invoices.feature"}
	invoices.Scenarios = []*feature.Scenario{
		{Feature: invoices, Name: "single item", Line: 5, SectionIndex: 0, ExampleIndex: -1},
		{Feature: invoices, Name: "negative total", Line: 9, SectionIndex: 1, ExampleIndex: -1},
	}
	login := &feature.Feature{RelativePath: "users/login.feature"}
	login.Scenarios = []*feature.Scenario{
		{Feature: login, Name: "happy path", Line: 3, SectionIndex: 0, ExampleIndex: -1},
	}

	out := RenderFeatureTree([]*feature.Feature{invoices, login})

	expected := "features (2)\n" +
		"├── billing/invoices.feature\n" +
		"│   ├── [1:5] single item\n" +
		"│   └── [2:9] negative total\n" +
		"└── users/login.feature\n" +
		"    └── [1:3] happy path\n"
	assert.Equal(t, expected, out)
}

func TestRenderFeatureTree_Empty(t *testing.T) {
	assert.Equal(t, "features (0)\n", RenderFeatureTree(nil))
}
