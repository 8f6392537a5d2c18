package ui

import (
	"strconv"
	"strings"

	"github.com/featlab/gofeat/feature"
)

// Tree hierarchy symbols using box drawing characters
const (
	TreeBranch     = "├── " // branch connector
	TreeLastBranch = "└── " // last branch connector
	TreeContinue   = "│   " // parent has more siblings
	TreeIndent     = "    " // parent was last, no vertical line needed
)

// RenderFeatureTree renders the discovered features and their scenarios as
// a box-drawing tree, suitable for console output ahead of a run.
//
//	features (2)
//	├── billing/invoices.feature
//	│   ├── [1:5] single item
//	│   └── [2:9] negative total
//	└── users/login.feature
//	    └── [1:3] happy path
func RenderFeatureTree(features []*feature.Feature) string {
	var sb strings.Builder

	sb.WriteString("features (")
	sb.WriteString(strconv.Itoa(len(features)))
	sb.WriteString(")\n")

	for i, f := range features {
		lastFeature := i == len(features)-1
		connector := TreeBranch
		childPrefix := TreeContinue
		if lastFeature {
			connector = TreeLastBranch
			childPrefix = TreeIndent
		}
		sb.WriteString(connector)
		sb.WriteString(feature.RemovePrefix(f.RelativePath))
		sb.WriteString("\n")

		for j, sc := range f.Scenarios {
			scConnector := TreeBranch
			if j == len(f.Scenarios)-1 {
				scConnector = TreeLastBranch
			}
			sb.WriteString(childPrefix)
			sb.WriteString(scConnector)
			sb.WriteString(sc.DisplayMeta())
			sb.WriteString(" ")
			sb.WriteString(sc.Name)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
