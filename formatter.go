package gofeat

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/featlab/gofeat/result"
)

// printResultsTable renders the run overview table to stdout, one row per
// feature plus a totals footer.
func (a *App) printResultsTable(suite *result.SuiteResult) {
	fmt.Fprintln(os.Stdout, renderResultsTable(suite))
}

func renderResultsTable(suite *result.SuiteResult) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Feature Results (run %s)", suite.RunID()))

	t.AppendHeader(table.Row{
		"Feature", "Scenarios", "Passed", "Failed", "Time (s)", "Status",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Feature", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Scenarios", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Time (s)", Align: text.AlignRight},
	})

	for _, fr := range suite.FeatureResults() {
		t.AppendRow(table.Row{
			fr.DisplayName(),
			fr.ScenarioCount(),
			fr.ScenarioCount() - fr.FailedCount(),
			fr.FailedCount(),
			fmt.Sprintf("%.4f", fr.DurationMillis()/1000),
			statusString(fr.Failed()),
		})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%d features", suite.FeatureCount()),
		suite.ScenarioCount(),
		suite.ScenarioCount() - suite.FailedCount(),
		suite.FailedCount(),
		fmt.Sprintf("%.4f", suite.DurationMillis()/1000),
		statusString(suite.Failed()),
	})
	return t.Render()
}

// statusString returns a colored string representing a pass/fail verdict
func statusString(failed bool) string {
	if failed {
		return "✗ fail"
	}
	return "✓ pass"
}
