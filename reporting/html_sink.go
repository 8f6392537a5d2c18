package reporting

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/featlab/gofeat/result"
	"github.com/featlab/gofeat/templates"
)

// HTMLResultsFilename is the name of the rendered HTML summary.
const HTMLResultsFilename = "results.html"

const resultsTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>gofeat results</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.pass { color: #2e7d32; }
.fail { color: #c62828; }
pre { background: #f5f5f5; padding: 0.5em; }
</style>
</head>
<body>
<h1>Run {{.RunID}}</h1>
<p>started {{.StartTime.Format "2006-01-02 15:04:05"}}</p>
<table>
<tr><th>Feature</th><th>Scenarios</th><th>Failed</th><th>Time</th><th>Status</th></tr>
{{range .FeatureResults}}<tr class="{{statusClass .Failed}}">
<td>{{.DisplayName}}</td>
<td>{{.ScenarioCount}}</td>
<td>{{.FailedCount}}</td>
<td>{{formatMillis .DurationMillis}}</td>
<td>{{statusText .Failed}}</td>
</tr>
{{end}}</table>
{{range .FeatureResults}}{{if .Failed}}
<h2 class="fail">{{.DisplayName}}</h2>
<pre>{{range splitLines .ErrorMessages}}{{.}}
{{end}}</pre>
{{end}}{{end}}
</body>
</html>
`

// HTMLSink renders a browsable per-run summary next to the JSON reports.
type HTMLSink struct {
	baseDir string
	tmpl    *template.Template
}

// NewHTMLSink creates a sink writing under baseDir/run-<runID>/.
func NewHTMLSink(baseDir string) (*HTMLSink, error) {
	tmpl, err := template.New(HTMLResultsFilename).
		Funcs(templates.GetTemplateFunc()).
		Parse(resultsTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results template: %w", err)
	}
	return &HTMLSink{baseDir: baseDir, tmpl: tmpl}, nil
}

// Complete renders and writes the HTML summary for a finished run.
func (s *HTMLSink) Complete(suite *result.SuiteResult) error {
	outputDir := filepath.Join(s.baseDir, "run-"+suite.RunID())
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	path := filepath.Join(outputDir, HTMLResultsFilename)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file %s: %w", path, err)
	}
	defer file.Close()

	if err := s.tmpl.Execute(file, suite); err != nil {
		return fmt.Errorf("failed to render results template: %w", err)
	}
	return nil
}
