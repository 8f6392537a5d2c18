package templates

import (
	"fmt"
	"html/template"
	"strings"
)

// GetTemplateFunc returns the template functions shared by the HTML report
// renderers.
func GetTemplateFunc() template.FuncMap {
	return template.FuncMap{
		"formatMillis": func(ms float64) string {
			if ms < 1000 {
				return fmt.Sprintf("%.0fms", ms)
			}
			return fmt.Sprintf("%.2fs", ms/1000)
		},
		"statusClass": func(failed bool) string {
			return statusString(failed)
		},
		"statusText": func(failed bool) string {
			return statusString(failed)
		},
		"splitLines": func(s string) []string {
			return strings.Split(strings.TrimRight(s, "\n"), "\n")
		},
	}
}

func statusString(failed bool) string {
	if failed {
		return "fail"
	}
	return "pass"
}
