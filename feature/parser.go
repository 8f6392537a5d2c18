package feature

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// LoadFile parses a feature file. The relative path recorded on the Feature
// is the path relative to root (the file name alone when root is empty).
func LoadFile(path string, root string) (*Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feature file: %w", err)
	}
	defer f.Close()

	rel := filepath.Base(path)
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil {
			rel = filepath.ToSlash(r)
		}
	}
	feat, err := Parse(f, rel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	feat.Path = path
	return feat, nil
}

// Parse reads Gherkin source and builds the immutable feature model.
// Scenario outlines are expanded here, one scenario per example row.
func Parse(r io.Reader, relativePath string) (*Feature, error) {
	newID := (&messages.Incrementing{}).NewId
	doc, err := gherkin.ParseGherkinDocument(r, newID)
	if err != nil {
		return nil, err
	}
	if doc.Feature == nil {
		return nil, fmt.Errorf("no feature declaration in %s", relativePath)
	}
	return fromDocument(doc.Feature, relativePath), nil
}

func fromDocument(src *messages.Feature, relativePath string) *Feature {
	feat := &Feature{
		RelativePath: relativePath,
		Line:         int(src.Location.Line),
		Name:         src.Name,
		Description:  strings.TrimSpace(src.Description),
		Tags:         convertTags(src.Tags),
	}

	section := 0
	for _, child := range src.Children {
		switch {
		case child.Background != nil:
			feat.Background = convertBackground(child.Background)
		case child.Scenario != nil:
			feat.Scenarios = append(feat.Scenarios, expandScenario(feat, child.Scenario, section)...)
			section++
		}
	}
	return feat
}

func convertBackground(src *messages.Background) *Background {
	bg := &Background{
		Line:    int(src.Location.Line),
		Keyword: strings.TrimSpace(src.Keyword),
		Name:    src.Name,
	}
	for _, s := range src.Steps {
		step := convertStep(s)
		step.Background = true
		bg.Steps = append(bg.Steps, step)
	}
	return bg
}

// expandScenario turns a scenario declaration into its runnable instances:
// a plain scenario maps to itself, an outline maps to one instance per
// example row with <placeholder> tokens substituted from the row.
func expandScenario(feat *Feature, src *messages.Scenario, section int) []*Scenario {
	if len(src.Examples) == 0 {
		sc := &Scenario{
			Feature:      feat,
			Line:         int(src.Location.Line),
			Keyword:      strings.TrimSpace(src.Keyword),
			Name:         src.Name,
			Description:  strings.TrimSpace(src.Description),
			Tags:         convertTags(src.Tags),
			SectionIndex: section,
			ExampleIndex: -1,
		}
		for _, s := range src.Steps {
			sc.Steps = append(sc.Steps, convertStep(s))
		}
		return []*Scenario{sc}
	}

	var instances []*Scenario
	index := 0
	for _, examples := range src.Examples {
		if examples.TableHeader == nil {
			continue
		}
		header := make([]string, len(examples.TableHeader.Cells))
		for i, c := range examples.TableHeader.Cells {
			header[i] = c.Value
		}
		for _, row := range examples.TableBody {
			data := make(map[string]string, len(header))
			for i, c := range row.Cells {
				if i < len(header) {
					data[header[i]] = c.Value
				}
			}
			sc := &Scenario{
				Feature:      feat,
				Line:         int(row.Location.Line),
				Keyword:      strings.TrimSpace(src.Keyword),
				Name:         substitute(src.Name, data),
				Description:  strings.TrimSpace(src.Description),
				Tags:         append(convertTags(src.Tags), convertTags(examples.Tags)...),
				SectionIndex: section,
				ExampleIndex: index,
				ExampleData:  data,
			}
			for _, s := range src.Steps {
				step := convertStep(s)
				step.Text = substitute(step.Text, data)
				step.DocString = substitute(step.DocString, data)
				for _, cells := range step.Table {
					for i := range cells {
						cells[i] = substitute(cells[i], data)
					}
				}
				sc.Steps = append(sc.Steps, step)
			}
			instances = append(instances, sc)
			index++
		}
	}
	return instances
}

func convertStep(src *messages.Step) *Step {
	step := &Step{
		Line:    int(src.Location.Line),
		Keyword: src.Keyword,
		Text:    src.Text,
	}
	if src.DocString != nil {
		step.DocString = src.DocString.Content
	}
	if src.DataTable != nil {
		for _, row := range src.DataTable.Rows {
			cells := make([]string, len(row.Cells))
			for i, c := range row.Cells {
				cells[i] = c.Value
			}
			step.Table = append(step.Table, cells)
		}
	}
	return step
}

func convertTags(src []*messages.Tag) []Tag {
	if len(src) == 0 {
		return nil
	}
	tags := make([]Tag, 0, len(src))
	for _, t := range src {
		tags = append(tags, Tag{Name: t.Name, Line: int(t.Location.Line)})
	}
	return tags
}

func substitute(text string, data map[string]string) string {
	for key, value := range data {
		text = strings.ReplaceAll(text, "<"+key+">", value)
	}
	return text
}
