// Package report renders a human-readable run summary with Sprig template
// functions
package report

import (
	"bytes"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// DefaultTemplate is used when no template is configured
const DefaultTemplate = `Run {{ .RunID }}
  base:     {{ .Base }} ({{ .BaseRows }} rows)
  override: {{ .Override }} ({{ .OverrideRows }} rows)
  output:   {{ .Output }}
Matched {{ len .Matches }} of {{ .BaseRows }} base rows
{{- if .AddedColumns }}
Added columns: {{ join ", " .AddedColumns }}
{{- end }}
{{- if .UnmatchedOverride }}
Unmatched override rows ({{ len .UnmatchedOverride }}):
{{- range .UnmatchedOverride }}
  - {{ .Class }} ({{ .File }})
{{- end }}
{{- end }}
Metrics:
{{- range .Metrics }}
  {{ printf "%-18s" .Name }} {{ .Status }}{{ if .Error }}: {{ .Error }}{{ end }}
{{- end }}
Completed in {{ .Duration }}
`

// Match is one base row paired with an override row
type Match struct {
	BaseRow     int
	OverrideRow int
	Rule        string
	BaseName    string
	OverrideID  string
}

// Unmatched is an override row that no base row used
type Unmatched struct {
	Row   int
	Class string
	File  string
}

// Metric is the outcome of one metric recalculation
type Metric struct {
	Name   string
	Status string
	Error  string
}

// Summary is the data available to report templates
type Summary struct {
	RunID             string
	Base              string
	Override          string
	Output            string
	BaseRows          int
	OverrideRows      int
	Matches           []Match
	UnmatchedBase     []int
	UnmatchedOverride []Unmatched
	AddedColumns      []string
	Metrics           []Metric
	Duration          time.Duration
}

// Renderer renders summaries with a parsed template
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses content with Sprig functions; an empty content selects
// DefaultTemplate
func NewRenderer(content string) (*Renderer, error) {
	if content == "" {
		content = DefaultTemplate
	}

	tmpl, err := template.New("report").Funcs(sprig.TxtFuncMap()).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the rendered summary to w
func (r *Renderer) Render(w io.Writer, summary *Summary) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, summary); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	_, err := buf.WriteTo(w)

	return err
}
