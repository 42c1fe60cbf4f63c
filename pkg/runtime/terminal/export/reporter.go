package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth    int
	ValueWidth   int
	MessageWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:    28,
		ValueWidth:   14,
		MessageWidth: 60,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle renders the full diagnostic report as plain text tables: data
// quality issues first, then ratings, then the findings per section.
func (c *Reporter) Handle(report domain.Report) error {
	funcMap := template.FuncMap{
		"issueRow": func(issue domain.ValidationIssue) string {
			variance := ""
			if issue.Variance != nil {
				variance = fmt.Sprintf("%.1f%%", *issue.Variance*100)
			}
			return fmt.Sprintf("| %-*s | %-8s | %-*s | %-6s |",
				c.config.NameWidth, truncate(issue.RuleID, c.config.NameWidth),
				issue.Severity,
				c.config.MessageWidth, truncate(issue.Message, c.config.MessageWidth),
				variance)
		},
		"ratingRow": func(kpiID string, rating domain.Rating) string {
			return fmt.Sprintf("| %-*s | %-*s |",
				c.config.NameWidth, truncate(kpiID, c.config.NameWidth),
				c.config.ValueWidth, rating.String())
		},
		"upper": strings.ToUpper,
	}

	tmpl := `
Diagnostic report for {{.Company.Name}} ({{.Company.Industry}}, {{.Company.Region}}, {{.Company.Period}})
{{if .Issues}}
Data quality issues:
{{range .Issues}}{{issueRow .}}
{{end}}{{else}}
No data quality issues found.
{{end}}
KPI ratings:
{{range $kpi, $rating := .Ratings}}{{ratingRow $kpi $rating}}
{{end}}{{range .Sections}}
=== {{upper .ID}} ==={{range .Insights}}

[{{.Status}}] {{.Title}}
  {{.Summary}}{{if .Detail}}
  {{.Detail}}{{end}}{{range .Recommendations}}
  - {{.}}{{end}}{{end}}
{{end}}`

	parsed, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return parsed.Execute(c.writer, report)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
