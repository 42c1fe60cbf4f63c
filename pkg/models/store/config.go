package store

// Config rows mirror the flat textual columns of the tabular configuration
// storage. All fields are strings; parsing into typed domain values happens
// in pkg/adapters, where malformed cells are logged and the row is dropped
// rather than aborting the load.

type KPIDefRow struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
}

type ValidationRuleRow struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Formula      string `yaml:"formula"`
	Tolerance    string `yaml:"tolerance"`
	Severity     string `yaml:"severity"`
	Message      string `yaml:"message"`
	AffectedKPIs string `yaml:"affected_kpis"` // comma-separated
	Active       string `yaml:"active"`
}

type BenchmarkRow struct {
	KPIID     string `yaml:"kpi_id"`
	Industry  string `yaml:"industry"`
	Region    string `yaml:"region"`
	Poor      string `yaml:"poor"`
	Average   string `yaml:"average"`
	Good      string `yaml:"good"`
	Excellent string `yaml:"excellent"`
	Direction string `yaml:"direction"`
	Period    string `yaml:"period"` // annual | agnostic
}

type InsightRuleRow struct {
	ID              string `yaml:"id"`
	Kind            string `yaml:"kind"`
	KPIIDs          string `yaml:"kpi_ids"` // comma-separated
	Trigger         string `yaml:"trigger"`
	Title           string `yaml:"title"`
	Status          string `yaml:"status"`
	SummaryTemplate string `yaml:"summary_template"`
	DetailTemplate  string `yaml:"detail_template"`
	Recommendations string `yaml:"recommendations"` // "|"-separated
	SectionID       string `yaml:"section_id"`
	Priority        string `yaml:"priority"`
}

// ConfigTables bundles one full snapshot of the four configuration tables as
// read from storage.
type ConfigTables struct {
	KPIs            []KPIDefRow         `yaml:"kpis"`
	ValidationRules []ValidationRuleRow `yaml:"validation_rules"`
	Benchmarks      []BenchmarkRow      `yaml:"benchmarks"`
	InsightRules    []InsightRuleRow    `yaml:"insight_rules"`
}
