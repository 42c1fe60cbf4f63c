package api

type Company struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Region   string `json:"region"`
	Period   string `json:"period"`
}

type ValidationIssue struct {
	RuleID   string   `json:"rule_id"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Expected *float64 `json:"expected,omitempty"`
	Actual   *float64 `json:"actual,omitempty"`
	Variance *float64 `json:"variance,omitempty"`
}

type Insight struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Status          string   `json:"status"`
	Summary         string   `json:"summary"`
	Detail          string   `json:"detail,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

type InsightSection struct {
	ID       string    `json:"id"`
	Insights []Insight `json:"insights"`
}

type Report struct {
	Company  Company           `json:"company"`
	Issues   []ValidationIssue `json:"issues"`
	Ratings  map[string]string `json:"ratings"`
	Sections []InsightSection  `json:"sections"`
}

type KPI struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
}

// AnalysisRequest is the body of POST /api/v1/analysis. Metrics maps KPI ids
// to raw or derived values; omitted KPIs are treated as absent.
type AnalysisRequest struct {
	Company Company            `json:"company"`
	Metrics map[string]float64 `json:"metrics"`
}
