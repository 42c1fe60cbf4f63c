package domain

// Report is the full outcome of one analysis run: consistency issues,
// per-KPI ratings and the rendered findings grouped by section. All fields
// are freshly allocated per run and never mutated afterwards.
type Report struct {
	Company  CompanyProfile
	Issues   []ValidationIssue
	Ratings  map[string]Rating
	Sections []InsightSection
}
