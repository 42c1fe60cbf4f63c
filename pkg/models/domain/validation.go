package domain

// Severity is carried verbatim from the rule configuration onto any issue the
// rule produces; the engine never computes or reclassifies it.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// ValidationRule is one consistency check over the submitted metrics. Formula
// is a typed textual form, e.g. "RECONCILE:jobs_won*avg_ticket:revenue" or
// "RANGE:gross_margin:0:1".
type ValidationRule struct {
	ID           string
	Name         string
	Type         string
	Formula      string
	Tolerance    float64
	Severity     Severity
	Message      string
	AffectedKPIs []string
	Active       bool
}

// ValidationIssue is emitted for every failed, non-skipped rule. Expected,
// Actual and Variance are nil when the check has no numeric reading for them
// (e.g. a REQUIRES failure).
type ValidationIssue struct {
	RuleID   string
	Severity Severity
	Message  string
	Expected *float64
	Actual   *float64
	Variance *float64
}
