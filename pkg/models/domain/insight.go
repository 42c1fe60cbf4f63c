package domain

import "strings"

type InsightKind string

const (
	InsightSingle    InsightKind = "single"
	InsightComposite InsightKind = "composite"
)

// InsightStatus classifies a finding for ordering purposes. Concern sorts
// before warning, warning before good.
type InsightStatus string

const (
	StatusConcern InsightStatus = "concern"
	StatusWarning InsightStatus = "warning"
	StatusGood    InsightStatus = "good"
)

// Rank returns the sort position of the status. Unknown statuses sort last.
func (s InsightStatus) Rank() int {
	switch s {
	case StatusConcern:
		return 0
	case StatusWarning:
		return 1
	case StatusGood:
		return 2
	}
	return 3
}

func ParseInsightStatus(s string) (InsightStatus, bool) {
	switch InsightStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusConcern:
		return StatusConcern, true
	case StatusWarning:
		return StatusWarning, true
	case StatusGood:
		return StatusGood, true
	}
	return "", false
}

// MaxRecommendations caps the recommendation list of a rule; extras are
// dropped at load time.
const MaxRecommendations = 5

// InsightRule describes one finding template and the rating condition that
// triggers it. For single rules Trigger is a bare condition ("poor-") applied
// to KPIIDs[0]; for composite rules it is a conjunction of
// "<kpiId>:<condition>" clauses joined by " AND ".
type InsightRule struct {
	ID              string
	Kind            InsightKind
	KPIIDs          []string
	Trigger         string
	Title           string
	Status          InsightStatus
	SummaryTemplate string
	DetailTemplate  string
	Recommendations []string
	SectionID       string
	Priority        int
}

// InsightResult is one rendered finding.
type InsightResult struct {
	ID              string
	Title           string
	Status          InsightStatus
	Summary         string
	Detail          string
	Recommendations []string
}

// InsightSection groups findings by report section, ordered by status rank
// then ascending priority.
type InsightSection struct {
	ID       string
	Insights []InsightResult
}
