package domain

import "strings"

// BenchmarkBasis marks whether a threshold row is stated in annual terms and
// must be scaled for sub-annual subjects, or is period-agnostic (ratios and
// percentages).
type BenchmarkBasis string

const (
	BasisAnnual   BenchmarkBasis = "annual"
	BasisAgnostic BenchmarkBasis = "agnostic"
)

func ParseBenchmarkBasis(s string) (BenchmarkBasis, bool) {
	switch BenchmarkBasis(strings.ToLower(strings.TrimSpace(s))) {
	case BasisAnnual:
		return BasisAnnual, true
	case BasisAgnostic:
		return BasisAgnostic, true
	}
	return "", false
}

// ThresholdSet holds the four rating boundaries for one benchmark row.
// Ordering consistent with the row's direction is assumed, not enforced.
type ThresholdSet struct {
	Poor      float64
	Average   float64
	Good      float64
	Excellent float64
}

// BenchmarkThreshold is one benchmark table row. Industry and Region use the
// literal "all" as a wildcard.
type BenchmarkThreshold struct {
	KPIID      string
	Industry   string
	Region     string
	Thresholds ThresholdSet
	Direction  Direction
	Basis      BenchmarkBasis
}

// MatchesAll reports whether a filter value is the universal wildcard.
func MatchesAll(filter string) bool {
	return strings.EqualFold(filter, "all") || filter == ""
}
