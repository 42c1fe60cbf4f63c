package benchmark

import (
	"strings"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

// Row specificity ranks, highest wins. Ties resolve to the first-declared
// row: the scan only replaces the candidate on a strictly higher rank.
const (
	rankUniversal = iota
	rankRegion
	rankIndustry
	rankExact
)

// Index resolves which benchmark row applies to each KPI for one subject
// (industry, region) pair. Resolution runs once per KPI per run and is
// cached; the source rows are never mutated.
type Index struct {
	industry string
	region   string
	rows     []domain.BenchmarkThreshold
	cache    map[string]*domain.BenchmarkThreshold
}

func NewIndex(rows []domain.BenchmarkThreshold, industry, region string) *Index {
	return &Index{
		industry: industry,
		region:   region,
		rows:     rows,
		cache:    make(map[string]*domain.BenchmarkThreshold),
	}
}

// Resolve returns the most specific row for the KPI, if any row's filters
// admit the subject.
func (ix *Index) Resolve(kpiID string) (domain.BenchmarkThreshold, bool) {
	key := strings.ToLower(kpiID)
	if cached, ok := ix.cache[key]; ok {
		if cached == nil {
			return domain.BenchmarkThreshold{}, false
		}
		return *cached, true
	}

	var best *domain.BenchmarkThreshold
	bestRank := -1
	for i := range ix.rows {
		row := &ix.rows[i]
		if !strings.EqualFold(row.KPIID, kpiID) {
			continue
		}
		rank, ok := ix.rank(row)
		if !ok {
			continue
		}
		if rank > bestRank {
			best = row
			bestRank = rank
		}
	}

	ix.cache[key] = best
	if best == nil {
		return domain.BenchmarkThreshold{}, false
	}
	return *best, true
}

// rank scores how specifically the row's filters match the subject. ok is
// false when either filter names a different industry/region.
func (ix *Index) rank(row *domain.BenchmarkThreshold) (int, bool) {
	industryExact := strings.EqualFold(row.Industry, ix.industry)
	regionExact := strings.EqualFold(row.Region, ix.region)

	if !industryExact && !domain.MatchesAll(row.Industry) {
		return 0, false
	}
	if !regionExact && !domain.MatchesAll(row.Region) {
		return 0, false
	}

	switch {
	case industryExact && regionExact:
		return rankExact, true
	case industryExact:
		return rankIndustry, true
	case regionExact:
		return rankRegion, true
	default:
		return rankUniversal, true
	}
}
