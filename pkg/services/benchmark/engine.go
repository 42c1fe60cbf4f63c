package benchmark

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
	"github.com/de-tools/kpi-atlas/pkg/services/expr"
)

// Engine rates subject values against the benchmark table for one analysis
// run. It snapshots nothing mutable: the row slice is read-only and the
// per-KPI resolution cache lives inside the run's Index.
type Engine struct {
	index  *Index
	period domain.Period
}

func NewEngine(rows []domain.BenchmarkThreshold, profile domain.CompanyProfile) *Engine {
	return &Engine{
		index:  NewIndex(rows, profile.Industry, profile.Region),
		period: profile.Period,
	}
}

// Thresholds returns the applicable threshold set for the KPI, already
// normalized to the subject's reporting period. Annual-basis rows are divided
// by the period divisor; agnostic rows (ratios, percentages) pass through
// untouched.
func (e *Engine) Thresholds(kpiID string) (domain.ThresholdSet, domain.Direction, bool) {
	row, ok := e.index.Resolve(kpiID)
	if !ok {
		return domain.ThresholdSet{}, "", false
	}
	set := row.Thresholds
	if row.Basis == domain.BasisAnnual {
		divisor := e.period.Divisor()
		set = domain.ThresholdSet{
			Poor:      set.Poor / divisor,
			Average:   set.Average / divisor,
			Good:      set.Good / divisor,
			Excellent: set.Excellent / divisor,
		}
	}
	return set, row.Direction, true
}

// RateValue rates one KPI value. ok is false when no benchmark row applies.
func (e *Engine) RateValue(kpiID string, value float64) (domain.Rating, bool) {
	set, direction, ok := e.Thresholds(kpiID)
	if !ok {
		return 0, false
	}
	return Rate(value, set, direction)
}

// RateAll rates every KPI that has both a value and an applicable benchmark
// row. KPIs without either are silently left out of the result map.
func (e *Engine) RateAll(ctx context.Context, kpis []domain.KPIDef, env *expr.Env) map[string]domain.Rating {
	logger := zerolog.Ctx(ctx)
	ratings := make(map[string]domain.Rating)
	for _, def := range kpis {
		value, ok := env.Lookup(def.ID)
		if !ok {
			continue
		}
		rating, ok := e.RateValue(def.ID, value)
		if !ok {
			logger.Debug().Str("kpi", def.ID).Msg("no applicable benchmark row, kpi left unrated")
			continue
		}
		ratings[def.ID] = rating
	}
	return ratings
}
