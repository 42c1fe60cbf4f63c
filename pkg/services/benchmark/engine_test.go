package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
	"github.com/de-tools/kpi-atlas/pkg/services/expr"
)

func bmRow(kpi, industry, region string, poor, avg, good, excellent float64) domain.BenchmarkThreshold {
	return domain.BenchmarkThreshold{
		KPIID:      kpi,
		Industry:   industry,
		Region:     region,
		Thresholds: domain.ThresholdSet{Poor: poor, Average: avg, Good: good, Excellent: excellent},
		Direction:  domain.DirectionHigher,
		Basis:      domain.BasisAgnostic,
	}
}

func TestIndex_SpecificityFallback(t *testing.T) {
	exact := bmRow("booking_rate", "hvac", "texas", 1, 2, 3, 4)
	industryOnly := bmRow("booking_rate", "hvac", "all", 10, 20, 30, 40)
	universal := bmRow("booking_rate", "all", "all", 100, 200, 300, 400)

	t.Run("exact row wins", func(t *testing.T) {
		ix := NewIndex([]domain.BenchmarkThreshold{universal, industryOnly, exact}, "hvac", "texas")
		row, ok := ix.Resolve("booking_rate")
		require.True(t, ok)
		assert.Equal(t, exact.Thresholds, row.Thresholds)
	})

	t.Run("falls back to industry-only", func(t *testing.T) {
		ix := NewIndex([]domain.BenchmarkThreshold{universal, industryOnly}, "hvac", "texas")
		row, ok := ix.Resolve("booking_rate")
		require.True(t, ok)
		assert.Equal(t, industryOnly.Thresholds, row.Thresholds)
	})

	t.Run("falls back to universal", func(t *testing.T) {
		ix := NewIndex([]domain.BenchmarkThreshold{universal}, "hvac", "texas")
		row, ok := ix.Resolve("booking_rate")
		require.True(t, ok)
		assert.Equal(t, universal.Thresholds, row.Thresholds)
	})

	t.Run("region-only outranks universal", func(t *testing.T) {
		regionOnly := bmRow("booking_rate", "all", "texas", 5, 6, 7, 8)
		ix := NewIndex([]domain.BenchmarkThreshold{universal, regionOnly}, "hvac", "texas")
		row, ok := ix.Resolve("booking_rate")
		require.True(t, ok)
		assert.Equal(t, regionOnly.Thresholds, row.Thresholds)
	})

	t.Run("rows for other industries are excluded", func(t *testing.T) {
		plumbing := bmRow("booking_rate", "plumbing", "all", 1, 2, 3, 4)
		ix := NewIndex([]domain.BenchmarkThreshold{plumbing}, "hvac", "texas")
		_, ok := ix.Resolve("booking_rate")
		assert.False(t, ok)
	})

	t.Run("no row for the kpi", func(t *testing.T) {
		ix := NewIndex([]domain.BenchmarkThreshold{universal}, "hvac", "texas")
		_, ok := ix.Resolve("close_rate")
		assert.False(t, ok)
	})
}

func TestIndex_TieBreakFirstDeclared(t *testing.T) {
	first := bmRow("booking_rate", "hvac", "all", 1, 2, 3, 4)
	second := bmRow("booking_rate", "hvac", "all", 10, 20, 30, 40)

	ix := NewIndex([]domain.BenchmarkThreshold{first, second}, "hvac", "texas")
	row, ok := ix.Resolve("booking_rate")
	require.True(t, ok)
	assert.Equal(t, first.Thresholds, row.Thresholds)

	// Declaration order flipped, the other row wins.
	ix = NewIndex([]domain.BenchmarkThreshold{second, first}, "hvac", "texas")
	row, ok = ix.Resolve("booking_rate")
	require.True(t, ok)
	assert.Equal(t, second.Thresholds, row.Thresholds)
}

func TestIndex_ResolutionIsCached(t *testing.T) {
	rows := []domain.BenchmarkThreshold{bmRow("booking_rate", "all", "all", 1, 2, 3, 4)}
	ix := NewIndex(rows, "hvac", "texas")

	first, ok := ix.Resolve("booking_rate")
	require.True(t, ok)
	again, ok := ix.Resolve("Booking_Rate")
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestEngine_PeriodNormalization(t *testing.T) {
	annualRow := domain.BenchmarkThreshold{
		KPIID:      "revenue",
		Industry:   "all",
		Region:     "all",
		Thresholds: domain.ThresholdSet{Poor: 120000, Average: 240000, Good: 480000, Excellent: 960000},
		Direction:  domain.DirectionHigher,
		Basis:      domain.BasisAnnual,
	}
	ratioRow := bmRow("gross_margin", "all", "all", 0.1, 0.2, 0.3, 0.4)

	t.Run("annual thresholds divided for monthly subjects", func(t *testing.T) {
		engine := NewEngine([]domain.BenchmarkThreshold{annualRow, ratioRow}, domain.CompanyProfile{
			Industry: "hvac", Region: "texas", Period: domain.PeriodMonthly,
		})

		set, direction, ok := engine.Thresholds("revenue")
		require.True(t, ok)
		assert.Equal(t, domain.DirectionHigher, direction)
		assert.Equal(t, domain.ThresholdSet{Poor: 10000, Average: 20000, Good: 40000, Excellent: 80000}, set)

		rating, ok := engine.RateValue("revenue", 45000)
		require.True(t, ok)
		assert.Equal(t, domain.RatingGood, rating)
	})

	t.Run("quarterly divisor", func(t *testing.T) {
		engine := NewEngine([]domain.BenchmarkThreshold{annualRow}, domain.CompanyProfile{
			Period: domain.PeriodQuarterly,
		})
		set, _, ok := engine.Thresholds("revenue")
		require.True(t, ok)
		assert.Equal(t, 30000.0, set.Poor)
	})

	t.Run("annual subjects are not adjusted", func(t *testing.T) {
		engine := NewEngine([]domain.BenchmarkThreshold{annualRow}, domain.CompanyProfile{
			Period: domain.PeriodAnnual,
		})
		set, _, ok := engine.Thresholds("revenue")
		require.True(t, ok)
		assert.Equal(t, annualRow.Thresholds, set)
	})

	t.Run("agnostic rows are never adjusted", func(t *testing.T) {
		engine := NewEngine([]domain.BenchmarkThreshold{ratioRow}, domain.CompanyProfile{
			Period: domain.PeriodMonthly,
		})
		set, _, ok := engine.Thresholds("gross_margin")
		require.True(t, ok)
		assert.Equal(t, ratioRow.Thresholds, set)
	})
}

func TestEngine_RateAll(t *testing.T) {
	rows := []domain.BenchmarkThreshold{
		bmRow("booking_rate", "all", "all", 0.2, 0.4, 0.6, 0.8),
		bmRow("close_rate", "all", "all", 0.1, 0.2, 0.3, 0.4),
	}
	kpis := []domain.KPIDef{
		{ID: "booking_rate", Name: "Booking Rate", Format: domain.FormatPercent},
		{ID: "close_rate", Name: "Close Rate", Format: domain.FormatPercent},
		{ID: "unbenchmarked", Name: "Misc", Format: domain.FormatNumber},
	}
	engine := NewEngine(rows, domain.CompanyProfile{Industry: "hvac", Region: "texas", Period: domain.PeriodMonthly})
	env := expr.NewEnvFromMap(map[string]float64{
		"booking_rate":  0.65,
		"unbenchmarked": 12,
		// close_rate absent
	})

	ratings := engine.RateAll(context.Background(), kpis, env)

	assert.Equal(t, map[string]domain.Rating{"booking_rate": domain.RatingGood}, ratings)
}
