package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

func testConfig() Config {
	return Config{
		KPIs: []domain.KPIDef{
			{ID: "revenue", Name: "Revenue", Format: domain.FormatCurrency},
			{ID: "booking_rate", Name: "Booking Rate", Format: domain.FormatPercent},
		},
		ValidationRules: []domain.ValidationRule{
			{
				ID:        "revenue_reconciles",
				Formula:   "RECONCILE:jobs_won*avg_ticket:revenue",
				Tolerance: 0.02,
				Severity:  domain.SeverityError,
				Message:   "Reported revenue does not match jobs won times average ticket",
				Active:    true,
			},
			{
				ID:       "booking_rate_range",
				Formula:  "RANGE:booking_rate:0:1",
				Severity: domain.SeverityWarning,
				Message:  "Booking rate must be a fraction",
				Active:   true,
			},
		},
		Benchmarks: []domain.BenchmarkThreshold{
			{
				KPIID:      "revenue",
				Industry:   "all",
				Region:     "all",
				Thresholds: domain.ThresholdSet{Poor: 120000, Average: 240000, Good: 480000, Excellent: 960000},
				Direction:  domain.DirectionHigher,
				Basis:      domain.BasisAnnual,
			},
			{
				KPIID:      "booking_rate",
				Industry:   "hvac",
				Region:     "all",
				Thresholds: domain.ThresholdSet{Poor: 0.2, Average: 0.4, Good: 0.6, Excellent: 0.8},
				Direction:  domain.DirectionHigher,
				Basis:      domain.BasisAgnostic,
			},
		},
		InsightRules: []domain.InsightRule{
			{
				ID:              "booking_rate_low",
				Kind:            domain.InsightSingle,
				KPIIDs:          []string{"booking_rate"},
				Trigger:         "average-",
				Title:           "Booking rate has room to grow",
				Status:          domain.StatusConcern,
				SummaryTemplate: "{company_name} books {value_formatted} of leads, benchmark good is {benchmark_good}",
				SectionID:       "sales",
				Priority:        1,
			},
			{
				ID:              "healthy_revenue",
				Kind:            domain.InsightSingle,
				KPIIDs:          []string{"revenue"},
				Trigger:         "good+",
				Title:           "Revenue is healthy",
				Status:          domain.StatusGood,
				SummaryTemplate: "{value_formatted} for a {industry} shop is strong",
				SectionID:       "finance",
				Priority:        1,
			},
		},
	}
}

func TestController_Run(t *testing.T) {
	svc := NewController(testConfig())
	ctx := context.Background()
	profile := domain.CompanyProfile{Name: "Acme Air", Industry: "hvac", Region: "texas", Period: domain.PeriodMonthly}

	t.Run("full pass over consistent metrics", func(t *testing.T) {
		report := svc.Run(ctx, profile, map[string]float64{
			"jobs_won":     20,
			"avg_ticket":   2500,
			"revenue":      50000,
			"booking_rate": 0.45,
		})

		assert.Empty(t, report.Issues)
		assert.Equal(t, domain.RatingGood, report.Ratings["revenue"]) // 50000 vs annual 480000/12
		assert.Equal(t, domain.RatingAverage, report.Ratings["booking_rate"])

		require.Len(t, report.Sections, 2)
		assert.Equal(t, "sales", report.Sections[0].ID)
		require.Len(t, report.Sections[0].Insights, 1)
		assert.Equal(t,
			"Acme Air books 45% of leads, benchmark good is 60%",
			report.Sections[0].Insights[0].Summary,
		)
		assert.Equal(t, "finance", report.Sections[1].ID)
		assert.Equal(t, "$50,000 for a hvac shop is strong", report.Sections[1].Insights[0].Summary)
	})

	t.Run("inconsistent metrics raise an issue", func(t *testing.T) {
		report := svc.Run(ctx, profile, map[string]float64{
			"jobs_won":     20,
			"avg_ticket":   2500,
			"revenue":      80000,
			"booking_rate": 0.45,
		})

		require.Len(t, report.Issues, 1)
		assert.Equal(t, "revenue_reconciles", report.Issues[0].RuleID)
		assert.Equal(t, domain.SeverityError, report.Issues[0].Severity)
	})

	t.Run("missing metrics degrade silently", func(t *testing.T) {
		report := svc.Run(ctx, profile, map[string]float64{})

		assert.Empty(t, report.Issues)
		assert.Empty(t, report.Ratings)
		assert.Empty(t, report.Sections)
	})

	t.Run("good revenue fires the finance insight", func(t *testing.T) {
		report := svc.Run(ctx, profile, map[string]float64{"revenue": 85000})

		require.Len(t, report.Sections, 1)
		assert.Equal(t, "finance", report.Sections[0].ID)
		assert.Equal(t, "$85,000 for a hvac shop is strong", report.Sections[0].Insights[0].Summary)
	})
}
