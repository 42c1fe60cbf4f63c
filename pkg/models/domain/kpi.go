package domain

import "strings"

// KPIFormat controls how a KPI value is rendered in findings and reports.
type KPIFormat string

const (
	FormatPercent  KPIFormat = "percent"
	FormatCurrency KPIFormat = "currency"
	FormatRatio    KPIFormat = "ratio"
	FormatNumber   KPIFormat = "number"
)

func ParseKPIFormat(s string) (KPIFormat, bool) {
	switch KPIFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPercent:
		return FormatPercent, true
	case FormatCurrency:
		return FormatCurrency, true
	case FormatRatio:
		return FormatRatio, true
	case FormatNumber:
		return FormatNumber, true
	}
	return "", false
}

// KPIDef describes one named business metric. Percent KPIs are stored as
// fractions (0.45) and multiplied by 100 when formatted.
type KPIDef struct {
	ID     string
	Name   string
	Format KPIFormat
}

// Period is the reporting window the subject's metric values cover.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodAnnual    Period = "annual"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodMonthly:
		return PeriodMonthly, true
	case PeriodQuarterly:
		return PeriodQuarterly, true
	case PeriodAnnual:
		return PeriodAnnual, true
	}
	return "", false
}

// Divisor returns the factor annual benchmark thresholds are divided by
// before rating a value reported for this period.
func (p Period) Divisor() float64 {
	switch p {
	case PeriodMonthly:
		return 12
	case PeriodQuarterly:
		return 4
	default:
		return 1
	}
}

// CompanyProfile identifies the subject of an analysis run and scopes which
// benchmark rows apply to it.
type CompanyProfile struct {
	Name     string
	Industry string
	Region   string
	Period   Period
}
