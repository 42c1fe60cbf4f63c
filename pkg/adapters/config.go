package adapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
	"github.com/de-tools/kpi-atlas/pkg/models/store"
)

func MapStoreKPIDefToDomain(row store.KPIDefRow) (domain.KPIDef, error) {
	if row.ID == "" {
		return domain.KPIDef{}, fmt.Errorf("kpi row has empty id")
	}
	format, ok := domain.ParseKPIFormat(row.Format)
	if !ok {
		return domain.KPIDef{}, fmt.Errorf("kpi %q: unknown format %q", row.ID, row.Format)
	}
	name := row.Name
	if name == "" {
		name = row.ID
	}
	return domain.KPIDef{ID: row.ID, Name: name, Format: format}, nil
}

func MapStoreValidationRuleToDomain(row store.ValidationRuleRow) (domain.ValidationRule, error) {
	if row.ID == "" {
		return domain.ValidationRule{}, fmt.Errorf("validation rule row has empty id")
	}
	tolerance := 0.0
	if strings.TrimSpace(row.Tolerance) != "" {
		var err error
		tolerance, err = strconv.ParseFloat(strings.TrimSpace(row.Tolerance), 64)
		if err != nil {
			return domain.ValidationRule{}, fmt.Errorf("validation rule %q: bad tolerance %q", row.ID, row.Tolerance)
		}
	}
	return domain.ValidationRule{
		ID:           row.ID,
		Name:         row.Name,
		Type:         row.Type,
		Formula:      strings.TrimSpace(row.Formula),
		Tolerance:    tolerance,
		Severity:     domain.Severity(strings.ToLower(strings.TrimSpace(row.Severity))),
		Message:      row.Message,
		AffectedKPIs: splitList(row.AffectedKPIs, ","),
		Active:       isActive(row.Active),
	}, nil
}

func MapStoreBenchmarkToDomain(row store.BenchmarkRow) (domain.BenchmarkThreshold, error) {
	if row.KPIID == "" {
		return domain.BenchmarkThreshold{}, fmt.Errorf("benchmark row has empty kpi_id")
	}
	direction, ok := domain.ParseDirection(row.Direction)
	if !ok {
		return domain.BenchmarkThreshold{}, fmt.Errorf("benchmark %q: unknown direction %q", row.KPIID, row.Direction)
	}
	basis, ok := domain.ParseBenchmarkBasis(row.Period)
	if !ok {
		return domain.BenchmarkThreshold{}, fmt.Errorf("benchmark %q: unknown period %q", row.KPIID, row.Period)
	}
	set := domain.ThresholdSet{}
	for _, cell := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"poor", row.Poor, &set.Poor},
		{"average", row.Average, &set.Average},
		{"good", row.Good, &set.Good},
		{"excellent", row.Excellent, &set.Excellent},
	} {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell.raw), 64)
		if err != nil {
			return domain.BenchmarkThreshold{}, fmt.Errorf("benchmark %q: non-numeric %s threshold %q", row.KPIID, cell.name, cell.raw)
		}
		*cell.dst = v
	}
	return domain.BenchmarkThreshold{
		KPIID:      row.KPIID,
		Industry:   strings.TrimSpace(row.Industry),
		Region:     strings.TrimSpace(row.Region),
		Thresholds: set,
		Direction:  direction,
		Basis:      basis,
	}, nil
}

func MapStoreInsightRuleToDomain(row store.InsightRuleRow) (domain.InsightRule, error) {
	if row.ID == "" {
		return domain.InsightRule{}, fmt.Errorf("insight rule row has empty id")
	}
	kind := domain.InsightKind(strings.ToLower(strings.TrimSpace(row.Kind)))
	if kind != domain.InsightSingle && kind != domain.InsightComposite {
		return domain.InsightRule{}, fmt.Errorf("insight rule %q: unknown kind %q", row.ID, row.Kind)
	}
	status, ok := domain.ParseInsightStatus(row.Status)
	if !ok {
		return domain.InsightRule{}, fmt.Errorf("insight rule %q: unknown status %q", row.ID, row.Status)
	}
	priority := 0
	if strings.TrimSpace(row.Priority) != "" {
		var err error
		priority, err = strconv.Atoi(strings.TrimSpace(row.Priority))
		if err != nil {
			return domain.InsightRule{}, fmt.Errorf("insight rule %q: bad priority %q", row.ID, row.Priority)
		}
	}
	kpiIDs := splitList(row.KPIIDs, ",")
	if len(kpiIDs) == 0 {
		return domain.InsightRule{}, fmt.Errorf("insight rule %q: no kpi ids", row.ID)
	}
	recommendations := splitList(row.Recommendations, "|")
	if len(recommendations) > domain.MaxRecommendations {
		recommendations = recommendations[:domain.MaxRecommendations]
	}
	return domain.InsightRule{
		ID:              row.ID,
		Kind:            kind,
		KPIIDs:          kpiIDs,
		Trigger:         strings.TrimSpace(row.Trigger),
		Title:           row.Title,
		Status:          status,
		SummaryTemplate: row.SummaryTemplate,
		DetailTemplate:  row.DetailTemplate,
		Recommendations: recommendations,
		SectionID:       strings.TrimSpace(row.SectionID),
		Priority:        priority,
	}, nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isActive(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "1", "yes", "y":
		return true
	}
	return false
}
