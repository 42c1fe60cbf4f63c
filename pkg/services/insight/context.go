package insight

import (
	"strconv"
	"strings"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

// KPIData carries everything the template context can say about one KPI in
// the current run. The Has* flags distinguish genuine zeros from absence;
// absent pieces simply contribute no placeholders.
type KPIData struct {
	Def           domain.KPIDef
	Value         float64
	HasValue      bool
	Rating        domain.Rating
	HasRating     bool
	Thresholds    domain.ThresholdSet
	HasThresholds bool
}

// buildContext assembles the placeholder map for one rule. Universal fields
// are always present; per-KPI fields are unprefixed for single rules and
// prefixed with the KPI id for composite rules ({booking_rate_formatted}).
func buildContext(profile domain.CompanyProfile, rule domain.InsightRule, data map[string]KPIData) map[string]string {
	context := map[string]string{
		"company_name": profile.Name,
		"industry":     profile.Industry,
		"state":        profile.Region,
	}

	for _, kpiID := range rule.KPIIDs {
		kd, ok := data[strings.ToLower(kpiID)]
		if !ok {
			continue
		}
		if rule.Kind == domain.InsightComposite {
			addKPIFields(context, kd, strings.ToLower(kpiID)+"_", true)
		} else {
			addKPIFields(context, kd, "", false)
		}
	}
	return context
}

func addKPIFields(context map[string]string, kd KPIData, prefix string, composite bool) {
	if kd.HasValue {
		context[prefix+"value"] = strconv.FormatFloat(kd.Value, 'f', -1, 64)
		context[prefix+"value_rounded"] = strconv.FormatFloat(kd.Value, 'f', 0, 64)
		context[prefix+"value_formatted"] = FormatValue(kd.Def.Format, kd.Value)
		if composite {
			// Composite templates use the short spellings {x_rounded} and
			// {x_formatted} alongside the long ones.
			context[prefix+"rounded"] = context[prefix+"value_rounded"]
			context[prefix+"formatted"] = context[prefix+"value_formatted"]
		}
	}
	if kd.HasRating {
		context[prefix+"rating"] = kd.Rating.String()
	}
	context[prefix+"kpi_name"] = kd.Def.Name
	if composite {
		context[prefix+"name"] = kd.Def.Name
	}
	if kd.HasThresholds {
		context[prefix+"benchmark_poor"] = FormatValue(kd.Def.Format, kd.Thresholds.Poor)
		context[prefix+"benchmark_average"] = FormatValue(kd.Def.Format, kd.Thresholds.Average)
		context[prefix+"benchmark_good"] = FormatValue(kd.Def.Format, kd.Thresholds.Good)
		context[prefix+"benchmark_excellent"] = FormatValue(kd.Def.Format, kd.Thresholds.Excellent)
	}
}
