package adapters

import (
	"github.com/de-tools/kpi-atlas/pkg/models/api"
	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

func MapCompanyApiToDomain(c api.Company) (domain.CompanyProfile, bool) {
	period, ok := domain.ParsePeriod(c.Period)
	if !ok {
		return domain.CompanyProfile{}, false
	}
	return domain.CompanyProfile{
		Name:     c.Name,
		Industry: c.Industry,
		Region:   c.Region,
		Period:   period,
	}, true
}

func MapReportDomainToApi(report domain.Report) api.Report {
	out := api.Report{
		Company: api.Company{
			Name:     report.Company.Name,
			Industry: report.Company.Industry,
			Region:   report.Company.Region,
			Period:   string(report.Company.Period),
		},
		Issues:   []api.ValidationIssue{},
		Ratings:  map[string]string{},
		Sections: []api.InsightSection{},
	}
	for _, issue := range report.Issues {
		out.Issues = append(out.Issues, api.ValidationIssue{
			RuleID:   issue.RuleID,
			Severity: string(issue.Severity),
			Message:  issue.Message,
			Expected: issue.Expected,
			Actual:   issue.Actual,
			Variance: issue.Variance,
		})
	}
	for kpiID, rating := range report.Ratings {
		out.Ratings[kpiID] = rating.String()
	}
	for _, section := range report.Sections {
		apiSection := api.InsightSection{ID: section.ID, Insights: []api.Insight{}}
		for _, ins := range section.Insights {
			apiSection.Insights = append(apiSection.Insights, api.Insight{
				ID:              ins.ID,
				Title:           ins.Title,
				Status:          string(ins.Status),
				Summary:         ins.Summary,
				Detail:          ins.Detail,
				Recommendations: ins.Recommendations,
			})
		}
		out.Sections = append(out.Sections, apiSection)
	}
	return out
}

func MapKPIDefDomainToApi(def domain.KPIDef) api.KPI {
	return api.KPI{ID: def.ID, Name: def.Name, Format: string(def.Format)}
}
