package insight

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

// Engine evaluates insight rules against the run's ratings and renders the
// matched ones. It is stateless; rule parsing happens per call so a bad rule
// added to the configuration can never poison other runs.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

type sectionEntry struct {
	result   domain.InsightResult
	status   domain.InsightStatus
	priority int
}

// Evaluate produces zero or one InsightResult per rule and groups results by
// section. Sections appear in order of first declaration; within a section
// results sort by status rank (concern < warning < good) then ascending
// priority, declaration order preserved on ties.
func (e *Engine) Evaluate(
	ctx context.Context,
	rules []domain.InsightRule,
	ratings map[string]domain.Rating,
	data map[string]KPIData,
	profile domain.CompanyProfile,
) []domain.InsightSection {
	logger := zerolog.Ctx(ctx)

	lowered := make(map[string]domain.Rating, len(ratings))
	for kpiID, rating := range ratings {
		lowered[strings.ToLower(kpiID)] = rating
	}

	sectionOrder := make([]string, 0)
	entries := make(map[string][]sectionEntry)

	for _, rule := range rules {
		trigger, err := ParseTrigger(rule)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("rule", rule.ID).
				Str("trigger", rule.Trigger).
				Msg("malformed insight trigger, rule will not fire")
			continue
		}
		if !trigger.Fires(lowered) {
			continue
		}

		templateCtx := buildContext(profile, rule, data)
		recommendations := rule.Recommendations
		if len(recommendations) > domain.MaxRecommendations {
			recommendations = recommendations[:domain.MaxRecommendations]
		}
		result := domain.InsightResult{
			ID:              rule.ID,
			Title:           Render(rule.Title, templateCtx),
			Status:          rule.Status,
			Summary:         Render(rule.SummaryTemplate, templateCtx),
			Detail:          Render(rule.DetailTemplate, templateCtx),
			Recommendations: recommendations,
		}

		if _, seen := entries[rule.SectionID]; !seen {
			sectionOrder = append(sectionOrder, rule.SectionID)
		}
		entries[rule.SectionID] = append(entries[rule.SectionID], sectionEntry{
			result:   result,
			status:   rule.Status,
			priority: rule.Priority,
		})
	}

	sections := make([]domain.InsightSection, 0, len(sectionOrder))
	for _, sectionID := range sectionOrder {
		sectionEntries := entries[sectionID]
		sort.SliceStable(sectionEntries, func(i, j int) bool {
			if sectionEntries[i].status.Rank() != sectionEntries[j].status.Rank() {
				return sectionEntries[i].status.Rank() < sectionEntries[j].status.Rank()
			}
			return sectionEntries[i].priority < sectionEntries[j].priority
		})
		section := domain.InsightSection{ID: sectionID, Insights: make([]domain.InsightResult, 0, len(sectionEntries))}
		for _, entry := range sectionEntries {
			section.Insights = append(section.Insights, entry.result)
		}
		sections = append(sections, section)
	}
	return sections
}
