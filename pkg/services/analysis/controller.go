package analysis

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
	"github.com/de-tools/kpi-atlas/pkg/services/benchmark"
	"github.com/de-tools/kpi-atlas/pkg/services/expr"
	"github.com/de-tools/kpi-atlas/pkg/services/insight"
	"github.com/de-tools/kpi-atlas/pkg/services/validation"
)

// Config is the immutable configuration snapshot one controller serves.
// Callers must not mutate it after construction; with that held, Run is safe
// for concurrent use across clients.
type Config struct {
	KPIs            []domain.KPIDef
	ValidationRules []domain.ValidationRule
	Benchmarks      []domain.BenchmarkThreshold
	InsightRules    []domain.InsightRule
}

// Service is the analysis entry point consumed by the HTTP handlers and the
// CLI.
type Service interface {
	Run(ctx context.Context, profile domain.CompanyProfile, metrics map[string]float64) domain.Report
	KPIs() []domain.KPIDef
	ValidationRules() []domain.ValidationRule
}

type controller struct {
	cfg       Config
	validator *validation.Executor
	insights  *insight.Engine
}

func NewController(cfg Config) Service {
	return &controller{
		cfg:       cfg,
		validator: validation.NewExecutor(),
		insights:  insight.NewEngine(),
	}
}

// Run performs one full diagnostic pass: build the value environment, execute
// the validation rules, rate each KPI against its benchmark row, evaluate
// insight triggers and render the matched findings. Everything in the
// returned report is freshly allocated.
func (c *controller) Run(ctx context.Context, profile domain.CompanyProfile, metrics map[string]float64) domain.Report {
	logger := zerolog.Ctx(ctx).With().Str("company", profile.Name).Logger()
	ctx = logger.WithContext(ctx)

	env := expr.NewEnvFromMap(metrics)

	issues := c.validator.Run(ctx, c.cfg.ValidationRules, env)

	bench := benchmark.NewEngine(c.cfg.Benchmarks, profile)
	ratings := bench.RateAll(ctx, c.cfg.KPIs, env)

	data := c.collectKPIData(bench, env, ratings)
	sections := c.insights.Evaluate(ctx, c.cfg.InsightRules, ratings, data, profile)

	logger.Info().
		Int("metrics", len(metrics)).
		Int("issues", len(issues)).
		Int("rated_kpis", len(ratings)).
		Int("sections", len(sections)).
		Msg("analysis run complete")

	return domain.Report{
		Company:  profile,
		Issues:   issues,
		Ratings:  ratings,
		Sections: sections,
	}
}

func (c *controller) KPIs() []domain.KPIDef {
	out := make([]domain.KPIDef, len(c.cfg.KPIs))
	copy(out, c.cfg.KPIs)
	return out
}

func (c *controller) ValidationRules() []domain.ValidationRule {
	out := make([]domain.ValidationRule, len(c.cfg.ValidationRules))
	copy(out, c.cfg.ValidationRules)
	return out
}

// collectKPIData gathers per-KPI template material, keyed by lowercased id.
func (c *controller) collectKPIData(bench *benchmark.Engine, env *expr.Env, ratings map[string]domain.Rating) map[string]insight.KPIData {
	data := make(map[string]insight.KPIData, len(c.cfg.KPIs))
	for _, def := range c.cfg.KPIs {
		kd := insight.KPIData{Def: def}
		if v, ok := env.Lookup(def.ID); ok {
			kd.Value = v
			kd.HasValue = true
		}
		if rating, ok := ratings[def.ID]; ok {
			kd.Rating = rating
			kd.HasRating = true
		}
		if set, _, ok := bench.Thresholds(def.ID); ok {
			kd.Thresholds = set
			kd.HasThresholds = true
		}
		data[strings.ToLower(def.ID)] = kd
	}
	return data
}
