package validation

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
	"github.com/de-tools/kpi-atlas/pkg/services/expr"
)

// Result is the outcome of running one rule. Skipped results always count as
// passed: missing data or malformed configuration never produces an issue.
type Result struct {
	Passed   bool
	Skipped  bool
	Actual   *float64
	Expected *float64
	Variance *float64
}

func skipped() Result { return Result{Passed: true, Skipped: true} }

// Executor dispatches typed validation formulas to their checkers. It holds
// no state; one instance can serve concurrent runs.
type Executor struct{}

func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs a single rule against the environment. Malformed formulas are
// logged as configuration warnings and treated as vacuously passing.
func (ex *Executor) Execute(ctx context.Context, rule domain.ValidationRule, env *expr.Env) Result {
	parts := strings.Split(rule.Formula, ":")
	if len(parts) < 2 {
		ex.warnFormula(ctx, rule, "missing formula arguments")
		return skipped()
	}

	op := strings.ToUpper(strings.TrimSpace(parts[0]))
	args := parts[1:]

	switch op {
	case "RECONCILE":
		return ex.reconcile(ctx, rule, args, env)
	case "RANGE":
		return ex.checkRange(ctx, rule, args, env)
	case "GREATER", "GT":
		return ex.compare(ctx, rule, args, env, func(a, b float64) bool { return a > b })
	case "GTE":
		return ex.compare(ctx, rule, args, env, func(a, b float64) bool { return a >= b })
	case "EQUALS":
		return ex.equals(ctx, rule, args, env)
	case "REQUIRES":
		return ex.requires(ctx, rule, args, env)
	case "RATIO_MIN":
		return ex.ratio(ctx, rule, args, env, func(v, threshold float64) bool { return v >= threshold })
	case "RATIO_MAX":
		return ex.ratio(ctx, rule, args, env, func(v, threshold float64) bool { return v <= threshold })
	default:
		ex.warnFormula(ctx, rule, "unknown formula type")
		return skipped()
	}
}

// Run executes every active rule and turns each failing, non-skipped result
// into exactly one ValidationIssue, severity copied from the rule.
func (ex *Executor) Run(ctx context.Context, rules []domain.ValidationRule, env *expr.Env) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		result := ex.Execute(ctx, rule, env)
		if result.Passed || result.Skipped {
			continue
		}
		issues = append(issues, domain.ValidationIssue{
			RuleID:   rule.ID,
			Severity: rule.Severity,
			Message:  rule.Message,
			Expected: result.Expected,
			Actual:   result.Actual,
			Variance: result.Variance,
		})
	}
	return issues
}

// reconcile checks a derived expression against a reported total:
// RECONCILE:<expr>:<targetId>. The variance is relative to the larger
// magnitude of the two sides, floored at 1 so near-zero totals do not blow
// the ratio up.
func (ex *Executor) reconcile(ctx context.Context, rule domain.ValidationRule, args []string, env *expr.Env) Result {
	if len(args) != 2 {
		ex.warnFormula(ctx, rule, "RECONCILE expects <expr>:<targetId>")
		return skipped()
	}
	computed, ok := ex.eval(ctx, rule, args[0], env)
	if !ok {
		return skipped()
	}
	reported, ok := env.Lookup(args[1])
	if !ok {
		return skipped()
	}
	variance := relativeVariance(computed, reported)
	return Result{
		Passed:   variance <= rule.Tolerance,
		Actual:   ptr(computed),
		Expected: ptr(reported),
		Variance: ptr(variance),
	}
}

// checkRange: RANGE:<id>:<min>:<max>, bounds inclusive, min may be negative.
func (ex *Executor) checkRange(ctx context.Context, rule domain.ValidationRule, args []string, env *expr.Env) Result {
	if len(args) != 3 {
		ex.warnFormula(ctx, rule, "RANGE expects <id>:<min>:<max>")
		return skipped()
	}
	min, okMin := parseNumber(args[1])
	max, okMax := parseNumber(args[2])
	if !okMin || !okMax {
		ex.warnFormula(ctx, rule, "RANGE bounds are not numeric")
		return skipped()
	}
	v, ok := env.Lookup(args[0])
	if !ok {
		return skipped()
	}
	return Result{Passed: min <= v && v <= max, Actual: ptr(v)}
}

// compare handles GREATER/GT/GTE:<a>:<b>. The left side is a bare
// identifier; the right side may be a full expression.
func (ex *Executor) compare(ctx context.Context, rule domain.ValidationRule, args []string, env *expr.Env, cmp func(a, b float64) bool) Result {
	if len(args) != 2 {
		ex.warnFormula(ctx, rule, "comparison expects <a>:<b>")
		return skipped()
	}
	a, ok := env.Lookup(args[0])
	if !ok {
		return skipped()
	}
	b, ok := ex.eval(ctx, rule, args[1], env)
	if !ok {
		return skipped()
	}
	return Result{Passed: cmp(a, b), Actual: ptr(a), Expected: ptr(b)}
}

// equals: EQUALS:<a>:<b>, passes when the relative variance between the two
// sides is within the rule tolerance.
func (ex *Executor) equals(ctx context.Context, rule domain.ValidationRule, args []string, env *expr.Env) Result {
	if len(args) != 2 {
		ex.warnFormula(ctx, rule, "EQUALS expects <a>:<b>")
		return skipped()
	}
	a, ok := env.Lookup(args[0])
	if !ok {
		return skipped()
	}
	b, ok := ex.eval(ctx, rule, args[1], env)
	if !ok {
		return skipped()
	}
	variance := relativeVariance(a, b)
	return Result{
		Passed:   variance <= rule.Tolerance,
		Actual:   ptr(a),
		Expected: ptr(b),
		Variance: ptr(variance),
	}
}

// requires: REQUIRES:<a>:<b> fails only when a is present and b is absent.
// It is never skipped — absence of a is itself the passing case.
func (ex *Executor) requires(ctx context.Context, rule domain.ValidationRule, args []string, env *expr.Env) Result {
	if len(args) != 2 {
		ex.warnFormula(ctx, rule, "REQUIRES expects <a>:<b>")
		return skipped()
	}
	if env.Has(args[0]) && !env.Has(args[1]) {
		return Result{Passed: false}
	}
	return Result{Passed: true}
}

// ratio: RATIO_MIN/RATIO_MAX:<expr>:<threshold>.
func (ex *Executor) ratio(ctx context.Context, rule domain.ValidationRule, args []string, env *expr.Env, cmp func(v, threshold float64) bool) Result {
	if len(args) != 2 {
		ex.warnFormula(ctx, rule, "ratio check expects <expr>:<threshold>")
		return skipped()
	}
	threshold, ok := parseNumber(args[1])
	if !ok {
		ex.warnFormula(ctx, rule, "ratio threshold is not numeric")
		return skipped()
	}
	v, ok := ex.eval(ctx, rule, args[0], env)
	if !ok {
		return skipped()
	}
	return Result{Passed: cmp(v, threshold), Actual: ptr(v), Expected: ptr(threshold)}
}

func (ex *Executor) eval(ctx context.Context, rule domain.ValidationRule, input string, env *expr.Env) (float64, bool) {
	parsed, err := expr.Parse(input)
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("rule", rule.ID).
			Str("formula", rule.Formula).
			Msg("validation expression failed to parse")
		return 0, false
	}
	return parsed.Eval(env)
}

func (ex *Executor) warnFormula(ctx context.Context, rule domain.ValidationRule, reason string) {
	zerolog.Ctx(ctx).Warn().
		Str("rule", rule.ID).
		Str("formula", rule.Formula).
		Msg("malformed validation formula, treating as passed: " + reason)
}

func relativeVariance(a, b float64) float64 {
	denominator := math.Max(math.Max(math.Abs(a), math.Abs(b)), 1)
	return math.Abs(a-b) / denominator
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func ptr(v float64) *float64 { return &v }
