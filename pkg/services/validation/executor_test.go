package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
	"github.com/de-tools/kpi-atlas/pkg/services/expr"
)

func rule(formula string, tolerance float64) domain.ValidationRule {
	return domain.ValidationRule{
		ID:        "r1",
		Formula:   formula,
		Tolerance: tolerance,
		Severity:  domain.SeverityWarning,
		Message:   "numbers do not add up",
		Active:    true,
	}
}

func TestExecutor_Reconcile(t *testing.T) {
	ex := NewExecutor()
	ctx := context.Background()

	t.Run("passes within tolerance", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"a": 2, "b": 3, "c": 6})
		result := ex.Execute(ctx, rule("RECONCILE:a*b:c", 0.01), env)
		assert.True(t, result.Passed)
		assert.False(t, result.Skipped)
	})

	t.Run("fails with expected variance", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"a": 2, "b": 3, "c": 7})
		result := ex.Execute(ctx, rule("RECONCILE:a*b:c", 0.01), env)
		assert.False(t, result.Passed)
		require.NotNil(t, result.Variance)
		assert.InDelta(t, 0.1429, *result.Variance, 0.0001)
		require.NotNil(t, result.Actual)
		assert.Equal(t, 6.0, *result.Actual)
		require.NotNil(t, result.Expected)
		assert.Equal(t, 7.0, *result.Expected)
	})

	t.Run("skips when the expression cannot be evaluated", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"c": 6})
		result := ex.Execute(ctx, rule("RECONCILE:a*b:c", 0.01), env)
		assert.True(t, result.Passed)
		assert.True(t, result.Skipped)
	})

	t.Run("skips when the target is absent", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"a": 2, "b": 3})
		result := ex.Execute(ctx, rule("RECONCILE:a*b:c", 0.01), env)
		assert.True(t, result.Skipped)
	})

	t.Run("variance denominator floored at one near zero", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"a": 0.1, "b": 1, "c": 0})
		result := ex.Execute(ctx, rule("RECONCILE:a*b:c", 0.2), env)
		require.NotNil(t, result.Variance)
		assert.InDelta(t, 0.1, *result.Variance, 1e-9)
		assert.True(t, result.Passed)
	})
}

func TestExecutor_Range(t *testing.T) {
	ex := NewExecutor()
	ctx := context.Background()

	t.Run("passes inside bounds", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"x": 55})
		result := ex.Execute(ctx, rule("RANGE:x:0:100", 0), env)
		assert.True(t, result.Passed)
		assert.False(t, result.Skipped)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"x": 100})
		result := ex.Execute(ctx, rule("RANGE:x:0:100", 0), env)
		assert.True(t, result.Passed)
	})

	t.Run("fails outside bounds", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"x": 101})
		result := ex.Execute(ctx, rule("RANGE:x:0:100", 0), env)
		assert.False(t, result.Passed)
		assert.False(t, result.Skipped)
	})

	t.Run("negative lower bound", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"x": -5})
		result := ex.Execute(ctx, rule("RANGE:x:-10:10", 0), env)
		assert.True(t, result.Passed)
	})

	t.Run("skips on absent value", func(t *testing.T) {
		result := ex.Execute(ctx, rule("RANGE:x:0:100", 0), expr.NewEnv())
		assert.True(t, result.Passed)
		assert.True(t, result.Skipped)
	})
}

func TestExecutor_Comparisons(t *testing.T) {
	ex := NewExecutor()
	ctx := context.Background()
	env := expr.NewEnvFromMap(map[string]float64{"revenue": 1000, "costs": 600, "overhead": 200})

	t.Run("GREATER with expression right side", func(t *testing.T) {
		result := ex.Execute(ctx, rule("GREATER:revenue:costs+overhead", 0), env)
		assert.True(t, result.Passed)
	})

	t.Run("GT alias", func(t *testing.T) {
		result := ex.Execute(ctx, rule("GT:costs:overhead", 0), env)
		assert.True(t, result.Passed)
	})

	t.Run("GREATER fails on equality", func(t *testing.T) {
		result := ex.Execute(ctx, rule("GREATER:revenue:costs+400", 0), env)
		assert.False(t, result.Passed)
		assert.False(t, result.Skipped)
	})

	t.Run("GTE passes on equality", func(t *testing.T) {
		result := ex.Execute(ctx, rule("GTE:revenue:costs+400", 0), env)
		assert.True(t, result.Passed)
	})

	t.Run("skips when either side is unavailable", func(t *testing.T) {
		result := ex.Execute(ctx, rule("GREATER:revenue:missing*2", 0), env)
		assert.True(t, result.Skipped)

		result = ex.Execute(ctx, rule("GREATER:missing:costs", 0), env)
		assert.True(t, result.Skipped)
	})
}

func TestExecutor_Equals(t *testing.T) {
	ex := NewExecutor()
	ctx := context.Background()

	t.Run("passes within tolerance", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"a": 100, "b": 101})
		result := ex.Execute(ctx, rule("EQUALS:a:b", 0.02), env)
		assert.True(t, result.Passed)
	})

	t.Run("fails beyond tolerance", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"a": 100, "b": 110})
		result := ex.Execute(ctx, rule("EQUALS:a:b", 0.02), env)
		assert.False(t, result.Passed)
		require.NotNil(t, result.Variance)
		assert.InDelta(t, 10.0/110.0, *result.Variance, 1e-9)
	})
}

func TestExecutor_Requires(t *testing.T) {
	ex := NewExecutor()
	ctx := context.Background()

	t.Run("fails when dependency is missing", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"a": 1})
		result := ex.Execute(ctx, rule("REQUIRES:a:b", 0), env)
		assert.False(t, result.Passed)
		assert.False(t, result.Skipped)
	})

	t.Run("passes when both present", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"a": 1, "b": 2})
		result := ex.Execute(ctx, rule("REQUIRES:a:b", 0), env)
		assert.True(t, result.Passed)
	})

	t.Run("passes when the trigger value is absent", func(t *testing.T) {
		result := ex.Execute(ctx, rule("REQUIRES:a:b", 0), expr.NewEnv())
		assert.True(t, result.Passed)
		assert.False(t, result.Skipped)
	})
}

func TestExecutor_Ratios(t *testing.T) {
	ex := NewExecutor()
	ctx := context.Background()
	env := expr.NewEnvFromMap(map[string]float64{"gross_profit": 400, "revenue": 1000})

	t.Run("RATIO_MIN passes at threshold", func(t *testing.T) {
		result := ex.Execute(ctx, rule("RATIO_MIN:gross_profit/revenue:0.4", 0), env)
		assert.True(t, result.Passed)
	})

	t.Run("RATIO_MIN fails below threshold", func(t *testing.T) {
		result := ex.Execute(ctx, rule("RATIO_MIN:gross_profit/revenue:0.5", 0), env)
		assert.False(t, result.Passed)
	})

	t.Run("RATIO_MAX passes below threshold", func(t *testing.T) {
		result := ex.Execute(ctx, rule("RATIO_MAX:gross_profit/revenue:0.5", 0), env)
		assert.True(t, result.Passed)
	})

	t.Run("skips when the expression divides by zero", func(t *testing.T) {
		env := expr.NewEnvFromMap(map[string]float64{"gross_profit": 400, "revenue": 0})
		result := ex.Execute(ctx, rule("RATIO_MIN:gross_profit/revenue:0.4", 0), env)
		assert.True(t, result.Skipped)
	})
}

func TestExecutor_MalformedFormulas(t *testing.T) {
	ex := NewExecutor()
	ctx := context.Background()
	env := expr.NewEnvFromMap(map[string]float64{"x": 1})

	cases := []string{
		"BOGUS:x:1",
		"RANGE:x:zero:100",
		"RANGE:x:0",
		"RECONCILE:x",
		"RATIO_MIN:x:not_a_number",
		"just text",
	}

	for _, formula := range cases {
		t.Run(formula, func(t *testing.T) {
			result := ex.Execute(ctx, rule(formula, 0), env)
			assert.True(t, result.Passed)
			assert.True(t, result.Skipped)
		})
	}
}

func TestExecutor_Run(t *testing.T) {
	ex := NewExecutor()
	ctx := context.Background()
	env := expr.NewEnvFromMap(map[string]float64{"a": 2, "b": 3, "c": 7, "x": 500})

	rules := []domain.ValidationRule{
		{ID: "reconcile_revenue", Formula: "RECONCILE:a*b:c", Tolerance: 0.01, Severity: domain.SeverityError, Message: "revenue does not reconcile", Active: true},
		{ID: "range_ok", Formula: "RANGE:x:0:1000", Severity: domain.SeverityWarning, Message: "out of range", Active: true},
		{ID: "inactive_fail", Formula: "RANGE:x:0:1", Severity: domain.SeverityWarning, Message: "out of range", Active: false},
		{ID: "skipped_missing", Formula: "RANGE:missing:0:1", Severity: domain.SeverityWarning, Message: "out of range", Active: true},
		{ID: "bad_formula", Formula: "NONSENSE:x", Severity: domain.SeverityWarning, Message: "never emitted", Active: true},
	}

	issues := ex.Run(ctx, rules, env)

	require.Len(t, issues, 1)
	issue := issues[0]
	assert.Equal(t, "reconcile_revenue", issue.RuleID)
	assert.Equal(t, domain.SeverityError, issue.Severity)
	assert.Equal(t, "revenue does not reconcile", issue.Message)
	require.NotNil(t, issue.Variance)
	assert.InDelta(t, 0.1429, *issue.Variance, 0.0001)
}
