package configdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/kpi-atlas/pkg/models/store"
)

// Store reads the diagnostic configuration tables from a relational source.
// It is read-only: the engine never writes configuration. The *sql.DB is
// opened and owned by the caller, so the store stays driver-agnostic.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const kpiDefsQuery = `
	SELECT id, name, format
	FROM kpi_defs
	ORDER BY id`

const validationRulesQuery = `
	SELECT id, name, type, formula, tolerance, severity, message, affected_kpis, active
	FROM validation_rules
	ORDER BY position`

const benchmarksQuery = `
	SELECT kpi_id, industry, region, poor, average, good, excellent, direction, period
	FROM benchmark_thresholds
	ORDER BY position`

const insightRulesQuery = `
	SELECT id, kind, kpi_ids, trigger, title, status, summary_template, detail_template,
		recommendations, section_id, priority
	FROM insight_rules
	ORDER BY position`

// GetConfigTables loads one full snapshot of all four tables. Row order is
// preserved: benchmark tie-breaking and insight stability depend on the
// declared position.
func (s *Store) GetConfigTables(ctx context.Context) (store.ConfigTables, error) {
	var tables store.ConfigTables
	var err error

	if tables.KPIs, err = s.getKPIDefs(ctx); err != nil {
		return store.ConfigTables{}, err
	}
	if tables.ValidationRules, err = s.getValidationRules(ctx); err != nil {
		return store.ConfigTables{}, err
	}
	if tables.Benchmarks, err = s.getBenchmarks(ctx); err != nil {
		return store.ConfigTables{}, err
	}
	if tables.InsightRules, err = s.getInsightRules(ctx); err != nil {
		return store.ConfigTables{}, err
	}
	return tables, nil
}

func (s *Store) getKPIDefs(ctx context.Context) ([]store.KPIDefRow, error) {
	rows, err := s.db.QueryContext(ctx, kpiDefsQuery)
	if err != nil {
		return nil, fmt.Errorf("kpi_defs query failed: %w", err)
	}
	defer s.closeRows(ctx, rows, "kpi_defs")

	var out []store.KPIDefRow
	for rows.Next() {
		var row store.KPIDefRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Format); err != nil {
			return nil, fmt.Errorf("kpi_defs scan failed: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) getValidationRules(ctx context.Context) ([]store.ValidationRuleRow, error) {
	rows, err := s.db.QueryContext(ctx, validationRulesQuery)
	if err != nil {
		return nil, fmt.Errorf("validation_rules query failed: %w", err)
	}
	defer s.closeRows(ctx, rows, "validation_rules")

	var out []store.ValidationRuleRow
	for rows.Next() {
		var row store.ValidationRuleRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Type, &row.Formula, &row.Tolerance,
			&row.Severity, &row.Message, &row.AffectedKPIs, &row.Active,
		); err != nil {
			return nil, fmt.Errorf("validation_rules scan failed: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) getBenchmarks(ctx context.Context) ([]store.BenchmarkRow, error) {
	rows, err := s.db.QueryContext(ctx, benchmarksQuery)
	if err != nil {
		return nil, fmt.Errorf("benchmark_thresholds query failed: %w", err)
	}
	defer s.closeRows(ctx, rows, "benchmark_thresholds")

	var out []store.BenchmarkRow
	for rows.Next() {
		var row store.BenchmarkRow
		if err := rows.Scan(
			&row.KPIID, &row.Industry, &row.Region, &row.Poor, &row.Average,
			&row.Good, &row.Excellent, &row.Direction, &row.Period,
		); err != nil {
			return nil, fmt.Errorf("benchmark_thresholds scan failed: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) getInsightRules(ctx context.Context) ([]store.InsightRuleRow, error) {
	rows, err := s.db.QueryContext(ctx, insightRulesQuery)
	if err != nil {
		return nil, fmt.Errorf("insight_rules query failed: %w", err)
	}
	defer s.closeRows(ctx, rows, "insight_rules")

	var out []store.InsightRuleRow
	for rows.Next() {
		var row store.InsightRuleRow
		if err := rows.Scan(
			&row.ID, &row.Kind, &row.KPIIDs, &row.Trigger, &row.Title, &row.Status,
			&row.SummaryTemplate, &row.DetailTemplate, &row.Recommendations,
			&row.SectionID, &row.Priority,
		); err != nil {
			return nil, fmt.Errorf("insight_rules scan failed: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) closeRows(ctx context.Context, rows *sql.Rows, table string) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("table", table).Msg("failed to close config query rows")
	}
}
