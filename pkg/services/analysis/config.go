package analysis

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/de-tools/kpi-atlas/pkg/adapters"
	"github.com/de-tools/kpi-atlas/pkg/models/store"
)

// BuildConfig converts raw configuration tables into the typed snapshot the
// controller consumes. Rows that fail to parse are logged as configuration
// warnings and dropped; one bad row never aborts the load.
func BuildConfig(ctx context.Context, tables store.ConfigTables) Config {
	logger := zerolog.Ctx(ctx)
	var cfg Config

	for _, row := range tables.KPIs {
		def, err := adapters.MapStoreKPIDefToDomain(row)
		if err != nil {
			logger.Warn().Err(err).Str("kpi", row.ID).Msg("dropping malformed kpi row")
			continue
		}
		cfg.KPIs = append(cfg.KPIs, def)
	}

	for _, row := range tables.ValidationRules {
		rule, err := adapters.MapStoreValidationRuleToDomain(row)
		if err != nil {
			logger.Warn().Err(err).Str("rule", row.ID).Msg("dropping malformed validation rule row")
			continue
		}
		cfg.ValidationRules = append(cfg.ValidationRules, rule)
	}

	for _, row := range tables.Benchmarks {
		threshold, err := adapters.MapStoreBenchmarkToDomain(row)
		if err != nil {
			logger.Warn().Err(err).Str("kpi", row.KPIID).Msg("dropping malformed benchmark row")
			continue
		}
		cfg.Benchmarks = append(cfg.Benchmarks, threshold)
	}

	for _, row := range tables.InsightRules {
		rule, err := adapters.MapStoreInsightRuleToDomain(row)
		if err != nil {
			logger.Warn().Err(err).Str("rule", row.ID).Msg("dropping malformed insight rule row")
			continue
		}
		cfg.InsightRules = append(cfg.InsightRules, rule)
	}

	return cfg
}
