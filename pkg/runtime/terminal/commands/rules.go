package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/kpi-atlas/pkg/services/analysis"
	"github.com/de-tools/kpi-atlas/pkg/store/rulefile"
)

type RulesCmd struct {
	packPath string
}

// NewRulesCmd lists the configured validation rules so operators can review
// what a pack will check before running it against client data.
func NewRulesCmd() *cobra.Command {
	rc := &RulesCmd{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the validation rules in a config pack",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.packPath, "pack", "", "Path to the YAML config pack")
	_ = cmd.MarkFlagRequired("pack")

	return cmd
}

func (rc *RulesCmd) run(cmd *cobra.Command, _ []string) error {
	tables, err := rulefile.Load(rc.packPath)
	if err != nil {
		return fmt.Errorf("failed to load config pack: %w", err)
	}

	cfg := analysis.BuildConfig(cmd.Context(), tables)
	for _, rule := range cfg.ValidationRules {
		state := "active"
		if !rule.Active {
			state = "inactive"
		}
		cmd.Printf("%-30s %-10s %-8s %s\n", rule.ID, string(rule.Severity), state, rule.Formula)
	}
	cmd.Printf("\n%d validation rules, %d benchmark rows, %d insight rules\n",
		len(cfg.ValidationRules), len(cfg.Benchmarks), len(cfg.InsightRules))
	return nil
}
