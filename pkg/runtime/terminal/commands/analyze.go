package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/kpi-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/kpi-atlas/pkg/services/analysis"
	"github.com/de-tools/kpi-atlas/pkg/services/profiles"
	"github.com/de-tools/kpi-atlas/pkg/store/rulefile"
)

type AnalyzeCmd struct {
	packPath     string
	profilesPath string
	company      string
	metricsPath  string
	reporter     *export.Reporter
}

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a diagnostic analysis for one company",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.packPath, "pack", "", "Path to the YAML config pack")
	cmd.Flags().StringVar(&ac.profilesPath, "profiles", "", "Path to the company profiles ini file")
	cmd.Flags().StringVar(&ac.company, "company", "", "Company profile name to analyze")
	cmd.Flags().StringVar(&ac.metricsPath, "metrics", "", "Path to the metrics file (kpi id -> value)")

	_ = cmd.MarkFlagRequired("pack")
	_ = cmd.MarkFlagRequired("profiles")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("metrics")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tables, err := rulefile.Load(ac.packPath)
	if err != nil {
		return fmt.Errorf("failed to load config pack: %w", err)
	}

	registry, err := profiles.NewRegistry(ac.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	profile, err := registry.GetProfile(ctx, ac.company)
	if err != nil {
		return err
	}

	metrics, err := LoadMetrics(ac.metricsPath)
	if err != nil {
		return err
	}

	svc := analysis.NewController(analysis.BuildConfig(ctx, tables))
	report := svc.Run(ctx, profile, metrics)

	return ac.reporter.Handle(report)
}
