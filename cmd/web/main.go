package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/kpi-atlas/pkg/server"
	"github.com/de-tools/kpi-atlas/pkg/services/analysis"
	"github.com/de-tools/kpi-atlas/pkg/store/rulefile"
)

var packPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for KPI Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&packPath, "pack", "p", "config-pack.yaml",
		"Path to the YAML config pack with KPIs, rules, benchmarks and insights")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	tables, err := rulefile.Load(packPath)
	if err != nil {
		return fmt.Errorf("failed to load config pack: %w", err)
	}

	cfg := analysis.BuildConfig(ctx, tables)
	logger.Info().
		Str("pack", packPath).
		Int("kpis", len(cfg.KPIs)).
		Int("validation_rules", len(cfg.ValidationRules)).
		Int("benchmarks", len(cfg.Benchmarks)).
		Int("insight_rules", len(cfg.InsightRules)).
		Msg("configuration pack loaded")

	svc := analysis.NewController(cfg)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Analysis: svc,
		},
	})

	return api.Start()
}
