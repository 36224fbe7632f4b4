// Package main provides the CLI entrypoint for the local-units reports.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ifrc-go/localunits-report/internal/config"
	"github.com/ifrc-go/localunits-report/pkg/goapi"
	"github.com/ifrc-go/localunits-report/pkg/logging"
	"github.com/ifrc-go/localunits-report/pkg/pagination"
	"github.com/ifrc-go/localunits-report/pkg/pipeline"
)

var (
	configPath string
	outputPath string
	logLevel   string
	pretty     bool
	redisAddr  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "localunits",
		Short: "IFRC GO local-unit reports",
		Long: "Fetches local units from the IFRC GO API and writes spreadsheet reports\n" +
			"comparing the production and staging deployments.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "output file (default depends on the report)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "human-readable console logs")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "redis address enabling the page cache (e.g. localhost:6379)")

	rootCmd.AddCommand(newSummaryCmd(), newTreemapCmd())

	return rootCmd
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Type counts per environment, sized for waffle charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), pipeline.RunSummary)
		},
	}
}

func newTreemapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "treemap",
		Short: "Type counts broken down by region, one sheet per environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), pipeline.RunTreemap)
		},
	}
}

// runReport wires config, logging, and the API client, then hands off to the
// report pipeline.
func runReport(ctx context.Context, run func(context.Context, pagination.Client, pipeline.Options) error) error {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(logLevel),
		Pretty: pretty,
		Output: os.Stderr,
	})

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if redisAddr != "" {
		cfg.Cache.RedisAddr = redisAddr
	}

	token := config.Token()
	if token == "" {
		log.Warn().
			Str("var", config.TokenEnvVar).
			Msg("No API token set; requests may be rejected")
	}

	clientCfg := goapi.DefaultConfig(token)
	clientCfg.Timeout = cfg.Timeout()

	if cfg.Cache.RedisAddr != "" {
		pageCache, cacheErr := goapi.NewPageCache(ctx, cfg.Cache.RedisAddr, cfg.CacheTTL())
		if cacheErr != nil {
			log.Warn().Err(cacheErr).Msg("Page cache unavailable, continuing without it")
		} else {
			log.Info().
				Str("redis", cfg.Cache.RedisAddr).
				Dur("ttl", cfg.CacheTTL()).
				Msg("Page cache enabled")
			clientCfg.Cache = pageCache
		}
	}

	client := goapi.New(clientCfg)

	return run(ctx, client, pipeline.Options{
		Environments: cfg.Environments,
		Limit:        cfg.Limit,
		OutputPath:   outputPath,
	})
}
