package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dslabs/dssearch/pkg/cache"
	"dslabs/dssearch/pkg/cli"
	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/orchestrator"
	"dslabs/dssearch/pkg/telemetry/logging"
	"dslabs/dssearch/pkg/telemetry/metrics"
	"dslabs/dssearch/pkg/trust"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dssearch",
	Short: "DS-Search - trusted search for Indian government jobs and schemes",
	Long: `DS-Search answers Hindi/English questions about Indian government
jobs, schemes, exam results, and admit cards.

It retrieves from a registry of trusted official and aggregator domains,
with a policy gate that decides when a question is worth an external
search, a three-tier result cache, trust-weighted ranking, and structured
fact extraction (dates, fees, age limits, vacancies).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the configured file, falling back to built-in defaults
// when the default path does not exist. An explicitly passed path must
// exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
			return config.DefaultConfig(), nil
		}
		return nil, cli.NewConfigError("", fmt.Sprintf("cannot read config file %q: %v", cfgFile, err))
	}
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}
	return cfg, nil
}

// app bundles the wired pipeline for one command invocation.
type app struct {
	cfg     *config.Config
	svc     *orchestrator.Service
	cache   *cache.Cache
	metrics *metrics.Collector
	log     *logging.Logger
}

// newApp loads configuration and wires the full pipeline. Logs go to
// stderr so stdout stays clean for command output.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newAppFromConfig(cfg)
}

func newAppFromConfig(cfg *config.Config) (*app, error) {
	logCfg := logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stderr,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	regOpts := []trust.Option{trust.WithLogger(logger.Component("trust.registry"))}
	if cfg.Trust.StorePath != "" {
		store, err := trust.NewSQLiteStore(cfg.Trust.StorePath)
		if err != nil {
			return nil, cli.NewConfigError("trust.store_path", err.Error())
		}
		regOpts = append(regOpts, trust.WithStore(store))
	}
	registry := trust.NewRegistry(regOpts...)
	if cfg.Trust.SeedFile != "" {
		if err := registry.LoadSeedFile(cfg.Trust.SeedFile); err != nil {
			return nil, cli.NewConfigError("trust.seed_file", err.Error())
		}
	}

	resultCache := cache.New(&cfg.Cache,
		cache.WithLogger(logger.Component("cache")),
		cache.WithMetrics(collector))

	svc := orchestrator.New(cfg, orchestrator.Deps{
		Cache:    resultCache,
		Registry: registry,
		Metrics:  collector,
		Logger:   logger.Slog(),
	})

	return &app{
		cfg:     cfg,
		svc:     svc,
		cache:   resultCache,
		metrics: collector,
		log:     logger,
	}, nil
}

func (a *app) close() {
	if err := a.svc.Close(); err != nil {
		a.log.Warn("shutdown", "error", err)
	}
}
