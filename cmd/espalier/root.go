package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/config"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Shared state built by the root command before any subcommand runs.
var (
	cfg      config.Config
	logger   *slog.Logger
	app      *espalier.Espalier
	gatherer *prometheus.Registry
	closers  []func() error
)

var rootCmd = &cobra.Command{
	Use:           "espalier",
	Short:         "espalier exports finite-state machine bundles",
	Long:          `espalier reads machine bundles (<Name>.machine) through language bindings, exports their graph and boilerplate, and manages arrangements of cooperating machines.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		_ = teardown()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the machine bundles")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
	rootCmd.PersistentFlags().String("metrics-out", "", "Write Prometheus metrics to this textfile on exit")
}

// setup resolves configuration: defaults, config file, environment, then flags.
func setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("metrics-out") {
		cfg.MetricsOut, _ = flags.GetString("metrics-out")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = logging.New(level, format, cmd.ErrOrStderr())

	gatherer = prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(gatherer)
	if err != nil {
		return err
	}

	opts := []espalier.Option{
		espalier.WithLogger(logger),
		espalier.WithMetrics(metrics),
		espalier.WithCacheTTL(cfg.CacheTTL),
		espalier.WithWorkers(cfg.Workers),
		espalier.WithStoreMiddleware(middleware.NewLoggingMiddleware(logger)),
	}
	if cfg.ReadOnly {
		opts = append(opts, espalier.WithStoreMiddleware(middleware.NewReadOnlyMiddleware()))
	}
	closers = nil
	if cfg.RedisAddr != "" {
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		closers = append(closers, store.Close)
		opts = append(opts, espalier.WithStore(store))
		logger.Debug("using redis arrangement store", "addr", cfg.RedisAddr)
	}

	dir, _ := flags.GetString("dir")
	app, err = espalier.New(dir, opts...)
	return err
}

// teardown flushes metrics and releases stores. It is safe to call twice.
func teardown() error {
	var first error
	if cfg.MetricsOut != "" && gatherer != nil {
		if err := observability.WriteTextfile(cfg.MetricsOut, gatherer); err != nil {
			first = fmt.Errorf("failed to write metrics: %w", err)
		}
		gatherer = nil
	}
	for _, c := range closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	closers = nil
	return first
}

// formatFlag returns --format when given, the configured default otherwise.
func formatFlag(cmd *cobra.Command) string {
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		return f
	}
	return cfg.Format
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format (see 'espalier formats'); defaults to the configured format")
}
