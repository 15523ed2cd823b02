// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ideation-engine CLI.
// Implements: prd001-session-engine, prd003-technique-catalog,
//             prd004-session-archive, prd005-bias-audit,
//             prd006-idea-variations (CLI surface).
// See docs/ARCHITECTURE § CLI Surface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ideation-engine/internal/session"
	"github.com/pdiddy/ideation-engine/internal/wordbank"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built by the root PersistentPreRunE and shared by every
// subcommand. Nop until then.
var logger = zap.NewNop()

// rootCmd is the base command for the ideation-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "ideation-engine",
	Short: "Facilitation engine for structured creativity sessions",
	Long: `ideation-engine facilitates structured creativity sessions: random word
association, reverse brainstorming, and lotus blossom. Each technique walks a
fixed six-step sequence; the engine guides every step, scores submitted ideas,
and summarizes the session on completion.

Run a live session with 'run' (or script one via --steps-file), generate
one-shot idea variations with 'quick', and audit contributions for cognitive
bias with 'bias'. Completed sessions land in a SQLite archive when an archive
path is configured; 'history' and 'export' read it back.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = loadConfig().LogLevel
		}
		lg, err := buildLogger(level)
		if err != nil {
			return err
		}
		logger = lg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ideation-engine.yaml in . or ~/.config/ideation-engine)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("word-bank", "", "YAML word bank file (default: built-in pool)")
	rootCmd.PersistentFlags().String("archive", "", "SQLite archive path (empty disables archiving)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ideation-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ideation-engine"))
		}
	}

	viper.SetEnvPrefix("IDEATION_ENGINE")
	viper.AutomaticEnv()

	defaults := types.DefaultConfig()
	viper.SetDefault("engine.cluster_threshold", defaults.Engine.ClusterThreshold)
	viper.SetDefault("export.dir", defaults.Export.Dir)
	viper.SetDefault("export.format", defaults.Export.Format)
	viper.SetDefault("log_level", defaults.LogLevel)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the resolved viper state (file, environment,
// defaults) into the typed config.
func loadConfig() types.Config {
	return types.Config{
		Engine: types.EngineConfig{
			ClusterThreshold: viper.GetFloat64("engine.cluster_threshold"),
			Seed:             viper.GetInt64("engine.seed"),
			Participants:     viper.GetStringSlice("engine.participants"),
		},
		WordBank: types.WordBankConfig{Path: viper.GetString("word_bank.path")},
		Archive:  types.ArchiveConfig{Path: viper.GetString("archive.path")},
		Export: types.ExportConfig{
			Dir:    viper.GetString("export.dir"),
			Format: viper.GetString("export.format"),
		},
		LogLevel: viper.GetString("log_level"),
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = parsed
	}
	return cfg.Build()
}

// newEngine builds the session orchestrator from resolved config plus
// the persistent word-bank flag.
func newEngine(cmd *cobra.Command) (*session.Orchestrator, types.Config, error) {
	cfg := loadConfig()

	bankPath, _ := cmd.Flags().GetString("word-bank")
	if bankPath == "" {
		bankPath = cfg.WordBank.Path
	}
	bank, err := wordbank.Resolve(bankPath)
	if err != nil {
		return nil, cfg, err
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithClusterThreshold(cfg.Engine.ClusterThreshold),
	}
	if cfg.Engine.Seed != 0 {
		opts = append(opts, session.WithSeed(cfg.Engine.Seed))
	}
	return session.NewOrchestrator(bank, opts...), cfg, nil
}

// archivePath resolves the archive location, flag over config. Empty
// means archiving is off.
func archivePath(cmd *cobra.Command, cfg types.Config) string {
	if path, _ := cmd.Flags().GetString("archive"); path != "" {
		return path
	}
	return cfg.Archive.Path
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
