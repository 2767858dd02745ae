// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lapsed-patents CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/lapsed-patents/internal/config"
	"github.com/pdiddy/lapsed-patents/internal/logging"
	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and logger are populated before any subcommand runs.
var (
	cfg    types.Config
	logger = logging.Nop()
)

// rootCmd is the base command for the lapsed-patents CLI.
var rootCmd = &cobra.Command{
	Use:   "lapsed-patents",
	Short: "Search inactive U.S. patents by title",
	Long: `lapsed-patents searches an index of U.S. patents that are no longer in
force (expired, lapsed for unpaid maintenance fees, or otherwise inactive) by
title keywords, grant-year range, and sort order.

Use search for one-shot queries, browse for an interactive session, and link
to turn raw patent numbers into lookup URLs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("config loaded",
			zap.String("backend", cfg.Backend.BaseURL),
			zap.String("links", string(cfg.Links.Mode)))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./lapsed-patents.yaml or ~/.config/lapsed-patents/config.yaml)")
	flags.String("env-file", ".env", "file of KEY=VALUE environment overrides, ignored when missing")
	flags.String("backend", "", "search backend base URL (overrides backend.base_url)")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("backend.base_url", flags.Lookup("backend"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
}

func initConfig() {
	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		warnf(os.Stderr, "%v", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lapsed-patents")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lapsed-patents"))
		}
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		warnf(os.Stderr, "reading config file: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
