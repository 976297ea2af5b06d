// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the site binary: it serves the
// public website and uploads the local content tree to the bucket.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folio/internal/config"
	"github.com/pdiddy/folio/internal/logging"
	"github.com/pdiddy/folio/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logs is the root logger provider, built once flags and config are read.
var logs *logging.Provider

// rootCmd is the base command for the site binary.
var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "Serve the portfolio site and sync its content",
	Long: `site renders blog posts and projects from markdown on every request.
Content is read from a local directory or from the S3 content bucket,
selected by CONTENT_SOURCE. The sync subcommand uploads a local content
tree to the bucket.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		p, err := logging.New(config.Log(viper.GetViper()))
		if err != nil {
			return err
		}
		logs = p
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./folio.yaml or ~/.config/folio/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	used, err := config.Init(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		return
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// flagOverride copies a flag shared by several subcommands into viper
// when it was set on the running command.
func flagOverride(cmd *cobra.Command, flag, key string) {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		viper.Set(key, f.Value.String())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
