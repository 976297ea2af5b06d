// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the content CLI, which manages blog
// posts, projects, and images on the s3fs mount of the content bucket.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folio/internal/config"
	"github.com/pdiddy/folio/internal/host"
	"github.com/pdiddy/folio/internal/logging"
	"github.com/pdiddy/folio/internal/secrets"
	"github.com/pdiddy/folio/internal/workspace"
)

// version is set at build time via ldflags.
var version = "dev"

// logs is the root logger provider, built once flags and config are read.
var logs *logging.Provider

var (
	heading = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	link    = color.New(color.FgBlue, color.Underline)
	dim     = color.New(color.Faint)
)

// rootCmd is the base command for the content CLI.
var rootCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage blog posts and projects in the content bucket",
	Long: `content works on the content bucket through an s3fs mount. Mount it
once with "content mount", then create drafts, edit them, and publish
them; the site picks up published files on the next request.

Layout on the bucket:
  blog/posts, blog/drafts
  projects/published, projects/drafts
  images/blog, images/projects`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			viper.Set(config.KeyLogLevel, "debug")
		}
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
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
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

func mounter() *host.Mounter {
	return host.NewMounter(config.Authoring(viper.GetViper()).Mount)
}

// credentialedMounter is the mounter for `mount`, with any .secrets/ key
// pair applied so a missing s3fs passwd file can be written from it.
func credentialedMounter() (*host.Mounter, error) {
	cfg := config.Authoring(viper.GetViper()).Mount
	s, err := secrets.Load(".secrets/")
	if err != nil {
		return nil, err
	}
	secrets.ApplyAWS(s, &cfg.AWSConfig)
	return host.NewMounter(cfg), nil
}

// requireMount is the PreRunE of every command that touches the mount.
// It fails before anything is read or written.
func requireMount(cmd *cobra.Command, args []string) error {
	m := mounter()
	if err := m.Require(); err != nil {
		logs.Get("mount").Debug("mount check failed", "point", m.Point())
		return err
	}
	return nil
}

// openWorkspace returns the workspace on the mount.
func openWorkspace() *workspace.Workspace {
	cfg := config.Authoring(viper.GetViper())
	return workspace.New(cfg.Mount.Point, cfg.Mount.AWSConfig, cfg.Author)
}

func editor() *host.Editor {
	return host.NewEditor(viper.GetString(config.KeyEditor))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
