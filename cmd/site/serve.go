// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folio/internal/config"
	"github.com/pdiddy/folio/internal/content"
	"github.com/pdiddy/folio/internal/secrets"
	"github.com/pdiddy/folio/internal/site"
	"github.com/pdiddy/folio/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Serve renders the home page, blog, projects, and about page. Every
request re-reads the published content, so edits on the bucket show up
without a restart. Drafts are never served.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	flagOverride(cmd, "dir", config.KeyContentDir)
	storeCfg := config.Store(v)
	if secrets.ApplyAWS(loadedSecrets, &storeCfg.AWSConfig) {
		logs.Get("config").Debug("using AWS credentials from .secrets/")
	}

	st, err := store.New(storeCfg)
	if err != nil {
		return err
	}
	log := logs.Get("site")
	log.Info("content source", "source", storeCfg.Source, "dir", storeCfg.ContentDir, "bucket", storeCfg.Bucket)

	srv, err := site.New(content.NewLoader(st, logs.Get("content")), config.Server(v), log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000, env SITE_ADDR)")
	serveCmd.Flags().String("source", "", "content source: local or s3 (env CONTENT_SOURCE)")
	serveCmd.Flags().String("dir", "", "local content directory (env CONTENT_DIR)")
	serveCmd.Flags().String("static-dir", "", "directory served under /static/ (env SITE_STATIC_DIR)")
	_ = viper.BindPFlag(config.KeyAddr, serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag(config.KeySource, serveCmd.Flags().Lookup("source"))
	_ = viper.BindPFlag(config.KeyStaticDir, serveCmd.Flags().Lookup("static-dir"))

	rootCmd.AddCommand(serveCmd)
}
