// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folio/internal/config"
	"github.com/pdiddy/folio/internal/mirror"
	"github.com/pdiddy/folio/internal/secrets"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload the local content directory to the content bucket",
	Long: `Sync walks the local content directory and uploads every file to the
bucket under its relative path. Dot-prefixed files and directories are
skipped. A ledger remembers what was uploaded, so unchanged files are
skipped on later runs unless --force is given.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	flagOverride(cmd, "dir", config.KeyContentDir)
	cfg := config.Sync(viper.GetViper())
	cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	cfg.Force, _ = cmd.Flags().GetBool("force")
	secrets.ApplyAWS(loadedSecrets, &cfg.AWSConfig)

	syncer, err := mirror.New(cfg, logs.Get("sync"))
	if err != nil {
		return err
	}
	defer syncer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := syncer.Run(ctx, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to upload", summary.Failed)
	}
	return nil
}

func init() {
	syncCmd.Flags().BoolP("dry-run", "n", false, "show what would be uploaded without uploading")
	syncCmd.Flags().Bool("force", false, "upload every file, ignoring the ledger")
	syncCmd.Flags().String("dir", "", "local content directory (env CONTENT_DIR)")
	syncCmd.Flags().String("ledger", "", "sync ledger path (default <dir>/.sync-ledger.db)")
	_ = viper.BindPFlag(config.KeyLedger, syncCmd.Flags().Lookup("ledger"))

	rootCmd.AddCommand(syncCmd)
}
