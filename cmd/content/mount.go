// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/folio/pkg/types"
)

var mountCmd = &cobra.Command{
	Use:   "mount",
	Short: "Mount the content bucket with s3fs",
	Long: `Mount exposes the content bucket as a local directory (CONTENT_MOUNT,
default ~/content) using s3fs and the credentials in ~/.passwd-s3fs.
When that file is missing it is written from .secrets/aws-access-key-id
and .secrets/aws-secret-access-key. Mounting an already mounted bucket
does nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := credentialedMounter()
		if err != nil {
			return err
		}
		mounted, err := m.Mount()
		if err != nil {
			return err
		}
		if !mounted {
			fmt.Printf("Already mounted at %s\n", m.Point())
			return nil
		}
		success.Printf("Mounted at %s\n", m.Point())
		return nil
	},
}

var unmountCmd = &cobra.Command{
	Use:   "unmount",
	Short: "Unmount the content bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := mounter()
		unmounted, err := m.Unmount()
		if err != nil {
			return err
		}
		if !unmounted {
			fmt.Println("Not mounted")
			return nil
		}
		success.Printf("Unmounted %s\n", m.Point())
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show mount status and content counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := mounter()
		if !m.IsMounted() {
			fmt.Println("Not mounted")
			return nil
		}
		success.Printf("Mounted at %s\n", m.Point())

		ws := openWorkspace()
		counts, err := ws.Counts()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Kind", "Published", "Drafts"})
		for _, kind := range types.Kinds {
			table.Append([]string{
				kind.Label(),
				strconv.Itoa(counts[kind][types.StatePublished]),
				strconv.Itoa(counts[kind][types.StateDraft]),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mountCmd, unmountCmd, statusCmd)
}
