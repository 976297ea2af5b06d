// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:     "tags",
	Short:   "List every tag used by posts and projects, drafts included",
	PreRunE: requireMount,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := openWorkspace()
		tags, err := ws.Tags()
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			fmt.Println("No tags found")
			return nil
		}
		heading.Println("Tags:")
		for _, t := range tags {
			fmt.Printf("  %s\n", t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
