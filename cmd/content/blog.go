// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/folio/internal/workspace"
	"github.com/pdiddy/folio/pkg/types"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Manage blog posts",
	Long: `Blog posts are drafted in blog/drafts and published by moving them to
blog/posts. Commands that take a slug accept any unique part of it.`,
}

var blogNewCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a blog draft and open it in the editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return createAndEdit(cmd, types.KindBlog, args[0], workspace.ProjectOptions{})
	},
}

func init() {
	kindCommands(blogCmd, types.KindBlog, blogNewCmd)
	rootCmd.AddCommand(blogCmd)
}
