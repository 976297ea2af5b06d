// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/folio/internal/workspace"
	"github.com/pdiddy/folio/pkg/types"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long: `Projects are drafted in projects/drafts and published by moving them to
projects/published. Commands that take a slug accept any unique part of it.`,
}

var projectNewCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a project draft and open it in the editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		github, _ := cmd.Flags().GetString("github")
		demo, _ := cmd.Flags().GetString("demo")
		status, _ := cmd.Flags().GetString("status")

		opts := workspace.ProjectOptions{
			GitHubURL: github,
			DemoURL:   demo,
			Status:    types.ProjectStatus(status),
		}
		if err := opts.Validate(); err != nil {
			return err
		}
		return createAndEdit(cmd, types.KindProject, args[0], opts)
	},
}

func init() {
	projectNewCmd.Flags().String("github", "", "GitHub repository URL (required)")
	projectNewCmd.Flags().String("demo", "", "live demo URL")
	projectNewCmd.Flags().String("status", string(types.ProjectActive), "project status: active, wip, archived")
	_ = projectNewCmd.MarkFlagRequired("github")

	kindCommands(projectCmd, types.KindProject, projectNewCmd)
	rootCmd.AddCommand(projectCmd)
}
