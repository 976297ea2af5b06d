// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/folio/internal/workspace"
	"github.com/pdiddy/folio/pkg/types"
)

// kindCommands builds the list, edit, publish, and unpublish subcommands
// shared by blog and project. newCmd is the kind-specific "new".
func kindCommands(parent *cobra.Command, kind types.Kind, newCmd *cobra.Command) {
	noun := "post"
	if kind == types.KindProject {
		noun = "project"
	}

	newCmd.PreRunE = requireMount
	newCmd.Flags().Bool("no-edit", false, "create the draft without opening the editor")

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   fmt.Sprintf("List published %ss, or drafts with --drafts", noun),
		Args:    cobra.NoArgs,
		PreRunE: requireMount,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, _ := cmd.Flags().GetBool("drafts")
			return listItems(kind, stateFlag(drafts))
		},
	}
	listCmd.Flags().Bool("drafts", false, "list drafts instead of published items")

	editCmd := &cobra.Command{
		Use:     "edit <slug>",
		Short:   fmt.Sprintf("Open a %s in the editor (partial slugs match)", noun),
		Args:    cobra.ExactArgs(1),
		PreRunE: requireMount,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, _ := cmd.Flags().GetBool("draft")
			ws := openWorkspace()
			path, err := ws.Locate(kind, stateFlag(drafts), args[0])
			if err != nil {
				return err
			}
			logs.Get("content").Debug("opening", "path", path)
			return editor().Open(path)
		},
	}
	editCmd.Flags().Bool("draft", false, "edit a draft instead of a published item")

	publishCmd := &cobra.Command{
		Use:     "publish <slug>",
		Short:   fmt.Sprintf("Move a %s draft to published", noun),
		Args:    cobra.ExactArgs(1),
		PreRunE: requireMount,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := openWorkspace()
			path, err := ws.Publish(kind, args[0])
			if err != nil {
				return err
			}
			success.Printf("Published: %s\n", path)
			return nil
		},
	}

	unpublishCmd := &cobra.Command{
		Use:     "unpublish <slug>",
		Short:   fmt.Sprintf("Move a published %s back to drafts", noun),
		Args:    cobra.ExactArgs(1),
		PreRunE: requireMount,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := openWorkspace()
			path, err := ws.Unpublish(kind, args[0])
			if err != nil {
				return err
			}
			success.Printf("Unpublished: %s\n", path)
			return nil
		},
	}

	parent.AddCommand(newCmd, listCmd, editCmd, publishCmd, unpublishCmd)
}

func stateFlag(drafts bool) types.State {
	if drafts {
		return types.StateDraft
	}
	return types.StatePublished
}

func listItems(kind types.Kind, state types.State) error {
	ws := openWorkspace()
	entries, err := ws.List(kind, state)
	if err != nil {
		return err
	}

	label := kind.Label()
	if state == types.StateDraft {
		label = "Drafts"
	}
	if len(entries) == 0 {
		fmt.Printf("No %s found\n", strings.ToLower(label))
		return nil
	}

	heading.Printf("%s:\n", label)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Slug", "Title", "Date", "Tags"})
	table.SetAutoWrapText(false)
	for _, e := range entries {
		table.Append([]string{e.Slug, e.Title, e.Date, strings.Join(e.Tags, ", ")})
	}
	table.Render()
	return nil
}

// createAndEdit writes a draft and opens it unless --no-edit was given.
func createAndEdit(cmd *cobra.Command, kind types.Kind, title string, opts workspace.ProjectOptions) error {
	ws := openWorkspace()
	path, err := ws.NewDraft(kind, title, opts)
	if err != nil {
		return err
	}
	success.Printf("Created: %s\n", path)

	if noEdit, _ := cmd.Flags().GetBool("no-edit"); noEdit {
		return nil
	}
	dim.Println("Opening editor...")
	return editor().Open(path)
}
