// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/folio/pkg/types"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage images",
}

var imageAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Copy an image into the bucket and print its URL",
	Long: `Add copies a local image into images/blog or images/projects on the
mount and prints its public URL along with a markdown snippet to paste
into a post. --as renames the file, keeping its extension.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireMount,
	RunE: func(cmd *cobra.Command, args []string) error {
		forKind, _ := cmd.Flags().GetString("for")
		name, _ := cmd.Flags().GetString("as")

		kind, err := types.ParseKind(forKind)
		if err != nil {
			return err
		}
		ws := openWorkspace()
		img, err := ws.AddImage(args[0], kind, name)
		if err != nil {
			return err
		}

		success.Printf("Uploaded: %s\n", img.Path)
		fmt.Printf("URL:      %s\n", link.Sprint(img.URL))
		fmt.Printf("Markdown: %s\n", img.Markdown())
		return nil
	},
}

var imageListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List uploaded images with their URLs",
	Args:    cobra.NoArgs,
	PreRunE: requireMount,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kinds []types.Kind
		if b, _ := cmd.Flags().GetBool("blog"); b {
			kinds = append(kinds, types.KindBlog)
		}
		if p, _ := cmd.Flags().GetBool("projects"); p {
			kinds = append(kinds, types.KindProject)
		}

		ws := openWorkspace()
		images, err := ws.Images(kinds...)
		if err != nil {
			return err
		}
		if len(images) == 0 {
			fmt.Println("No images found")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Kind", "Name", "URL"})
		table.SetAutoWrapText(false)
		for _, img := range images {
			table.Append([]string{string(img.Kind), img.Name, img.URL})
		}
		table.Render()
		return nil
	},
}

func init() {
	imageAddCmd.Flags().String("for", "", "content kind the image belongs to: blog or projects (required)")
	imageAddCmd.Flags().String("as", "", "file name to store the image under, without extension")
	_ = imageAddCmd.MarkFlagRequired("for")

	imageListCmd.Flags().Bool("blog", false, "show blog images only")
	imageListCmd.Flags().Bool("projects", false, "show project images only")

	imageCmd.AddCommand(imageAddCmd, imageListCmd)
	rootCmd.AddCommand(imageCmd)
}
