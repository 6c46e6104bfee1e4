package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect the page content tables",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a content file, or the built-in content when no path is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runContentValidate,
}

func init() {
	contentCmd.AddCommand(contentValidateCmd)
	rootCmd.AddCommand(contentCmd)
}

func runContentValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	t, err := loadContent(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Content OK: %s\n", t.Profile.Name)
	fmt.Fprintf(out, "  %d education records, %d skill categories, %d projects, %d contact channels\n",
		len(t.About.Education), len(t.Skills.Categories), len(t.Projects), len(t.Contact.Channels))
	for _, p := range t.Projects {
		fmt.Fprintf(out, "  project %s: %s\n", p.Slug, p.Title)
	}
	return nil
}
