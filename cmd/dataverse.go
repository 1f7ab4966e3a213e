package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/dvexamples/filter"
)

var contentsFilter string

// dataverseCmd groups the collection commands
var dataverseCmd = &cobra.Command{
	Use:   "dataverse",
	Short: "Inspect dataverse collections",
}

var dataverseViewCmd = &cobra.Command{
	Use:   "view <alias>",
	Short: "Show a dataverse collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataverseView,
}

var dataverseContentsCmd = &cobra.Command{
	Use:   "contents <alias>",
	Short: "List the datasets and collections in a dataverse",
	Long: `List the datasets and collections directly inside a dataverse.

Use --filter to narrow the list, for example:
  --filter 'isDataset && !published'
  --filter 'published && daysSince(publicationDate) < 30'`,
	Args: cobra.ExactArgs(1),
	RunE: runDataverseContents,
}

func init() {
	rootCmd.AddCommand(dataverseCmd)
	dataverseCmd.AddCommand(dataverseViewCmd)
	dataverseCmd.AddCommand(dataverseContentsCmd)

	dataverseContentsCmd.Flags().StringVarP(&contentsFilter, "filter", "f", "", "filter expression")
}

func runDataverseView(cmd *cobra.Command, args []string) error {
	dv, err := application.Client.GetDataverse(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", dv.Name, dv.Alias)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("  ID: %d\n", dv.ID)
	if dv.Affiliation != "" {
		fmt.Printf("  Affiliation: %s\n", dv.Affiliation)
	}
	if dv.DataverseType != "" {
		fmt.Printf("  Type: %s\n", dv.DataverseType)
	}
	if dv.CreationDate != "" {
		fmt.Printf("  Created: %s\n", dv.CreationDate)
	}
	if dv.Description != "" {
		fmt.Printf("  Description: %s\n", dv.Description)
	}

	return nil
}

func runDataverseContents(cmd *cobra.Command, args []string) error {
	alias := args[0]

	objects, err := application.Client.GetContents(cmd.Context(), alias)
	if err != nil {
		return err
	}

	if contentsFilter != "" {
		logger.Info().Str("filter", contentsFilter).Msg("Filtering contents")

		f, err := filter.Compile(contentsFilter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		if objects, err = f.Apply(objects); err != nil {
			return err
		}
	}

	if len(objects) == 0 {
		fmt.Println("No objects found.")
		return nil
	}

	fmt.Printf("\nFound %d objects in %s:\n", len(objects), alias)
	fmt.Println(strings.Repeat("-", 80))

	for _, obj := range objects {
		switch {
		case obj.PersistentID() != "":
			fmt.Printf("• [%s] %s", obj.Type, obj.PersistentID())
		case obj.Title != "":
			fmt.Printf("• [%s] %s", obj.Type, obj.Title)
		default:
			fmt.Printf("• [%s] id %d", obj.Type, obj.ID)
		}
		if obj.Published() {
			fmt.Printf(" (published %s)", obj.PublicationDate)
		} else if obj.Type == "dataset" {
			fmt.Printf(" [DRAFT]")
		}
		fmt.Println()
	}

	return nil
}
