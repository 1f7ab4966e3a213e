package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/dvexamples/dataverse"
)

var (
	datasetVersion string
	publishMinor   bool
	publishNoWait  bool
)

// datasetCmd groups the dataset commands
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Create, view, edit and publish datasets",
}

var datasetViewCmd = &cobra.Command{
	Use:   "view <pid>...",
	Short: "Show one or more datasets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDatasetView,
}

var datasetCreateCmd = &cobra.Command{
	Use:   "create <alias> <dataset.json>",
	Short: "Create a dataset from a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE:  runDatasetCreate,
}

var datasetSetTitleCmd = &cobra.Command{
	Use:   "set-title <pid> <title>",
	Short: "Replace the title of the draft version",
	Args:  cobra.ExactArgs(2),
	RunE:  runDatasetSetTitle,
}

var datasetPublishCmd = &cobra.Command{
	Use:   "publish <pid>",
	Short: "Publish the draft version",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetPublish,
}

var datasetLocksCmd = &cobra.Command{
	Use:   "locks <pid>",
	Short: "List the locks on a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetLocks,
}

var datasetAwaitUnlockCmd = &cobra.Command{
	Use:   "await-unlock <pid>",
	Short: "Wait until a dataset has no locks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetAwaitUnlock,
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetViewCmd, datasetCreateCmd, datasetSetTitleCmd,
		datasetPublishCmd, datasetLocksCmd, datasetAwaitUnlockCmd)

	datasetViewCmd.Flags().StringVar(&datasetVersion, "version", "", "dataset version, e.g. 1.0, :draft (default :latest)")
	datasetPublishCmd.Flags().BoolVar(&publishMinor, "minor", false, "publish as a minor version")
	datasetPublishCmd.Flags().BoolVar(&publishNoWait, "no-wait", false, "return without waiting for publication to finish")
}

func printDatasetVersion(v *dataverse.DatasetVersion) {
	fmt.Printf("• %s\n", v.DatasetPersistentID)
	if title := v.Title(); title != "" {
		fmt.Printf("  Title: %s\n", title)
	}
	fmt.Printf("  Version: %s (%s)\n", v.Version(), v.VersionState)
	if v.LastUpdateTime != "" {
		fmt.Printf("  Updated: %s\n", v.LastUpdateTime)
	}
	if v.ReleaseTime != "" {
		fmt.Printf("  Released: %s\n", v.ReleaseTime)
	}
}

func runDatasetView(cmd *cobra.Command, args []string) error {
	result := application.Client.GetDatasets(cmd.Context(), args, datasetVersion)

	for _, pid := range args {
		if v, ok := result.Versions[pid]; ok {
			printDatasetVersion(v)
		}
	}

	if len(result.Failed) > 0 {
		failed := make([]string, 0, len(result.Failed))
		for pid := range result.Failed {
			failed = append(failed, pid)
		}
		sort.Strings(failed)

		fmt.Printf("\n%d of %d datasets could not be retrieved:\n", len(failed), len(args))
		for _, pid := range failed {
			fmt.Printf("  ✗ %s: %v\n", pid, result.Failed[pid])
		}
		return fmt.Errorf("failed to retrieve %d datasets", len(failed))
	}

	return nil
}

func runDatasetCreate(cmd *cobra.Command, args []string) error {
	alias, path := args[0], args[1]

	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	id, err := application.Client.CreateDataset(cmd.Context(), alias, payload)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created dataset %s (id %d)\n", id.PersistentID, id.ID)
	return nil
}

func runDatasetSetTitle(cmd *cobra.Command, args []string) error {
	pid, title := args[0], strings.TrimSpace(args[1])
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	v, err := application.Client.EditMetadata(cmd.Context(), pid, []dataverse.FieldUpdate{
		{TypeName: "title", Value: title},
	}, true)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Title updated\n")
	printDatasetVersion(v)
	return nil
}

func runDatasetPublish(cmd *cobra.Command, args []string) error {
	pid := args[0]
	client := application.Client

	if err := client.PublishDataset(cmd.Context(), pid, !publishMinor); err != nil {
		return err
	}

	if publishNoWait {
		fmt.Printf("Publication of %s requested\n", pid)
		return nil
	}

	logger.Info().Str("pid", pid).Msg("Waiting for publication to finish")
	if err := client.AwaitUnlock(cmd.Context(), pid); err != nil {
		return fmt.Errorf("publication did not finish: %w", err)
	}

	fmt.Printf("✓ Published %s\n", pid)
	return nil
}

func runDatasetLocks(cmd *cobra.Command, args []string) error {
	locks, err := application.Client.GetLocks(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(locks) == 0 {
		fmt.Println("No locks.")
		return nil
	}

	for _, l := range locks {
		fmt.Printf("• %s", l.LockType)
		if l.User != "" {
			fmt.Printf(" by %s", l.User)
		}
		if l.Date != "" {
			fmt.Printf(" since %s", l.Date)
		}
		fmt.Println()
		if l.Message != "" {
			fmt.Printf("  %s\n", l.Message)
		}
	}

	return nil
}

func runDatasetAwaitUnlock(cmd *cobra.Command, args []string) error {
	if err := application.Client.AwaitUnlock(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Println("✓ Dataset is unlocked")
	return nil
}
