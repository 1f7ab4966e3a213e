package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/s0up4200/dvexamples/dataverse"
)

// adminCmd groups commands that need the unblock key
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin API examples (requires unblockKey)",
}

var adminSettingCmd = &cobra.Command{
	Use:   "setting [name]",
	Short: "Show one or all database settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdminSetting,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminSettingCmd)
}

func runAdminSetting(cmd *cobra.Command, args []string) error {
	client := application.Client

	if len(args) == 1 {
		value, err := client.GetSetting(cmd.Context(), args[0])
		if err != nil {
			return adminError(err)
		}
		fmt.Printf("%s = %s\n", args[0], value)
		return nil
	}

	settings, err := client.ListSettings(cmd.Context())
	if err != nil {
		return adminError(err)
	}

	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s = %s\n", name, settings[name])
	}
	return nil
}

func adminError(err error) error {
	if errors.Is(err, dataverse.ErrNoUnblockKey) {
		return fmt.Errorf("%w: set unblockKey in dataverse.properties or DATAVERSE_UNBLOCK_KEY", err)
	}
	return err
}
