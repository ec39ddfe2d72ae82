// Setting commands: get and set key-value preferences.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Manage application settings",
}

var settingGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		setting, err := backend.GetSetting(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(setting)
		}
		fmt.Println(setting.Value)
		return nil
	},
}

var settingSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.PutSetting(&types.Setting{Key: args[0], Value: args[1]}); err != nil {
			return err
		}

		fmt.Printf("Set %s\n", args[0])
		return nil
	},
}

func init() {
	settingCmd.AddCommand(settingGetCmd)
	settingCmd.AddCommand(settingSetCmd)
}
