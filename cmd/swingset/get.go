// Get command: look up a playground by prop ID.
package main

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <prop-id>",
	Short: "Show a playground by its prop ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		playground, err := backend.GetPlaygroundByPropID(args[0])
		if err != nil {
			return err
		}

		return printPlayground(playground)
	},
}
