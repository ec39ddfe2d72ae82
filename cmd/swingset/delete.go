// Delete command: remove a playground and its cascading records.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <prop-id>",
	Short: "Delete a playground (reviews cascade; favorites per cascade_favorites)",
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

		table, err := backend.GetTable(types.PlaygroundsTable)
		if err != nil {
			return err
		}

		if err := table.Delete(playground.ID); err != nil {
			return err
		}

		fmt.Printf("Deleted playground %s\n", playground.PropID)
		return nil
	},
}
