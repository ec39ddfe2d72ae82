// Init command: create directories and initialize the store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the store: create directories, open the database, and seed from the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		stats, err := backend.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("Initialized store in %s (%d playgrounds)\n", dataDir, stats.Total)
		return nil
	},
}
