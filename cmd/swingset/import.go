// Import command: replace the store contents from a JSON snapshot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all collections from a JSON export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.ImportAll(snapshot); err != nil {
			return err
		}

		stats, err := backend.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d playgrounds from %s\n", stats.Total, args[0])
		return nil
	},
}
