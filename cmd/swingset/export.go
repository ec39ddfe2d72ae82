// Export command: snapshot the playground collection to JSON.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the playground collection as JSON (stdout when no file given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		snapshot, err := backend.ExportAll()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			_, err := os.Stdout.Write(snapshot)
			return err
		}

		if err := os.WriteFile(args[0], snapshot, 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}

		fmt.Printf("Exported to %s\n", args[0])
		return nil
	},
}
