// Dataset commands: offline dataset preparation.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/internal/dataset"
)

var (
	mergePlaygroundsPath string
	mergeSprinklersPath  string
	mergeOutPath         string
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Prepare source dataset files",
}

var mergeSprinklersCmd = &cobra.Command{
	Use:   "merge-sprinklers",
	Short: "Merge sprinkler records into a playground dataset by name matching",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		playgrounds, err := dataset.ReadPlaygrounds(mergePlaygroundsPath)
		if err != nil {
			return fmt.Errorf("read playgrounds: %w", err)
		}

		sprinklers, err := dataset.ReadSprinklers(mergeSprinklersPath)
		if err != nil {
			return fmt.Errorf("read sprinklers: %w", err)
		}

		merged, stats := dataset.MergeSprinklers(playgrounds, sprinklers)

		if err := dataset.WritePlaygrounds(mergeOutPath, merged); err != nil {
			return fmt.Errorf("write merged dataset: %w", err)
		}

		fmt.Printf("Matched %d/%d playgrounds (%d exact, %d fuzzy) -> %s\n",
			stats.Matched(), stats.Total, stats.ExactMatches, stats.FuzzyMatches, mergeOutPath)
		return nil
	},
}

func init() {
	mergeSprinklersCmd.Flags().StringVar(&mergePlaygroundsPath, "playgrounds", "", "playground dataset file (required)")
	mergeSprinklersCmd.Flags().StringVar(&mergeSprinklersPath, "sprinklers", "", "sprinkler dataset file (required)")
	mergeSprinklersCmd.Flags().StringVar(&mergeOutPath, "out", "", "output file (required)")
	mergeSprinklersCmd.MarkFlagRequired("playgrounds")
	mergeSprinklersCmd.MarkFlagRequired("sprinklers")
	mergeSprinklersCmd.MarkFlagRequired("out")

	datasetCmd.AddCommand(mergeSprinklersCmd)
}
