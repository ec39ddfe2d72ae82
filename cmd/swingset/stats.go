// Stats command: collection summaries.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsReviews bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show playground statistics, or review statistics with --reviews",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if statsReviews {
			stats, err := backend.ReviewStats()
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(stats)
			}
			fmt.Printf("Total reviews:  %d\n", stats.Total)
			fmt.Printf("Approved:       %d\n", stats.Approved)
			fmt.Printf("Featured:       %d\n", stats.Featured)
			fmt.Printf("Pending:        %d\n", stats.Pending)
			fmt.Printf("Average rating: %.1f\n", stats.AverageRating)
			return nil
		}

		stats, err := backend.PlaygroundStats()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(stats)
		}
		fmt.Printf("Total playgrounds: %d\n", stats.Total)
		fmt.Printf("Accessible:        %d (%d%%)\n", stats.Accessible, stats.AccessiblePercent)
		fmt.Printf("Sensory-friendly:  %d (%d%%)\n", stats.SensoryFriendly, stats.SensoryPercent)
		fmt.Printf("With reviews:      %d (%d%%)\n", stats.WithReviews, stats.WithReviewsPercent)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsReviews, "reviews", false, "show review statistics")
}
