// Search command: substring search over playgrounds or reviews.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchReviews bool

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search playgrounds by name/location, or reviews with --reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if searchReviews {
			reviews, err := backend.SearchReviews(args[0])
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(reviews)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "REVIEW ID\tPLAYGROUND\tRATING\tTITLE\tAUTHOR")
			for _, r := range reviews {
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\n",
					r.ReviewID, r.PlaygroundPropID, r.Rating, r.Title, r.Author)
			}
			return w.Flush()
		}

		playgrounds, err := backend.SearchPlaygrounds(args[0])
		if err != nil {
			return err
		}
		return printPlaygroundPtrs(playgrounds)
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchReviews, "reviews", false, "search reviews instead of playgrounds")
}
