// Review commands: add, delete, and list reviews.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var (
	reviewTitle    string
	reviewContent  string
	reviewRating   float64
	reviewAuthor   string
	reviewApproved bool
	reviewFeatured bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage playground reviews",
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <prop-id>",
	Short: "Add a review for a playground",
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

		table, err := backend.GetTable(types.ReviewsTable)
		if err != nil {
			return err
		}

		review := &types.Review{
			PlaygroundPropID: playground.PropID,
			Title:            reviewTitle,
			Content:          reviewContent,
			Rating:           reviewRating,
			Author:           reviewAuthor,
			Approved:         &reviewApproved,
			Featured:         reviewFeatured,
		}

		id, err := table.Set("", review)
		if err != nil {
			return err
		}

		fmt.Printf("Added review %s for %s\n", id, playground.PropID)
		return nil
	},
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <review-id>",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.ReviewsTable)
		if err != nil {
			return err
		}

		if err := table.Delete(args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted review %s\n", args[0])
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list <prop-id>",
	Short: "List reviews for a playground, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		reviews, err := backend.ReviewsForPlayground(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(reviews)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "REVIEW ID\tDATE\tRATING\tTITLE\tAUTHOR\tAPPROVED")
		for _, r := range reviews {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\t%t\n",
				r.ReviewID, r.Date, r.Rating, r.Title, r.Author, *r.Approved)
		}
		return w.Flush()
	},
}

func init() {
	reviewAddCmd.Flags().StringVar(&reviewTitle, "title", "", "review title")
	reviewAddCmd.Flags().StringVar(&reviewContent, "content", "", "review body")
	reviewAddCmd.Flags().Float64Var(&reviewRating, "rating", 0, "star rating")
	reviewAddCmd.Flags().StringVar(&reviewAuthor, "author", "", "author name (default: Anonymous)")
	reviewAddCmd.Flags().BoolVar(&reviewApproved, "approved", true, "mark the review approved")
	reviewAddCmd.Flags().BoolVar(&reviewFeatured, "featured", false, "mark the review featured")

	reviewCmd.AddCommand(reviewAddCmd)
	reviewCmd.AddCommand(reviewDeleteCmd)
	reviewCmd.AddCommand(reviewListCmd)
}
