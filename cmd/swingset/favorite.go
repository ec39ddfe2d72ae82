// Favorite commands: add, remove, and list favorites.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage favorite playgrounds",
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add <prop-id>",
	Short: "Mark a playground as a favorite",
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

		table, err := backend.GetTable(types.FavoritesTable)
		if err != nil {
			return err
		}

		id, err := table.Set("", &types.Favorite{PlaygroundRef: playground.ID})
		if err != nil {
			return err
		}

		fmt.Printf("Favorited %s (%s)\n", playground.PropID, id)
		return nil
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:   "remove <prop-id>",
	Short: "Remove a playground from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.FavoritesTable)
		if err != nil {
			return err
		}

		// Duplicates are legal; remove every favorite pointing at the
		// playground.
		favorites, err := backend.FavoritesForPlayground(args[0])
		if err != nil {
			return err
		}
		if len(favorites) == 0 {
			return fmt.Errorf("playground %s is not a favorite", args[0])
		}

		for _, favorite := range favorites {
			if err := table.Delete(favorite.FavoriteID); err != nil {
				return err
			}
		}

		fmt.Printf("Unfavorited %s\n", args[0])
		return nil
	},
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite playgrounds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		playgrounds, err := backend.FavoritesList()
		if err != nil {
			return err
		}
		return printPlaygroundPtrs(playgrounds)
	},
}

func init() {
	favoriteCmd.AddCommand(favoriteAddCmd)
	favoriteCmd.AddCommand(favoriteRemoveCmd)
	favoriteCmd.AddCommand(favoriteListCmd)
}
