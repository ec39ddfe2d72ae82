// Add command: create a playground record.
package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var (
	addPropID       string
	addName         string
	addLocation     string
	addAccess       string
	addSensory      string
	addLat          float64
	addLon          float64
	addPlayID       string
	addAddedBy      string
	addSkipValidate bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a playground",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		playground := &types.Playground{
			PropID:          addPropID,
			PlaygroundID:    addPlayID,
			Name:            addName,
			Location:        addLocation,
			Accessible:      addAccess,
			SensoryFriendly: addSensory,
			Lat:             types.Coord(addLat),
			Lon:             types.Coord(addLon),
			AddedBy:         addAddedBy,
		}
		if !cmd.Flags().Changed("lat") {
			playground.Lat = types.Coord(math.NaN())
		}
		if !cmd.Flags().Changed("lon") {
			playground.Lon = types.Coord(math.NaN())
		}

		if !addSkipValidate {
			violations, err := backend.Validate(playground)
			if err != nil {
				return err
			}
			if len(violations) > 0 {
				for _, v := range violations {
					fmt.Fprintln(cmd.ErrOrStderr(), v)
				}
				return fmt.Errorf("playground failed validation")
			}
		}

		table, err := backend.GetTable(types.PlaygroundsTable)
		if err != nil {
			return err
		}

		id, err := table.Set("", playground)
		if err != nil {
			return err
		}

		fmt.Printf("Added playground %s (%s)\n", playground.PropID, id)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addPropID, "prop-id", "", "prop ID (required)")
	addCmd.Flags().StringVar(&addName, "name", "", "playground name (required)")
	addCmd.Flags().StringVar(&addLocation, "location", "", "street location")
	addCmd.Flags().StringVar(&addAccess, "accessible", "", "raw accessibility value")
	addCmd.Flags().StringVar(&addSensory, "sensory", "", "sensory-friendly flag (Y/N)")
	addCmd.Flags().Float64Var(&addLat, "lat", 0, "latitude")
	addCmd.Flags().Float64Var(&addLon, "lon", 0, "longitude")
	addCmd.Flags().StringVar(&addPlayID, "playground-id", "", "external playground ID")
	addCmd.Flags().StringVar(&addAddedBy, "added-by", "", "author attribution")
	addCmd.Flags().BoolVar(&addSkipValidate, "no-validate", false, "skip validation")
	addCmd.MarkFlagRequired("prop-id")
	addCmd.MarkFlagRequired("name")
}
