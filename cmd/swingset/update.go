// Update command: modify fields of an existing playground.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var (
	updName     string
	updLocation string
	updAccess   string
	updSensory  string
	updLat      float64
	updLon      float64
	updBy       string
)

var updateCmd = &cobra.Command{
	Use:   "update <prop-id>",
	Short: "Update fields of a playground",
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

		flags := cmd.Flags()
		if flags.Changed("name") {
			playground.Name = updName
		}
		if flags.Changed("location") {
			playground.Location = updLocation
		}
		if flags.Changed("accessible") {
			playground.Accessible = updAccess
		}
		if flags.Changed("sensory") {
			playground.SensoryFriendly = updSensory
		}
		if flags.Changed("lat") {
			playground.Lat = types.Coord(updLat)
		}
		if flags.Changed("lon") {
			playground.Lon = types.Coord(updLon)
		}
		if flags.Changed("modified-by") {
			playground.ModifiedBy = updBy
		}

		table, err := backend.GetTable(types.PlaygroundsTable)
		if err != nil {
			return err
		}

		if _, err := table.Set(playground.ID, playground); err != nil {
			return err
		}

		fmt.Printf("Updated playground %s\n", playground.PropID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updName, "name", "", "playground name")
	updateCmd.Flags().StringVar(&updLocation, "location", "", "street location")
	updateCmd.Flags().StringVar(&updAccess, "accessible", "", "raw accessibility value")
	updateCmd.Flags().StringVar(&updSensory, "sensory", "", "sensory-friendly flag (Y/N)")
	updateCmd.Flags().Float64Var(&updLat, "lat", 0, "latitude")
	updateCmd.Flags().Float64Var(&updLon, "lon", 0, "longitude")
	updateCmd.Flags().StringVar(&updBy, "modified-by", "", "author attribution")
}
