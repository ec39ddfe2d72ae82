// Validate command: check a candidate playground without persisting it.
package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var (
	valPropID   string
	valName     string
	valLocation string
	valLat      float64
	valLon      float64
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a candidate playground without saving it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		candidate := &types.Playground{
			PropID:   valPropID,
			Name:     valName,
			Location: valLocation,
			Lat:      types.Coord(valLat),
			Lon:      types.Coord(valLon),
		}
		if !cmd.Flags().Changed("lat") {
			candidate.Lat = types.Coord(math.NaN())
		}
		if !cmd.Flags().Changed("lon") {
			candidate.Lon = types.Coord(math.NaN())
		}

		violations, err := backend.Validate(candidate)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(violations)
		}

		if len(violations) == 0 {
			fmt.Println("OK")
			return nil
		}
		for _, v := range violations {
			fmt.Fprintln(cmd.ErrOrStderr(), v)
		}
		return fmt.Errorf("%d validation violation(s)", len(violations))
	},
}

func init() {
	validateCmd.Flags().StringVar(&valPropID, "prop-id", "", "prop ID")
	validateCmd.Flags().StringVar(&valName, "name", "", "playground name")
	validateCmd.Flags().StringVar(&valLocation, "location", "", "street location")
	validateCmd.Flags().Float64Var(&valLat, "lat", 0, "latitude")
	validateCmd.Flags().Float64Var(&valLon, "lon", 0, "longitude")
}
