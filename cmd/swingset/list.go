// List command: filter playgrounds by criteria.
package main

import (
	"github.com/spf13/cobra"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var (
	listBorough   string
	listAccess    string
	listSensory   string
	listBathroom  string
	listAccBath   string
	listSprinkler string

	listShade     string
	listFenced    string
	listWaterPlay string
	listMinStars  float64
	listAgeMin    int
	listAgeMax    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List playgrounds matching the given criteria",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		flags := cmd.Flags()

		// Extended-attribute flags route through the generation-2 query;
		// they cannot be combined with the base filter flags.
		if flags.Changed("shade") || flags.Changed("fenced") || flags.Changed("water-play") ||
			flags.Changed("min-stars") || flags.Changed("age-min") || flags.Changed("age-max") {
			criteria := types.ExtendedCriteria{
				Shade:     listShade,
				Fenced:    listFenced,
				WaterPlay: listWaterPlay,
			}
			if flags.Changed("min-stars") {
				criteria.MinStars = &listMinStars
			}
			if flags.Changed("age-min") {
				criteria.AgeMin = &listAgeMin
			}
			if flags.Changed("age-max") {
				criteria.AgeMax = &listAgeMax
			}

			playgrounds, err := backend.SearchByExtendedInfo(criteria)
			if err != nil {
				return err
			}
			return printPlaygroundPtrs(playgrounds)
		}

		criteria := types.FilterCriteria{
			Borough:    listBorough,
			Accessible: listAccess,
		}
		if criteria.Sensory, err = parseBoolFlag(listSensory); err != nil {
			return err
		}
		if criteria.HasBathroom, err = parseBoolFlag(listBathroom); err != nil {
			return err
		}
		if criteria.HasAccessibleBathroom, err = parseBoolFlag(listAccBath); err != nil {
			return err
		}
		if criteria.HasSprinkler, err = parseBoolFlag(listSprinkler); err != nil {
			return err
		}

		playgrounds, err := backend.FilterPlaygrounds(criteria)
		if err != nil {
			return err
		}
		return printPlaygroundPtrs(playgrounds)
	},
}

func init() {
	listCmd.Flags().StringVar(&listBorough, "borough", "", "borough name (All for no filter)")
	listCmd.Flags().StringVar(&listAccess, "accessible", "", "normalized accessibility (Yes, No, Limited, Unknown)")
	listCmd.Flags().StringVar(&listSensory, "sensory", "", "sensory-friendly (true/false)")
	listCmd.Flags().StringVar(&listBathroom, "bathroom", "", "has any bathroom (true/false)")
	listCmd.Flags().StringVar(&listAccBath, "accessible-bathroom", "", "has accessible bathroom (true/false)")
	listCmd.Flags().StringVar(&listSprinkler, "sprinkler", "", "has sprinkler (true/false)")

	listCmd.Flags().StringVar(&listShade, "shade", "", "shade level")
	listCmd.Flags().StringVar(&listFenced, "fenced", "", "fencing level")
	listCmd.Flags().StringVar(&listWaterPlay, "water-play", "", "water play availability")
	listCmd.Flags().Float64Var(&listMinStars, "min-stars", 0, "minimum star rating")
	listCmd.Flags().IntVar(&listAgeMin, "age-min", 0, "minimum age overlap bound")
	listCmd.Flags().IntVar(&listAgeMax, "age-max", 0, "maximum age overlap bound")
}
