package cmd

import (
	"fmt"
	"strconv"

	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/muscles"
	"github.com/spf13/cobra"
)

var hitCmd = &cobra.Command{
	Use:   "hit [x%] [y%]",
	Short: "Find the muscle region at a diagram position",
	Long: `Hit-test a pointer position, given as percentages of the body image
(x from the left edge, y from the top), against the region markers.

Example:
  fitguide hit 30 21 --gender male --view front`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		x, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid x: %w", err))
		}
		y, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid y: %w", err))
		}
		p := muscles.Point{Left: x, Top: y}
		if !p.Finite() {
			cobra.CheckErr(fmt.Errorf("position (%s, %s) must be finite", args[0], args[1]))
		}
		viewFlag, _ := cmd.Flags().GetString("view")
		v, err := catalog.ParseView(viewFlag)
		if err != nil {
			cobra.CheckErr(err)
		}

		c, _, _ := openCatalog()
		g := parseGender(cmd)

		m, ok := muscles.Nearest(p, c.Regions(g, v))
		if !ok {
			fmt.Printf("No region within %.0f%% of (%.1f, %.1f)\n", muscles.MatchThreshold, x, y)
			return
		}
		fmt.Printf("🎯 %s (marker at %.1f, %.1f; distance %.2f)\n", m.Region, m.Marker.Left, m.Marker.Top, m.Distance)
	},
}

func init() {
	hitCmd.Flags().StringP("gender", "g", "male", "Body type: male or female")
	hitCmd.Flags().StringP("view", "v", "front", "Diagram side: front or back")

	rootCmd.AddCommand(hitCmd)
}
