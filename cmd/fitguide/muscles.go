package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/spf13/cobra"
)

var musclesCmd = &cobra.Command{
	Use:   "muscles",
	Short: "Browse the muscle index",
}

var musclesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List muscles with exercise counts",
	Run: func(cmd *cobra.Command, args []string) {
		c, _, _ := openCatalog()
		g := parseGender(cmd)
		filter := parseEquipment(cmd)
		idx := c.Index()

		columns := []table.Column{
			{Title: "Muscle", Width: 16},
			{Title: "Exercises", Width: 10},
			{Title: "Equipment", Width: 60},
		}
		rows := []table.Row{}
		for _, m := range idx.Muscles(g) {
			var eq []string
			for _, e := range idx.Equipment(m, g) {
				eq = append(eq, string(e))
			}
			rows = append(rows, table.Row{
				m,
				fmt.Sprintf("%d", idx.Count(m, filter, g)),
				truncateString(strings.Join(eq, ", "), 58),
			})
		}

		fmt.Printf("\n💪 Muscles (%s, %s)\n\n", g, filter)
		printTable(columns, rows)
	},
}

var musclesExercisesCmd = &cobra.Command{
	Use:   "exercises [muscle]",
	Short: "List a muscle's exercises under an equipment filter",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		muscle := strings.Join(args, " ")
		c, _, logger := openCatalog()
		g := parseGender(cmd)
		filter := parseEquipment(cmd)

		if !c.Index().HasMuscle(muscle, g) {
			cobra.CheckErr(fmt.Errorf("unknown muscle %q for %s", muscle, g))
		}

		names := c.Filter(muscle, filter, g)
		if len(names) == 0 {
			fmt.Printf("No %s exercises for %s.\n", filter, muscle)
			return
		}

		resolver := assets.NewResolver(c, logger)
		columns := []table.Column{
			{Title: "Exercise", Width: 36},
			{Title: "Equipment", Width: 14},
			{Title: "Difficulty", Width: 13},
			{Title: "Media", Width: 6},
		}
		rows := []table.Row{}
		for _, n := range names {
			d := resolver.Resolve(n, g)
			eq, diff := "-", "-"
			if d.Equipment != nil {
				eq = string(*d.Equipment)
			}
			if d.Difficulty != nil {
				diff = string(*d.Difficulty)
			}
			media := "yes"
			if !d.Available() {
				media = "no"
			}
			rows = append(rows, table.Row{truncateString(n, 34), eq, diff, media})
		}

		fmt.Printf("\n🏋️  %s · %s (%d)\n\n", muscle, filter, len(names))
		printTable(columns, rows)
	},
}

func init() {
	for _, c := range []*cobra.Command{musclesListCmd, musclesExercisesCmd} {
		c.Flags().StringP("gender", "g", "male", "Body type: male or female")
		c.Flags().StringP("equipment", "e", "", "Equipment filter (default all)")
	}

	musclesCmd.AddCommand(musclesListCmd, musclesExercisesCmd)
	rootCmd.AddCommand(musclesCmd)
}
