package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Inspect exercises",
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show [exercise name]",
	Short: "Show an exercise for a body type",
	Long:  "Resolve an exercise the way the guide displays it: media, description, equipment, difficulty and alternatives",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")
		c, _, logger := openCatalog()
		g := parseGender(cmd)

		d := assets.NewResolver(c, logger).Resolve(name, g)
		if d.Equipment == nil {
			fmt.Printf("❌ Unknown exercise %q\n", name)
		}

		fmt.Println(styles.TitleStyle.Render(name))
		if d.Equipment != nil {
			fmt.Printf("Equipment:   %s\n", *d.Equipment)
		}
		if d.Difficulty != nil {
			fmt.Printf("Difficulty:  %s\n", *d.Difficulty)
		}
		fmt.Printf("Media:       %s (%s)\n", d.Src, d.Type)
		if !d.Available() {
			fmt.Printf("             %s\n", assets.NoDemonstration)
		}
		fmt.Printf("\n%s\n", d.Description)
		if len(d.Alternatives) > 0 {
			fmt.Println("\nAlternatives:")
			for _, a := range d.Alternatives {
				fmt.Printf("  • %s\n", a)
			}
		}
		if muscles := c.Index().MusclesFor(name, g); len(muscles) > 0 {
			fmt.Printf("\nTrains: %s\n", strings.Join(muscles, ", "))
		}
	},
}

func init() {
	exerciseShowCmd.Flags().StringP("gender", "g", "male", "Body type: male or female")

	exerciseCmd.AddCommand(exerciseShowCmd)
	rootCmd.AddCommand(exerciseCmd)
}
