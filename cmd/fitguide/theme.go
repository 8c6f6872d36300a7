package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kerbaras/fitguide/pkg/app/styles"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or choose the TUI theme",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		t, err := controller.Theme()
		if err != nil {
			cobra.CheckErr(err)
		}

		color, _ := cmd.Flags().GetString("color")
		if len(args) == 0 && !cmd.Flags().Changed("color") {
			name := t.Name
			if name == "" {
				name = styles.DefaultTheme
			}
			fmt.Printf("Theme: %s\n", name)
			if t.UseCustomColor {
				fmt.Printf("Custom color: %s\n", t.CustomColor)
			}
			fmt.Printf("Available: %s\n", strings.Join(styles.ThemeNames(), ", "))
			return
		}

		if len(args) == 1 {
			if _, ok := styles.Themes[args[0]]; !ok {
				cobra.CheckErr(fmt.Errorf("unknown theme %q, choose one of %s", args[0], strings.Join(styles.ThemeNames(), ", ")))
			}
			t.Name = args[0]
			if !slices.Contains(t.Unlocked, t.Name) {
				t.Unlocked = append(t.Unlocked, t.Name)
			}
		}
		if cmd.Flags().Changed("color") {
			if color != "" && !styles.IsHexColor(color) {
				cobra.CheckErr(fmt.Errorf("invalid color %q, use #RRGGBB", color))
			}
			t.CustomColor = color
			t.UseCustomColor = color != ""
		}

		if err := controller.SaveTheme(t); err != nil {
			cobra.CheckErr(err)
		}
		fmt.Println("🎨 Theme saved")
	},
}

func init() {
	themeCmd.Flags().String("color", "", "Custom primary color (#RRGGBB); empty disables it")

	rootCmd.AddCommand(themeCmd)
}
