package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/fitguide/pkg/api"
	"github.com/kerbaras/fitguide/pkg/data"
	"github.com/spf13/cobra"
)

var routinesCmd = &cobra.Command{
	Use:   "routines",
	Short: "List the backend's routines",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()
		ctx := context.Background()

		if folders, _ := cmd.Flags().GetBool("folders"); folders {
			list, err := controller.RoutineFolders(ctx)
			if err != nil {
				cobra.CheckErr(err)
			}
			for _, f := range list {
				fmt.Printf("📁 %s (%s)\n", f.Name, f.ID)
			}
			return
		}

		routines, err := controller.Routines(ctx)
		if err != nil {
			cobra.CheckErr(err)
		}
		if len(routines) == 0 {
			fmt.Println("No routines.")
			return
		}
		rows := []table.Row{}
		for _, r := range routines {
			rows = append(rows, table.Row{string(r.ID), truncateString(r.Name, 38), string(r.FolderID)})
		}
		printTable([]table.Column{
			{Title: "ID", Width: 10},
			{Title: "Name", Width: 40},
			{Title: "Folder", Width: 10},
		}, rows)
	},
}

var mealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "List logged meals",
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")

		controller := openController(loadConfig())
		defer controller.Close()

		meals, err := controller.Meals(context.Background(), date)
		if err != nil {
			cobra.CheckErr(err)
		}
		if len(meals) == 0 {
			fmt.Println("🍽️  No meals logged.")
			return
		}

		rows := []table.Row{}
		var total api.Meal
		for _, m := range meals {
			rows = append(rows, mealRow(m.Name, m.MealType, m.Calories, m.Protein, m.Carbs, m.Fat))
			total.Calories += m.Calories
			total.Protein += m.Protein
			total.Carbs += m.Carbs
			total.Fat += m.Fat
		}
		rows = append(rows, mealRow("Total", "", total.Calories, total.Protein, total.Carbs, total.Fat))
		printTable(nutritionColumns("Meal", "Type"), rows)
	},
}

var mealsLogCmd = &cobra.Command{
	Use:   "log [name]",
	Short: "Log a meal",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := api.Meal{Name: strings.Join(args, " ")}
		m.MealType, _ = cmd.Flags().GetString("type")
		m.Date, _ = cmd.Flags().GetString("date")
		m.Calories, _ = cmd.Flags().GetFloat64("calories")
		m.Protein, _ = cmd.Flags().GetFloat64("protein")
		m.Carbs, _ = cmd.Flags().GetFloat64("carbs")
		m.Fat, _ = cmd.Flags().GetFloat64("fat")

		controller := openController(loadConfig())
		defer controller.Close()

		saved, err := controller.LogMeal(context.Background(), m)
		if err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("✅ Logged %s (%.0f kcal)\n", saved.Name, saved.Calories)
	},
}

var foodsCmd = &cobra.Command{
	Use:   "foods [query]",
	Short: "Search the food database",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		foods, err := controller.SearchFoods(context.Background(), strings.Join(args, " "))
		if err != nil {
			cobra.CheckErr(err)
		}
		if len(foods) == 0 {
			fmt.Println("No foods found.")
			return
		}
		rows := []table.Row{}
		for _, f := range foods {
			rows = append(rows, mealRow(f.Name, f.ServingSize, f.Calories, f.Protein, f.Carbs, f.Fat))
		}
		printTable(nutritionColumns("Food", "Serving"), rows)
	},
}

func nutritionColumns(name, detail string) []table.Column {
	return []table.Column{
		{Title: name, Width: 30},
		{Title: detail, Width: 12},
		{Title: "kcal", Width: 7},
		{Title: "P", Width: 6},
		{Title: "C", Width: 6},
		{Title: "F", Width: 6},
	}
}

func mealRow(name, detail string, kcal, protein, carbs, fat float64) table.Row {
	return table.Row{
		truncateString(name, 28),
		detail,
		fmt.Sprintf("%.0f", kcal),
		fmt.Sprintf("%.1f", protein),
		fmt.Sprintf("%.1f", carbs),
		fmt.Sprintf("%.1f", fat),
	}
}

var prefsCmd = &cobra.Command{
	Use:   "prefs [key=value...]",
	Short: "Show or set user preferences",
	Long:  "Without arguments, print the stored preferences. With key=value pairs, merge them in and upload when signed in.",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		prefs, err := controller.Preferences()
		if err != nil {
			cobra.CheckErr(err)
		}
		if prefs == nil {
			prefs = data.UserPreferences{}
		}

		if len(args) == 0 {
			keys := make([]string, 0, len(prefs))
			for k := range prefs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%s=%v\n", k, prefs[k])
			}
			return
		}

		for _, a := range args {
			k, v, ok := strings.Cut(a, "=")
			if !ok || k == "" {
				cobra.CheckErr(fmt.Errorf("expected key=value, got %q", a))
			}
			prefs[k] = v
		}
		if err := controller.SavePreferences(context.Background(), prefs); err != nil {
			cobra.CheckErr(err)
		}
		fmt.Println("✅ Preferences saved")
	},
}

func init() {
	routinesCmd.Flags().Bool("folders", false, "List routine folders instead")

	mealsCmd.PersistentFlags().String("date", "", "Day as YYYY-MM-DD (default today)")
	mealsLogCmd.Flags().String("type", "", "Meal type: breakfast, lunch, dinner, snack")
	mealsLogCmd.Flags().Float64("calories", 0, "Calories")
	mealsLogCmd.Flags().Float64("protein", 0, "Protein (g)")
	mealsLogCmd.Flags().Float64("carbs", 0, "Carbohydrates (g)")
	mealsLogCmd.Flags().Float64("fat", 0, "Fat (g)")
	mealsCmd.AddCommand(mealsLogCmd)

	rootCmd.AddCommand(routinesCmd, mealsCmd, foodsCmd, prefsCmd)
}
