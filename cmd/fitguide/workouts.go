package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/fitguide/pkg/data"
	"github.com/kerbaras/fitguide/pkg/integrations"
	"github.com/spf13/cobra"
)

var workoutsCmd = &cobra.Command{
	Use:     "workouts",
	Aliases: []string{"workout"},
	Short:   "Manage saved workouts",
}

var workoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved workouts",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		workouts, err := controller.Workouts()
		if err != nil {
			cobra.CheckErr(err)
		}
		if len(workouts) == 0 {
			fmt.Println("📋 No saved workouts. Use 'fitguide workouts create' or the guide to make one.")
			return
		}

		columns := []table.Column{
			{Title: "ID", Width: 10},
			{Title: "Title", Width: 30},
			{Title: "Targets", Width: 24},
			{Title: "Exercises", Width: 10},
			{Title: "Per week", Width: 9},
		}
		rows := []table.Row{}
		for _, w := range workouts {
			rows = append(rows, table.Row{
				truncateString(w.ID, 8),
				truncateString(w.Title, 28),
				truncateString(strings.Join(w.TargetMuscles, ", "), 22),
				fmt.Sprintf("%d", len(w.Exercises)),
				fmt.Sprintf("%d", w.WorkoutsPerWeek),
			})
		}

		fmt.Printf("\n📋 Workouts (%d)\n\n", len(workouts))
		printTable(columns, rows)
	},
}

var workoutsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a workout; ids may be abbreviated",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		w, err := controller.Workout(args[0])
		if err != nil {
			cobra.CheckErr(err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(w, "", "  ")
			if err != nil {
				cobra.CheckErr(err)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Printf("%s (%s)\n", w.Title, w.ID)
		fmt.Printf("Body: %s · Difficulty: %s · %d/week\n", w.Gender, w.Difficulty, w.WorkoutsPerWeek)
		for _, day := range w.ScheduleDays() {
			fmt.Printf("\n%s: %s\n", day, strings.Join(w.TrainingSchedule[day], ", "))
			for _, e := range w.ExercisesFor(day) {
				fmt.Printf("  • %-32s %d x %s  rest %s  tempo %s\n", e.Name, e.Sets, e.Reps, e.Rest, e.Tempo)
			}
		}
	},
}

var workoutsCreateCmd = &cobra.Command{
	Use:   "create [exercise names...]",
	Short: "Create a workout from exercises of one muscle",
	Long: `Create a workout with the default prescription for each exercise.

Example:
  fitguide workouts create --title "Shoulder Day" --muscle Shoulders "Arnold Press" "Dumbbell Lateral Raise"`,
	Run: func(cmd *cobra.Command, args []string) {
		title, _ := cmd.Flags().GetString("title")
		muscle, _ := cmd.Flags().GetString("muscle")
		g := parseGender(cmd)

		controller := openController(loadConfig())
		defer controller.Close()

		w := controller.DraftWorkout(title, g, muscle, args)
		if err := controller.SaveWorkout(w); err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("✅ Saved %q (%s) with %d exercises\n", w.Title, w.ID, len(w.Exercises))
	},
}

var workoutsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved workout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		if err := controller.DeleteWorkout(args[0]); err != nil {
			cobra.CheckErr(err)
		}
		fmt.Println("🗑️  Deleted")
	},
}

var workoutsExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a workout as an EPUB booklet or an XLSX sheet",
	Long: `Export a saved workout.

The EPUB booklet has one section per training day and one per exercise with
its demonstration image, sized for --device.

Examples:
  fitguide workouts export 3f2a --format epub --device kindle-paperwhite
  fitguide workouts export 3f2a --format xlsx --output ~/Documents

Use 'fitguide workouts export --list-devices' to see device profiles.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if list, _ := cmd.Flags().GetBool("list-devices"); list {
			fmt.Println("📱 Device profiles:")
			for _, d := range integrations.ListDevices() {
				fmt.Printf("  %s\n", d)
			}
			return
		}
		if len(args) == 0 {
			cobra.CheckErr(fmt.Errorf("workout id is required (use --list-devices to see device profiles)"))
		}

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		device, _ := cmd.Flags().GetString("device")

		cfg := loadConfig()
		if device != "" {
			if _, ok := integrations.GetDevice(device); !ok {
				cobra.CheckErr(fmt.Errorf("unknown device: %s. Use --list-devices to see available options", device))
			}
			cfg.Device = device
		}
		controller := openController(cfg)
		defer controller.Close()

		ctx, stop := signalContext()
		defer stop()

		fmt.Printf("📦 Exporting as %s...\n", format)
		path, err := controller.Export(ctx, args[0], format, output)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}
		fmt.Printf("✅ Export complete: %s\n", path)
	},
}

var workoutsImportCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Import workouts from a savedWorkouts JSON file",
	Long:  "Import a JSON array of workouts (or a single workout object) as kept by the web client. Existing ids are overwritten.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			cobra.CheckErr(err)
		}
		workouts, err := decodeWorkouts(raw)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid workouts file: %w", err))
		}

		controller := openController(loadConfig())
		defer controller.Close()

		saved := 0
		for _, w := range workouts {
			if err := controller.SaveWorkout(w); err != nil {
				fmt.Printf("⚠️  Skipping %q: %s\n", w.Title, err)
				continue
			}
			saved++
		}
		fmt.Printf("✅ Imported %d of %d workouts\n", saved, len(workouts))
	},
}

// decodeWorkouts accepts either a JSON array or a single object.
func decodeWorkouts(raw []byte) ([]*data.Workout, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var list []*data.Workout
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var w data.Workout
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return []*data.Workout{&w}, nil
}

var workoutsPushCmd = &cobra.Command{
	Use:   "push [id]",
	Short: "Upload a workout to the backend",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		w, err := controller.PushWorkout(context.Background(), args[0])
		if err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("☁️  Uploaded %q\n", w.Title)
	},
}

var workoutsPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the backend's workout routines",
	Run: func(cmd *cobra.Command, args []string) {
		controller := openController(loadConfig())
		defer controller.Close()

		n, err := controller.PullWorkouts(context.Background())
		if err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("☁️  Pulled %d workouts\n", n)
	},
}

func init() {
	workoutsShowCmd.Flags().Bool("json", false, "Print the stored JSON")

	workoutsCreateCmd.Flags().StringP("title", "t", "", "Workout title (required)")
	workoutsCreateCmd.Flags().StringP("muscle", "m", "", "Target muscle")
	workoutsCreateCmd.Flags().StringP("gender", "g", "male", "Body type: male or female")

	workoutsExportCmd.Flags().StringP("format", "f", "epub", "Output format: "+strings.Join(integrations.Formats, ", "))
	workoutsExportCmd.Flags().StringP("output", "o", "", "Output directory (default <data-dir>/exports)")
	workoutsExportCmd.Flags().StringP("device", "d", "", "Device profile for booklet images")
	workoutsExportCmd.Flags().Bool("list-devices", false, "List device profiles")

	workoutsCmd.AddCommand(
		workoutsListCmd,
		workoutsShowCmd,
		workoutsCreateCmd,
		workoutsDeleteCmd,
		workoutsExportCmd,
		workoutsImportCmd,
		workoutsPushCmd,
		workoutsPullCmd,
	)
	rootCmd.AddCommand(workoutsCmd)
}
