package integrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/data"
)

const (
	SheetWorkout  = "Workout"
	SheetSchedule = "Schedule"
)

var workoutHeaders = []string{"#", "Exercise", "Muscle", "Equipment", "Difficulty", "Sets", "Reps", "Rest", "Tempo"}

// SheetExporter writes a workout as an XLSX workbook with a "Workout" sheet
// listing the exercises and a "Schedule" sheet with one row per day.
type SheetExporter struct {
	catalog *catalog.Catalog
}

// NewSheetExporter builds an exporter; c may be nil, leaving the equipment
// and difficulty columns empty.
func NewSheetExporter(c *catalog.Catalog) *SheetExporter {
	return &SheetExporter{catalog: c}
}

func (x *SheetExporter) Extension() string { return ".xlsx" }

func (x *SheetExporter) Export(ctx context.Context, w *data.Workout, dir string) (string, error) {
	if w == nil {
		return "", fmt.Errorf("no workout to export")
	}
	f, err := x.Workbook(w)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	title := w.Title
	if title == "" {
		title = "workout"
	}
	outputPath := filepath.Join(dir, sanitizeFilename(title)+x.Extension())
	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return outputPath, nil
}

// Workbook builds the in-memory workbook for w. The caller closes it.
func (x *SheetExporter) Workbook(w *data.Workout) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(SheetWorkout)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSchedule); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := x.writeExercises(f, w, header); err != nil {
		f.Close()
		return nil, err
	}
	if err := x.writeSchedule(f, w, header); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (x *SheetExporter) writeExercises(f *excelize.File, w *data.Workout, header int) error {
	if err := f.SetSheetRow(SheetWorkout, "A1", &workoutHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(workoutHeaders), 1)
	if err := f.SetCellStyle(SheetWorkout, "A1", last, header); err != nil {
		return err
	}
	if err := f.SetPanes(SheetWorkout, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	widths := map[string]float64{"A": 5, "B": 32, "C": 16, "D": 16, "E": 14, "F": 7, "G": 10, "H": 8, "I": 9}
	for col, width := range widths {
		if err := f.SetColWidth(SheetWorkout, col, col, width); err != nil {
			return err
		}
	}

	g := catalog.Gender(w.Gender)
	for i, ex := range w.Exercises {
		var equipment, difficulty string
		if x.catalog != nil {
			if rec, ok := x.catalog.Lookup(ex.Name, g); ok {
				equipment = string(rec.Equipment)
				difficulty = string(rec.Difficulty)
			}
		}
		row := []any{i + 1, ex.Name, ex.Muscle, equipment, difficulty, ex.Sets, ex.Reps, ex.Rest, ex.Tempo}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetWorkout, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s: %w", ex.Name, err)
		}
	}
	return nil
}

func (x *SheetExporter) writeSchedule(f *excelize.File, w *data.Workout, header int) error {
	headers := []string{"Day", "Muscles", "Exercises"}
	if err := f.SetSheetRow(SheetSchedule, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	if err := f.SetCellStyle(SheetSchedule, "A1", "C1", header); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSchedule, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSchedule, "B", "C", 40); err != nil {
		return err
	}

	for i, day := range w.ScheduleDays() {
		var names []string
		for _, ex := range w.ExercisesFor(day) {
			names = append(names, ex.Name)
		}
		row := []any{day, strings.Join(w.TrainingSchedule[day], ", "), strings.Join(names, ", ")}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetSchedule, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s: %w", day, err)
		}
	}
	return nil
}
