package integrations

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"

	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/data"
	"github.com/kerbaras/fitguide/pkg/logging"
)

// ExportConfig configures the exporters. Catalog is required for the
// exercise pages; AssetDir may be empty, in which case booklets carry no
// images.
type ExportConfig struct {
	Catalog  *catalog.Catalog
	AssetDir string
	Device   string
	Logger   *slog.Logger
}

// BookletBuilder writes a workout as an EPUB booklet: an overview, one
// section per training day and one page per exercise with its
// demonstration image.
type BookletBuilder struct {
	resolver  *assets.Resolver
	prober    assets.FSProber
	hasAssets bool
	processor *ImageProcessor
	logger    *slog.Logger
}

func NewBookletBuilder(cfg ExportConfig) *BookletBuilder {
	logger := logging.OrDiscard(cfg.Logger)
	device, ok := GetDevice(cfg.Device)
	if !ok {
		device = Devices[DefaultDevice]
	}
	return &BookletBuilder{
		resolver:  assets.NewResolver(cfg.Catalog, logger),
		prober:    assets.FSProber{Root: cfg.AssetDir},
		hasAssets: cfg.AssetDir != "",
		processor: NewImageProcessor(device.ImageSettings()),
		logger:    logger,
	}
}

func (b *BookletBuilder) Extension() string { return ".epub" }

// Export builds the booklet for w in dir.
func (b *BookletBuilder) Export(ctx context.Context, w *data.Workout, dir string) (string, error) {
	if w == nil || len(w.Exercises) == 0 {
		return "", fmt.Errorf("no exercises to compile")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "fitguide-epub-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	title := w.Title
	if title == "" {
		title = "Workout"
	}
	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("fitguide")
	e.SetLang("en")
	e.SetDescription(summary(w))

	if _, err := e.AddSection(overviewHTML(w), "Overview", "overview.xhtml", ""); err != nil {
		return "", fmt.Errorf("failed to add overview: %w", err)
	}

	for i, day := range w.ScheduleDays() {
		body := dayHTML(day, w.TrainingSchedule[day], w.ExercisesFor(day))
		if _, err := e.AddSection(body, day, fmt.Sprintf("day-%02d.xhtml", i+1), ""); err != nil {
			return "", fmt.Errorf("failed to add %s: %w", day, err)
		}
	}

	g := catalog.Gender(w.Gender)
	if g != catalog.Female {
		g = catalog.Male
	}
	for i, ex := range w.Exercises {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := b.addExercise(ctx, e, tmpDir, i, ex, g); err != nil {
			return "", fmt.Errorf("failed to add exercise %s: %w", ex.Name, err)
		}
	}

	outputPath := filepath.Join(dir, sanitizeFilename(title)+b.Extension())
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	b.logger.Info("booklet written", "path", outputPath, "exercises", len(w.Exercises))
	return outputPath, nil
}

func (b *BookletBuilder) addExercise(ctx context.Context, e *epub.Epub, tmpDir string, i int, ex data.WorkoutExercise, g catalog.Gender) error {
	d := b.resolver.Resolve(ex.Name, g)

	var body strings.Builder
	fmt.Fprintf(&body, "<h1>%s</h1>\n", html.EscapeString(ex.Name))
	fmt.Fprintf(&body, "<p><strong>%s</strong></p>\n", html.EscapeString(prescription(ex)))

	if img, ok := b.image(ctx, e, tmpDir, i, d.Src, g); ok {
		fmt.Fprintf(&body, `<div class="demo"><img src="%s" alt="%s" style="max-width:100%%;height:auto;"/></div>`+"\n",
			img, html.EscapeString(ex.Name))
	}
	fmt.Fprintf(&body, "<p>%s</p>\n", html.EscapeString(d.Description))

	var meta []string
	if d.Equipment != nil {
		meta = append(meta, "Equipment: "+string(*d.Equipment))
	}
	if d.Difficulty != nil {
		meta = append(meta, "Difficulty: "+string(*d.Difficulty))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&body, "<p><em>%s</em></p>\n", html.EscapeString(strings.Join(meta, " · ")))
	}
	if len(d.Alternatives) > 0 {
		body.WriteString("<h2>Alternatives</h2>\n<ul>\n")
		for _, alt := range d.Alternatives {
			fmt.Fprintf(&body, "<li>%s</li>\n", html.EscapeString(alt))
		}
		body.WriteString("</ul>\n")
	}

	_, err := e.AddSection(body.String(), ex.Name, fmt.Sprintf("exercise-%03d.xhtml", i+1), "")
	return err
}

// image locates src in the asset dir through the fallback cascade, scales
// it for the device and adds it to the book. Missing or undecodable images
// are logged and skipped.
func (b *BookletBuilder) image(ctx context.Context, e *epub.Epub, tmpDir string, i int, src string, g catalog.Gender) (string, bool) {
	if !b.hasAssets || src == assets.PlaceholderPath {
		return "", false
	}
	loc, err := assets.Locate(ctx, b.prober, src, g, b.logger)
	if err != nil || loc.Placeholder {
		return "", false
	}

	f, err := os.Open(b.prober.Path(loc.Path))
	if err != nil {
		b.logger.Warn("failed to open exercise image", "path", loc.Path, "error", err)
		return "", false
	}
	defer f.Close()

	img, ext, err := b.processor.ProcessImage(f)
	if err != nil {
		b.logger.Warn("failed to process exercise image", "path", loc.Path, "error", err)
		return "", false
	}
	name := fmt.Sprintf("exercise-%03d%s", i+1, ext)
	tmp := filepath.Join(tmpDir, name)
	if err := os.WriteFile(tmp, img, 0644); err != nil {
		b.logger.Warn("failed to stage exercise image", "path", tmp, "error", err)
		return "", false
	}
	internal, err := e.AddImage(tmp, name)
	if err != nil {
		b.logger.Warn("failed to add exercise image", "path", tmp, "error", err)
		return "", false
	}
	return internal, true
}

func summary(w *data.Workout) string {
	var parts []string
	if w.FitnessGoal != "" {
		parts = append(parts, w.FitnessGoal)
	}
	if w.Difficulty != "" {
		parts = append(parts, w.Difficulty)
	}
	if w.WorkoutsPerWeek > 0 {
		parts = append(parts, fmt.Sprintf("%d sessions per week", w.WorkoutsPerWeek))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d exercises", len(w.Exercises))
	}
	return strings.Join(parts, ", ")
}

func prescription(ex data.WorkoutExercise) string {
	var parts []string
	if ex.Sets > 0 {
		reps := ex.Reps
		if reps == "" {
			reps = "?"
		}
		parts = append(parts, fmt.Sprintf("%d x %s", ex.Sets, reps))
	}
	if ex.Rest != "" {
		parts = append(parts, "rest "+ex.Rest)
	}
	if ex.Tempo != "" {
		parts = append(parts, "tempo "+ex.Tempo)
	}
	return strings.Join(parts, ", ")
}

func overviewHTML(w *data.Workout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(w.Title))
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(summary(w)))
	if len(w.TargetMuscles) > 0 {
		fmt.Fprintf(&b, "<p>Target muscles: %s</p>\n", html.EscapeString(strings.Join(w.TargetMuscles, ", ")))
	}
	if w.Duration != "" {
		fmt.Fprintf(&b, "<p>Duration: %s</p>\n", html.EscapeString(w.Duration))
	}
	b.WriteString("<ol>\n")
	for _, ex := range w.Exercises {
		fmt.Fprintf(&b, "<li>%s <small>%s</small></li>\n", html.EscapeString(ex.Name), html.EscapeString(prescription(ex)))
	}
	b.WriteString("</ol>\n")
	return b.String()
}

func dayHTML(day string, muscles []string, exercises []data.WorkoutExercise) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(day))
	if len(muscles) > 0 {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(strings.Join(muscles, ", ")))
	}
	if len(exercises) == 0 {
		b.WriteString("<p>Rest day.</p>\n")
		return b.String()
	}
	b.WriteString("<table>\n<tr><th>Exercise</th><th>Sets</th><th>Reps</th><th>Rest</th></tr>\n")
	for _, ex := range exercises {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(ex.Name), ex.Sets, html.EscapeString(ex.Reps), html.EscapeString(ex.Rest))
	}
	b.WriteString("</table>\n")
	return b.String()
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		return "workout"
	}
	return result
}
