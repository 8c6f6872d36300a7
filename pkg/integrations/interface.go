package integrations

import (
	"context"

	"github.com/kerbaras/fitguide/pkg/data"
)

// Exporter renders a saved workout into a file under dir and returns its
// path.
type Exporter interface {
	Export(ctx context.Context, w *data.Workout, dir string) (string, error)
	Extension() string
}

// ExporterFor returns the exporter registered for format ("epub", "xlsx").
func ExporterFor(format string, cfg ExportConfig) (Exporter, bool) {
	switch format {
	case "epub":
		return NewBookletBuilder(cfg), true
	case "xlsx", "excel":
		return NewSheetExporter(cfg.Catalog), true
	}
	return nil, false
}

// Formats lists the names accepted by ExporterFor.
var Formats = []string{"epub", "xlsx"}
