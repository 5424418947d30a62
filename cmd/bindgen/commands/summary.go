package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/teranos/bindgen/database"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/pipeline"
	"github.com/teranos/bindgen/workspace"
)

// writeRunSummary prints the per-library lines that verbosity enables.
// Each line is prefixed with its output category.
func writeRunSummary(w io.Writer, verbosity int, results []*workspace.Result) {
	line := func(category logger.OutputCategory, format string, args ...any) {
		if logger.ShouldOutput(verbosity, category) {
			fmt.Fprintf(w, "[%s] "+format+"\n", append([]any{logger.CategoryName(category)}, args...)...)
		}
	}

	for _, r := range results {
		line(logger.OutputProgress, "%s %s: %d methods, %d instantiated functions, %d skipped",
			r.Library, r.Version, len(r.Database.Methods()), r.Count(database.SourceTemplateInstantiation), r.SkipCount())
		line(logger.OutputTiming, "%s: %s", r.Library, r.Duration.Round(time.Millisecond))

		for _, d := range r.Diagnostics {
			category := logger.OutputSkipped
			if d.Severity == pipeline.SeverityFailure {
				category = logger.OutputErrors
			}
			line(category, "%s %s: %s: %v", r.Library, d.Step, d.Subject, d.Err)
		}

		for _, item := range r.Database.Items() {
			if item.Source != database.SourceParser {
				line(logger.OutputItems, "%s", item)
			}
		}
	}
}
