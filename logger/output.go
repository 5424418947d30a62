package logger

// OutputCategory defines a category of CLI output that can be enabled or
// disabled independently of log severity.
//
// Verbosity Levels:
//
//	0 (default) - generated name report, errors, final status
//	1 (-v)      - + per-library progress, step timing
//	2 (-vv)     - + skipped candidates with reasons, loaded config
//	3 (-vvv)    - + every generated item
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Exported names
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Libraries processed
	OutputTiming   // Step durations

	// Level 2 (-vv) - Detailed
	OutputSkipped // Rejected candidates and naming failures
	OutputConfig  // Config values loaded

	// Level 3 (-vvv) - Trace
	OutputItems // Every item added to a database
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputTiming:   VerbosityInfo,

	OutputSkipped: VerbosityDebug,
	OutputConfig:  VerbosityDebug,

	OutputItems: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:    "results",
	OutputErrors:     "errors",
	OutputUserStatus: "status",
	OutputProgress:   "progress",
	OutputTiming:     "timing",
	OutputSkipped:    "skipped",
	OutputConfig:     "config",
	OutputItems:      "items",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
