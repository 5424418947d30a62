package workspace

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/bindgen/database"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/ffigen"
	"github.com/teranos/bindgen/instantiate"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/pipeline"
)

// Options control how libraries are processed.
type Options struct {
	Policy instantiate.Policy
	// DefaultIncludeFile applies to libraries that do not set their own.
	DefaultIncludeFile string
	// Parallel bounds how many independent libraries run at once.
	// Values below 1 mean one at a time.
	Parallel int
}

// Result is the outcome of processing one library.
type Result struct {
	Library     string
	Version     string
	RunID       string
	Database    *database.Database
	Diagnostics []pipeline.Diagnostic
	Duration    time.Duration
}

// Count returns the number of items with the given provenance.
func (r *Result) Count(source database.Source) int {
	n := 0
	for _, item := range r.Database.Items() {
		if item.Source == source {
			n++
		}
	}
	return n
}

// SkipCount returns the number of skipped candidates.
func (r *Result) SkipCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == pipeline.SeveritySkip {
			n++
		}
	}
	return n
}

// Workspace drives the pipeline over every library of a manifest.
type Workspace struct {
	manifest *Manifest
	opts     Options
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	results map[string]*Result
}

// New creates a workspace. A nil log uses the global logger.
func New(manifest *Manifest, opts Options, log *zap.SugaredLogger) *Workspace {
	if log == nil {
		log = logger.ComponentLogger("workspace")
	}
	return &Workspace{
		manifest: manifest,
		opts:     opts,
		logger:   log,
		results:  make(map[string]*Result),
	}
}

// Run processes all libraries. Libraries in the same wave run
// concurrently up to Options.Parallel; a wave starts only after the
// previous one is complete and frozen. Results are returned in processing
// order. The first library error cancels the rest.
func (w *Workspace) Run(ctx context.Context) ([]*Result, error) {
	waves, err := w.manifest.Waves()
	if err != nil {
		return nil, err
	}

	limit := w.opts.Parallel
	if limit < 1 {
		limit = 1
	}

	var ordered []*Result
	for i, wave := range waves {
		w.logger.Debugw("Processing wave", "wave", i+1, logger.FieldCount, len(wave))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(limit)
		for _, lib := range wave {
			lib := lib
			g.Go(func() error {
				res, err := w.process(gctx, lib)
				if err != nil {
					return errors.Wrapf(err, "library %s", lib.Name)
				}
				w.mu.Lock()
				w.results[lib.Name] = res
				w.mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for _, lib := range wave {
			ordered = append(ordered, w.results[lib.Name])
		}
	}
	return ordered, nil
}

// Result returns the result of a processed library.
func (w *Workspace) Result(name string) (*Result, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.results[name]
	return r, ok
}

func (w *Workspace) process(ctx context.Context, lib Library) (*Result, error) {
	start := time.Now()

	fixture, err := database.LoadFixtureFile(w.manifest.FixturePath(lib))
	if err != nil {
		return nil, err
	}
	if fixture.Library != "" && fixture.Library != lib.Name {
		return nil, errors.NewInvalidInputError("fixture declares library %s", fixture.Library)
	}
	version := lib.Version
	if version == "" {
		version = fixture.Version
	}

	deps, err := w.dependencies(lib)
	if err != nil {
		return nil, err
	}
	db := database.New(lib.Name)
	view, err := database.NewView(db, deps...)
	if err != nil {
		return nil, err
	}

	include := lib.DefaultIncludeFile
	if include == "" {
		include = w.opts.DefaultIncludeFile
	}

	data := pipeline.NewData(view, logger.ChildLogger(w.logger, logger.FieldVersion, version))
	if err := NewRegistry(fixture, w.opts.Policy, include).Run(ctx, data); err != nil {
		return nil, err
	}
	db.Freeze()

	res := &Result{
		Library:     lib.Name,
		Version:     version,
		RunID:       data.RunID,
		Database:    db,
		Diagnostics: data.Diagnostics.All(),
		Duration:    time.Since(start),
	}
	w.logger.Infow("Library processed",
		logger.FieldLibrary, lib.Name,
		logger.FieldRunID, data.RunID,
		logger.FieldCount, len(db.Methods()),
		logger.FieldSkipped, res.SkipCount(),
		logger.FieldDurationMS, res.Duration.Milliseconds())
	return res, nil
}

// dependencies returns the frozen databases lib can see: its direct and
// transitive dependencies, nearest first.
func (w *Workspace) dependencies(lib Library) ([]*database.Database, error) {
	var deps []*database.Database
	seen := map[string]bool{lib.Name: true}
	queue := lib.DependencyNames()
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		res, ok := w.Result(name)
		if !ok {
			return nil, errors.AssertionFailedf("dependency %s of %s has not been processed", name, lib.Name)
		}
		deps = append(deps, res.Database)

		if depLib, ok := w.manifest.Library(name); ok {
			queue = append(queue, depLib.DependencyNames()...)
		}
	}
	return deps, nil
}

// NewRegistry assembles the standard pipeline for one library: the
// fixture stands in for the parser output.
func NewRegistry(fixture *database.Fixture, policy instantiate.Policy, defaultInclude string) *pipeline.Registry {
	r := pipeline.NewRegistry()
	r.MustRegister(
		ParseStep(fixture),
		instantiate.FindStep(),
		instantiate.ApplyStep(policy),
		ffigen.GenerateStep(defaultInclude),
	)
	return r
}

// ParseStep loads fixture declarations into the current database.
func ParseStep(fixture *database.Fixture) pipeline.Step {
	return pipeline.Step{
		Name: pipeline.StepParse,
		Run: func(ctx context.Context, data *pipeline.Data) error {
			if err := fixture.Load(data.Current()); err != nil {
				return err
			}
			data.Logger.Infow("Declarations loaded", logger.FieldCount, data.Current().Len())
			return nil
		},
	}
}
