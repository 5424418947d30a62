package pipeline

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// Registry holds the steps of one pipeline. A registry runs once.
type Registry struct {
	steps map[string]Step
	ran   bool
}

func NewRegistry() *Registry {
	return &Registry{steps: make(map[string]Step)}
}

// Register adds a step. Names are unique.
func (r *Registry) Register(step Step) error {
	if step.Name == "" {
		return errors.NewPipelineConfigError("step without name")
	}
	if step.Run == nil {
		return errors.NewPipelineConfigError("step %s has no run function", step.Name)
	}
	if r.ran {
		return errors.AssertionFailedf("step %s registered after the pipeline ran", step.Name)
	}
	if _, exists := r.steps[step.Name]; exists {
		return errors.NewPipelineConfigError("step %s registered twice", step.Name)
	}
	r.steps[step.Name] = step
	return nil
}

// MustRegister is Register for statically known steps.
func (r *Registry) MustRegister(steps ...Step) {
	for _, s := range steps {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// Names returns registered step names in lexicographic order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.steps))
	for name := range r.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Order returns the execution order: a topological sort of the
// prerequisite graph with lexicographic tie-breaking. An unregistered
// prerequisite or a cycle is a configuration error.
func (r *Registry) Order() ([]string, error) {
	indegree := make(map[string]int, len(r.steps))
	graph := make(map[string][]string)

	for _, name := range r.Names() {
		step := r.steps[name]
		for _, dep := range step.DependsOn {
			if _, ok := r.steps[dep]; !ok {
				return nil, errors.WithHint(
					errors.NewPipelineConfigError("step %s depends on unregistered step %s", name, dep),
					"register the prerequisite or remove it from DependsOn")
			}
			indegree[name]++
			graph[dep] = append(graph[dep], name)
		}
	}

	queue := make([]string, 0, len(r.steps))
	for name := range r.steps {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		for _, to := range graph[name] {
			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
		sort.Strings(queue)
	}

	if len(order) != len(r.steps) {
		var cyclic []string
		for _, name := range r.Names() {
			if indegree[name] > 0 {
				cyclic = append(cyclic, name)
			}
		}
		return nil, errors.NewPipelineConfigError("cyclic step dependencies among %s", strings.Join(cyclic, ", "))
	}
	return order, nil
}

// Run executes every step exactly once in Order. Configuration errors are
// reported before any step runs; the first failing step aborts the run.
// A second Run is an assertion failure.
func (r *Registry) Run(ctx context.Context, data *Data) error {
	if r.ran {
		return errors.AssertionFailedf("pipeline of %s already ran", data.Library())
	}
	order, err := r.Order()
	if err != nil {
		return err
	}
	r.ran = true

	ctx = logger.WithRunID(logger.WithLibrary(ctx, data.Library()), data.RunID)
	log := logger.LoggerFromContext(ctx, data.Logger)
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "pipeline stopped before step %s", name)
		}
		step := r.steps[name]
		start := time.Now()
		log.Debugw("Running step", logger.FieldStep, name, logger.FieldDependsOn, step.DependsOn)

		stepData := data.forStep(name)
		if err := step.Run(ctx, stepData); err != nil {
			log.Errorw("Step failed", logger.FieldStep, name, logger.FieldError, err)
			return errors.Wrapf(err, "step %s", name)
		}
		log.Infow("Step finished",
			logger.FieldStep, name,
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
			logger.FieldSkipped, data.Diagnostics.CountFor(name, SeveritySkip))
	}
	return nil
}
