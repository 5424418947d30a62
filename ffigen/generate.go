// Package ffigen turns the concrete functions of a library into boundary
// methods with unique exported names.
package ffigen

import (
	"context"

	"github.com/teranos/bindgen/database"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/ffi"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/pipeline"
)

// GenerateStep produces the boundary methods once all instantiations are
// applied. defaultInclude names free functions that carry no include file.
func GenerateStep(defaultInclude string) pipeline.Step {
	return pipeline.Step{
		Name:      pipeline.StepGenerateFFI,
		DependsOn: []string{pipeline.StepInstantiateTemplates},
		Run: func(ctx context.Context, data *pipeline.Data) error {
			return Generate(ctx, data, defaultInclude)
		},
	}
}

// Generate builds one method per allocation place of every concrete
// function in the current database, disambiguates their names and stores
// them. Functions that cannot cross the boundary are reported as skips.
// Running it on a database that already holds methods is a no-op.
func Generate(ctx context.Context, data *pipeline.Data, defaultInclude string) error {
	db := data.Current()
	if len(db.Methods()) > 0 {
		data.Logger.Debugw("FFI methods already generated")
		return nil
	}

	var methods []*ffi.Method
	for _, fn := range db.Functions() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fn.IsGeneric() {
			continue
		}
		include := fn.IncludeFile
		if include == "" {
			include = defaultInclude
		}
		ms, err := ffi.NewMethods(fn, include)
		if err != nil {
			if errors.IsFatal(err) {
				return errors.Wrapf(err, "generating methods for %s", fn.ShortText())
			}
			data.Report(fn.ShortText(), err)
			continue
		}
		methods = append(methods, ms...)
	}

	if renamed := ffi.Disambiguate(methods); renamed > 0 {
		data.Logger.Warnw("Numeric suffixes used for colliding names", logger.FieldCount, renamed)
	}

	seen := make(map[string]*ffi.Method, len(methods))
	for _, m := range methods {
		if prev, ok := seen[m.Name]; ok {
			return errors.AssertionFailedf("exported name %s used by %s and %s", m.Name, prev, m)
		}
		seen[m.Name] = m
		if _, _, err := db.Add(database.SourceFFIGeneration, m); err != nil {
			return err
		}
		data.Logger.Debugw("Generated method", logger.FieldMethod, m.Name, logger.FieldFunction, m.CppFunction.ShortText())
	}
	data.Logger.Infow("FFI methods generated", logger.FieldCount, len(methods))
	return nil
}
