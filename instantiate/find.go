// Package instantiate propagates concrete template instantiations through
// a library: discovery records every concrete class template usage, and
// application rewrites generic functions into concrete ones for them.
package instantiate

import (
	"context"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/database"
	"github.com/teranos/bindgen/ffi"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/pipeline"
)

// FindStep records the concrete instantiations used by the library.
func FindStep() pipeline.Step {
	return pipeline.Step{
		Name:      pipeline.StepFindTemplateInstantiations,
		DependsOn: []string{pipeline.StepParse},
		Run:       func(ctx context.Context, data *pipeline.Data) error { return Find(data) },
	}
}

// Find scans the items of the current database (never those of the
// dependencies) and records every class type with a concrete template
// argument list that is not yet known to the library or any dependency.
// Nested arguments are visited too, so QHash<QString, QVector<int>> also
// yields QVector<int>. Find is additive and idempotent.
func Find(data *pipeline.Data) error {
	db := data.Current()
	found := 0
	for _, item := range db.Items() {
		for _, t := range itemTypes(item) {
			var err error
			t.Walk(func(nested cxx.Type) bool {
				if err != nil {
					return false
				}
				c, ok := nested.Base.(cxx.ClassType)
				if !ok || !c.HasTemplateArguments() || nested.ContainsTemplateParameter() {
					return true
				}
				if data.View.HasInstantiation(cxx.InstantiationKey(c.Name, c.TemplateArguments)) {
					return true
				}
				ti := &cxx.TemplateInstantiation{
					ClassName:         c.Name,
					TemplateArguments: append([]cxx.Type(nil), c.TemplateArguments...),
				}
				if _, _, err = db.Add(database.SourceTemplateInstantiation, ti); err != nil {
					return false
				}
				found++
				data.Logger.Debugw("Found template instantiation", logger.FieldInstantiation, ti.String())
				return true
			})
			if err != nil {
				return err
			}
		}
	}
	data.Logger.Infow("Template instantiations found", logger.FieldCount, found)
	return nil
}

// itemTypes lists the top-level types an item mentions.
func itemTypes(item *database.Item) []cxx.Type {
	switch d := item.Data.(type) {
	case *cxx.Function:
		return d.AllInvolvedTypes()
	case *cxx.ClassDecl:
		return d.Bases
	case *cxx.TemplateInstantiation:
		return d.TemplateArguments
	case *cxx.EnumDecl, *ffi.Method:
		return nil
	default:
		return nil
	}
}
