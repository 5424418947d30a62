package instantiate

import (
	"context"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/database"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/pipeline"
)

// ApplyStep generates concrete functions from generic ones.
func ApplyStep(policy Policy) pipeline.Step {
	return pipeline.Step{
		Name:      pipeline.StepInstantiateTemplates,
		DependsOn: []string{pipeline.StepFindTemplateInstantiations},
		Run:       func(ctx context.Context, data *pipeline.Data) error { return Apply(data, policy) },
	}
}

// occurrence is a class type in a generic signature whose template
// argument list is exactly the parameters (level, 0) .. (level, n-1).
type occurrence struct {
	className string
	level     int
	arity     int
}

// Apply rewrites every generic function of the library and its
// dependencies for the instantiations recorded by the library. Generated
// functions are added to the current database. Rejected candidates are
// reported as skips; assertion failures abort.
func Apply(data *pipeline.Data, policy Policy) error {
	db := data.Current()

	byClass := make(map[string][]*cxx.TemplateInstantiation)
	for _, ti := range db.Instantiations() {
		byClass[ti.ClassName] = append(byClass[ti.ClassName], ti)
	}

	generated := 0
	for _, fn := range data.View.AllFunctions() {
		if !fn.IsGeneric() {
			continue
		}
		for _, occ := range occurrences(fn) {
			for _, ti := range byClass[occ.className] {
				concrete, err := Instantiate(fn, occ.level, ti, data.View)
				if err != nil {
					if errors.IsFatal(err) {
						return errors.Wrapf(err, "instantiating %s with %s", fn.ShortText(), ti)
					}
					data.Report(fn.ShortText()+" with "+ti.String(), err)
					if policy == FirstMatch {
						break
					}
					continue
				}
				// A signature already declared or generated anywhere in the
				// view still counts as a match.
				if !data.View.HasFunction(concrete.Key()) {
					if _, _, err := db.Add(database.SourceTemplateInstantiation, concrete); err != nil {
						return err
					}
					generated++
					data.Logger.Debugw("Instantiated function",
						logger.FieldFunction, concrete.ShortText(),
						logger.FieldInstantiation, ti.String())
				}
				if policy != AllMatches {
					break
				}
			}
		}
	}
	data.Logger.Infow("Template instantiations applied", logger.FieldCount, generated)
	return nil
}

// occurrences lists the generic class occurrences of fn in signature order.
func occurrences(fn *cxx.Function) []occurrence {
	var r []occurrence
	seen := make(map[occurrence]bool)
	for _, t := range fn.AllInvolvedTypes() {
		t.Walk(func(nested cxx.Type) bool {
			c, ok := nested.Base.(cxx.ClassType)
			if !ok || !c.AllArgumentsAreParameters() {
				return true
			}
			level := c.TemplateArguments[0].Base.(cxx.TemplateParameter).NestedLevel
			if !cxx.ParametersAt(c.TemplateArguments, level) {
				return true
			}
			occ := occurrence{className: c.Name, level: level, arity: len(c.TemplateArguments)}
			if !seen[occ] {
				seen[occ] = true
				r = append(r, occ)
			}
			return true
		})
	}
	return r
}

// Instantiate substitutes the parameters at level in fn with the arguments
// of ti and validates the result against the instantiations known to view.
// Passing a nil view skips the availability check.
func Instantiate(fn *cxx.Function, level int, ti *cxx.TemplateInstantiation, view *database.View) (*cxx.Function, error) {
	args := ti.TemplateArguments

	if arity, ok := arityAt(fn, level, ti.ClassName); ok && arity != len(args) {
		return nil, errors.Rejectf("arity mismatch: %s has %d template parameters at level %d, %s has %d arguments",
			fn.QualifiedName(), arity, level, ti, len(args))
	}
	if own := fn.TemplateArguments; own != nil && own.NestedLevel == level && len(own.Types) != len(args) {
		return nil, errors.Rejectf("arity mismatch: %s has %d own template parameters, %s has %d arguments",
			fn.QualifiedName(), len(own.Types), ti, len(args))
	}
	if used := parameterCount(fn, level); used > len(args) {
		return nil, errors.Rejectf("arity mismatch: %s uses %d template parameters at level %d, %s has %d arguments",
			fn.QualifiedName(), used, level, ti, len(args))
	}

	r := fn.Clone()
	for i := range r.Arguments {
		t, err := r.Arguments[i].Type.Instantiate(level, args)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		r.Arguments[i].Type = t
	}

	rt, err := r.ReturnType.Instantiate(level, args)
	if err != nil {
		return nil, errors.Wrap(err, "return type")
	}
	r.ReturnType = rt

	if r.Member != nil {
		c, err := r.Member.ClassType.Instantiate(level, args)
		if err != nil {
			return nil, errors.Wrap(err, "class type")
		}
		r.Member.ClassType = c
	}

	if r.Operator != nil && r.Operator.ConversionType != nil {
		target, err := r.Operator.ConversionType.Instantiate(level, args)
		if err != nil {
			return nil, errors.Wrap(err, "conversion target")
		}
		r.Operator.ConversionType = &target
		r.Name = "operator " + target.ToCode()
	}

	if r.TemplateArguments != nil {
		if r.TemplateArguments.NestedLevel == level {
			r.TemplateArguments.Types = append([]cxx.Type(nil), args...)
		} else {
			types, err := cxx.InstantiateAll(r.TemplateArguments.Types, level, args)
			if err != nil {
				return nil, errors.Wrap(err, "template arguments")
			}
			r.TemplateArguments.Types = types
		}
	}

	for _, t := range r.AllInvolvedTypes() {
		if t.ContainsTemplateParameter() {
			return nil, errors.Rejectf("%s still contains a template parameter after applying %s", t.ToCode(), ti)
		}
	}

	if missing, ok := firstUnavailable(r, view); ok {
		return nil, errors.Rejectf("type %s is not available for %s", missing, r.ShortText())
	}
	return r, nil
}

// arityAt returns the parameter count of the first occurrence of
// className at level in fn.
func arityAt(fn *cxx.Function, level int, className string) (int, bool) {
	for _, occ := range occurrences(fn) {
		if occ.className == className && occ.level == level {
			return occ.arity, true
		}
	}
	return 0, false
}

// parameterCount returns one more than the highest parameter index used at
// level anywhere in fn.
func parameterCount(fn *cxx.Function, level int) int {
	n := 0
	for _, t := range fn.AllInvolvedTypes() {
		t.Walk(func(nested cxx.Type) bool {
			if p, ok := nested.Base.(cxx.TemplateParameter); ok && p.NestedLevel == level && p.Index+1 > n {
				n = p.Index + 1
			}
			return true
		})
	}
	return n
}

// firstUnavailable returns the first class template usage in fn that is
// not a known instantiation. A nil view accepts everything.
func firstUnavailable(fn *cxx.Function, view *database.View) (string, bool) {
	if view == nil {
		return "", false
	}
	var missing string
	for _, t := range fn.AllInvolvedTypes() {
		t.Walk(func(nested cxx.Type) bool {
			if missing != "" {
				return false
			}
			c, ok := nested.Base.(cxx.ClassType)
			if !ok || !c.HasTemplateArguments() {
				return true
			}
			if !view.HasInstantiation(cxx.InstantiationKey(c.Name, c.TemplateArguments)) {
				missing = c.ToCode()
				return false
			}
			return true
		})
		if missing != "" {
			return missing, true
		}
	}
	return "", false
}
