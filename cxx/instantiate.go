package cxx

import (
	"github.com/teranos/bindgen/errors"
)

// Instantiate replaces every template parameter at nestedLevel with the
// corresponding element of args. Parameters of other levels are left
// untouched, which is what makes member templates of class templates work:
// each scope is substituted on its own.
//
// An index outside args is an assertion failure; callers are expected to
// check arity first. Substituting a pointer into a reference or pointer
// slot that the flat indirection model cannot express is a candidate
// rejection.
func (t Type) Instantiate(nestedLevel int, args []Type) (Type, error) {
	switch b := t.Base.(type) {
	case TemplateParameter:
		if b.NestedLevel != nestedLevel {
			return t, nil
		}
		if b.Index < 0 || b.Index >= len(args) {
			return Type{}, errors.AssertionFailedf(
				"template parameter %s (level %d, index %d) is out of range for %d template arguments",
				b.DisplayName(), b.NestedLevel, b.Index, len(args))
		}
		return substitute(t, args[b.Index])

	case ClassType:
		if len(b.TemplateArguments) == 0 {
			return t, nil
		}
		newArgs, err := instantiateAll(b.TemplateArguments, nestedLevel, args)
		if err != nil {
			return Type{}, err
		}
		b.TemplateArguments = newArgs
		t.Base = b
		return t, nil

	case FunctionPointer:
		ret, err := b.Return.Instantiate(nestedLevel, args)
		if err != nil {
			return Type{}, err
		}
		newArgs, err := instantiateAll(b.Arguments, nestedLevel, args)
		if err != nil {
			return Type{}, err
		}
		b.Return = ret
		b.Arguments = newArgs
		t.Base = b
		return t, nil

	case Void, Numeric, Enum:
		return t, nil

	default:
		return Type{}, errors.AssertionFailedf("unknown type base %T", t.Base)
	}
}

// Instantiate substitutes the template parameters of nestedLevel inside
// the class template arguments.
func (c ClassType) Instantiate(nestedLevel int, args []Type) (ClassType, error) {
	t, err := c.Type().Instantiate(nestedLevel, args)
	if err != nil {
		return ClassType{}, err
	}
	return t.Base.(ClassType), nil
}

// InstantiateAll substitutes nestedLevel parameters in every type of types.
func InstantiateAll(types []Type, nestedLevel int, args []Type) ([]Type, error) {
	return instantiateAll(types, nestedLevel, args)
}

func instantiateAll(types []Type, nestedLevel int, args []Type) ([]Type, error) {
	if types == nil {
		return nil, nil
	}
	out := make([]Type, len(types))
	for i, arg := range types {
		r, err := arg.Instantiate(nestedLevel, args)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// substitute places arg into the slot held by the placeholder outer,
// merging qualifiers and indirection.
func substitute(outer, arg Type) (Type, error) {
	r := arg
	switch {
	case outer.Indirection == IndirectionNone:
		if outer.IsConst {
			if arg.Indirection == IndirectionNone {
				r.IsConst = true
			} else {
				r.IsConst2 = true
			}
		}
	case arg.Indirection == IndirectionNone:
		r.Indirection = outer.Indirection
		r.IsConst = arg.IsConst || outer.IsConst
		r.IsConst2 = outer.IsConst2
	case arg.Indirection == IndirectionPtr && (outer.IsConst || arg.IsConst2):
		// T* const* and T* const& have no flat spelling.
		return Type{}, errors.Rejectf("cannot substitute %s into %s: the inner pointer would lose its const qualifier",
			arg.ToCode(), outer.ToCode())
	case outer.Indirection == IndirectionPtr && arg.Indirection == IndirectionPtr:
		r.Indirection = IndirectionPtrPtr
		r.IsConst2 = outer.IsConst2
	case outer.Indirection == IndirectionRef && arg.Indirection == IndirectionPtr:
		r.Indirection = IndirectionPtrRef
		r.IsConst2 = false
	default:
		return Type{}, errors.Rejectf("cannot substitute %s into %s: unsupported indirection %s over %s",
			arg.ToCode(), outer.ToCode(), outer.Indirection, arg.Indirection)
	}
	return r, nil
}
