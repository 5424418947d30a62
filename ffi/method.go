package ffi

import (
	"fmt"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
)

// Method is an exported C-compatible function wrapping one concrete C++
// function for one allocation place.
type Method struct {
	// Name is the final exported identifier. It equals BaseName until
	// Disambiguate runs.
	Name            string
	BaseName        string
	AllocationPlace AllocationPlace
	Signature       Signature
	CppFunction     *cxx.Function
	// Strategy is the caption strategy chosen by Disambiguate, if any.
	Strategy *MethodCaptionStrategy
}

func (m *Method) String() string {
	return fmt.Sprintf("%s [%s] -> %s", m.CppFunction.ShortText(), m.AllocationPlace, m.Name)
}

// NewMethod builds the exported form of fn. fn must be concrete.
func NewMethod(fn *cxx.Function, place AllocationPlace, includeFile string) (*Method, error) {
	if fn.IsGeneric() {
		return nil, errors.NewUnsupportedTypeError("generic function %s cannot be exported", fn.ShortText())
	}
	if fn.Variadic {
		return nil, errors.NewUnsupportedTypeError("variadic function %s cannot be exported", fn.ShortText())
	}
	base, err := BaseName(fn, place, includeFile)
	if err != nil {
		return nil, err
	}
	sig, err := buildSignature(fn, place)
	if err != nil {
		return nil, errors.Wrapf(err, "signature of %s", fn.ShortText())
	}
	return &Method{
		Name:            base,
		BaseName:        base,
		AllocationPlace: place,
		Signature:       sig,
		CppFunction:     fn,
	}, nil
}

// NewMethods builds one method per allocation place of fn.
func NewMethods(fn *cxx.Function, includeFile string) ([]*Method, error) {
	var r []*Method
	for _, place := range AllocationPlaces(fn) {
		m, err := NewMethod(fn, place, includeFile)
		if err != nil {
			return nil, err
		}
		r = append(r, m)
	}
	return r, nil
}

func buildSignature(fn *cxx.Function, place AllocationPlace) (Signature, error) {
	var sig Signature
	class, isMember := fn.ClassType()

	if isMember && !fn.IsStatic() && !fn.IsConstructor() {
		object := class.Type()
		if fn.Member.IsConst {
			object = object.Const()
		}
		t, err := ToFFI(object, RoleNotApplicable)
		if err != nil {
			return Signature{}, errors.Wrap(err, "this pointer")
		}
		sig.Arguments = append(sig.Arguments, Argument{Name: "this_ptr", Type: t, Meaning: This()})
	}

	for i, arg := range fn.Arguments {
		t, err := ToFFI(arg.Type, RoleArgument)
		if err != nil {
			return Signature{}, errors.Wrapf(err, "argument %d", i+1)
		}
		name := identifierSafe(arg.Name)
		if name == "" {
			name = fmt.Sprintf("arg%d", i+1)
		}
		sig.Arguments = append(sig.Arguments, Argument{Name: name, Type: t, Meaning: ArgumentAt(i)})
	}

	switch {
	case fn.IsConstructor():
		classType := class.Type()
		produced := Type{Original: classType, FFI: classType.Ptr(), Conversion: ValueToPointer}
		switch place {
		case Stack:
			sig.Arguments = append(sig.Arguments, Argument{Name: "output", Type: produced, Meaning: ReturnValue()})
			sig.ReturnType = Void()
		case Heap:
			sig.ReturnType = produced
		default:
			return Signature{}, errors.NewNamingError("constructor without allocation place")
		}

	case fn.IsDestructor():
		sig.ReturnType = Void()

	default:
		rt, err := ToFFI(fn.ReturnType, RoleReturnType)
		if err != nil {
			return Signature{}, errors.Wrap(err, "return type")
		}
		if rt.Conversion == ValueToPointer {
			switch place {
			case Stack:
				sig.Arguments = append(sig.Arguments, Argument{Name: "output", Type: rt, Meaning: ReturnValue()})
				rt = Void()
			case Heap:
			default:
				return Signature{}, errors.NewNamingError("class value return needs an allocation place")
			}
		}
		sig.ReturnType = rt
	}
	return sig, nil
}
