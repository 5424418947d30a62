// Package ffi converts concrete C++ signatures into the flat, C-compatible
// boundary: boundary-safe types, exported identifiers and the captions used
// to tell overloads apart.
package ffi

import (
	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
)

// Conversion is the rule that turns an original value into its boundary form.
type Conversion int

const (
	// NoChange: the type crosses the boundary as is.
	NoChange Conversion = iota
	// ValueToPointer: a class value is passed as a pointer to it.
	ValueToPointer
	// ReferenceToPointer: a reference is passed as a pointer.
	ReferenceToPointer
	// QFlagsToUInt: a QFlags<Enum> value is passed as its unsigned int mask.
	QFlagsToUInt
)

func (c Conversion) String() string {
	switch c {
	case ValueToPointer:
		return "value_to_pointer"
	case ReferenceToPointer:
		return "reference_to_pointer"
	case QFlagsToUInt:
		return "qflags_to_uint"
	default:
		return "no_change"
	}
}

// Role is the position a type occupies in a signature.
type Role int

const (
	// RoleNotApplicable is the implicit object: a class is passed by
	// pointer with its own constness and never converted to a scalar.
	RoleNotApplicable Role = iota
	RoleArgument
	RoleReturnType
)

// Type pairs an original type with its boundary representation.
type Type struct {
	Original   cxx.Type
	FFI        cxx.Type
	Conversion Conversion
}

// Void is the absent return value.
func Void() Type {
	return Type{Original: cxx.VoidType(), FFI: cxx.VoidType(), Conversion: NoChange}
}

// IsVoid reports whether the boundary type is void.
func (t Type) IsVoid() bool {
	return t.FFI.IsVoid()
}

// ToFFI maps a concrete type to a boundary-safe type: a scalar, a pointer,
// or a function pointer made of those.
func ToFFI(t cxx.Type, role Role) (Type, error) {
	if t.ContainsTemplateParameter() {
		return Type{}, errors.NewUnsupportedTypeError("template parameters cannot cross the boundary: %s", t.ToCode())
	}
	unchanged := Type{Original: t, FFI: t, Conversion: NoChange}

	switch b := t.Base.(type) {
	case cxx.Void:
		switch t.Indirection {
		case cxx.IndirectionNone:
			if role != RoleReturnType {
				return Type{}, errors.NewUnsupportedTypeError("void is only valid as a return type")
			}
			return unchanged, nil
		case cxx.IndirectionPtr, cxx.IndirectionPtrPtr:
			return unchanged, nil
		default:
			return Type{}, errors.NewUnsupportedTypeError("unsupported indirection of void: %s", t.ToCode())
		}

	case cxx.Numeric, cxx.Enum:
		return convertIndirection(t)

	case cxx.FunctionPointer:
		if t.Indirection != cxx.IndirectionNone {
			return Type{}, errors.NewUnsupportedTypeError("indirection of function pointers is not supported: %s", t.ToCode())
		}
		components := append([]cxx.Type{b.Return}, b.Arguments...)
		for i, component := range components {
			componentRole := RoleArgument
			if i == 0 {
				componentRole = RoleReturnType
			}
			c, err := ToFFI(component, componentRole)
			if err != nil {
				return Type{}, errors.Wrapf(err, "function pointer %s", t.ToCode())
			}
			if c.Conversion != NoChange {
				return Type{}, errors.NewUnsupportedTypeError("function pointer component %s needs conversion", component.ToCode())
			}
		}
		return unchanged, nil

	case cxx.ClassType:
		if role != RoleNotApplicable && isQFlags(b) && (t.Indirection == cxx.IndirectionNone || (t.Indirection == cxx.IndirectionRef && t.IsConst)) {
			return Type{Original: t, FFI: cxx.NumericType(cxx.UInt), Conversion: QFlagsToUInt}, nil
		}
		if t.Indirection == cxx.IndirectionNone {
			ffiType := t
			ffiType.Indirection = cxx.IndirectionPtr
			ffiType.IsConst2 = false
			// Arguments are never modified through the pointer; return
			// values are owned by the caller.
			switch role {
			case RoleArgument:
				ffiType.IsConst = true
			case RoleReturnType:
				ffiType.IsConst = false
			}
			return Type{Original: t, FFI: ffiType, Conversion: ValueToPointer}, nil
		}
		return convertIndirection(t)

	case cxx.TemplateParameter:
		return Type{}, errors.AssertionFailedf("template parameter %s passed the containment check", b.DisplayName())

	default:
		return Type{}, errors.AssertionFailedf("unknown type base %T", t.Base)
	}
}

// convertIndirection rewrites references as pointers and keeps everything else.
func convertIndirection(t cxx.Type) (Type, error) {
	ffiType := t
	switch t.Indirection {
	case cxx.IndirectionNone, cxx.IndirectionPtr, cxx.IndirectionPtrPtr:
		return Type{Original: t, FFI: t, Conversion: NoChange}, nil
	case cxx.IndirectionRef:
		ffiType.Indirection = cxx.IndirectionPtr
	case cxx.IndirectionPtrRef:
		ffiType.Indirection = cxx.IndirectionPtrPtr
	default:
		return Type{}, errors.NewUnsupportedTypeError("unsupported indirection %s: %s", t.Indirection, t.ToCode())
	}
	ffiType.IsConst2 = false
	return Type{Original: t, FFI: ffiType, Conversion: ReferenceToPointer}, nil
}

func isQFlags(c cxx.ClassType) bool {
	if c.Name != "QFlags" || len(c.TemplateArguments) != 1 {
		return false
	}
	arg := c.TemplateArguments[0]
	_, isEnum := arg.Base.(cxx.Enum)
	return isEnum && arg.Indirection == cxx.IndirectionNone
}
