package ffi

import (
	"path"
	"strings"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
)

// AllocationPlace tells where an object produced by the function lives.
type AllocationPlace int

const (
	NotApplicable AllocationPlace = iota
	// Stack: the caller provides storage through an output argument.
	Stack
	// Heap: the object is allocated by the callee and returned as a pointer.
	Heap
)

func (p AllocationPlace) String() string {
	switch p {
	case Stack:
		return "stack"
	case Heap:
		return "heap"
	default:
		return "not_applicable"
	}
}

// AllocationPlaces lists the variants exported for fn. Constructors,
// destructors and functions returning a class by value get one variant per
// storage strategy.
func AllocationPlaces(fn *cxx.Function) []AllocationPlace {
	if fn.IsConstructor() || fn.IsDestructor() || (fn.ReturnType.IsClassValue() && !returnsQFlags(fn)) {
		return []AllocationPlace{Stack, Heap}
	}
	return []AllocationPlace{NotApplicable}
}

func returnsQFlags(fn *cxx.Function) bool {
	c, ok := fn.ReturnType.AsClass()
	return ok && isQFlags(c)
}

// BaseName builds the undisambiguated exported name of fn.
//
// Members are scoped by their class caption, free functions by the base
// name of includeFile followed by "_G_". An empty includeFile falls back to
// the include file recorded on fn.
func BaseName(fn *cxx.Function, place AllocationPlace, includeFile string) (string, error) {
	scope, err := scopePrefix(fn, includeFile)
	if err != nil {
		return "", err
	}

	var name string
	switch {
	case fn.IsConstructor():
		switch place {
		case Stack:
			name = "constructor"
		case Heap:
			name = "new"
		default:
			return "", errors.NewNamingError("constructor %s requires an allocation place", fn.ShortText())
		}
		return scope + name, nil

	case fn.IsDestructor():
		switch place {
		case Stack:
			name = "destructor"
		case Heap:
			name = "delete"
		default:
			return "", errors.NewNamingError("destructor %s requires an allocation place", fn.ShortText())
		}
		return scope + name, nil

	case fn.Operator != nil:
		if fn.Operator.IsConversion() {
			if fn.Operator.ConversionType == nil {
				return "", errors.AssertionFailedf("conversion operator %s without target type", fn.ShortText())
			}
			target, err := fn.Operator.ConversionType.Caption(cxx.CaptionFull)
			if err != nil {
				return "", errors.Wrapf(err, "conversion operator %s", fn.ShortText())
			}
			name = "convert_to_" + target
		} else {
			token, err := fn.Operator.Kind.Token()
			if err != nil {
				return "", err
			}
			name = "operator_" + token
		}

	default:
		name = cxx.ScopeToIdentifier(fn.Name)
	}

	switch place {
	case Stack:
		name += "_to_output"
	case Heap:
		name += "_as_ptr"
	}
	return scope + name, nil
}

func scopePrefix(fn *cxx.Function, includeFile string) (string, error) {
	if fn.Member != nil {
		c, err := fn.Member.ClassType.Caption()
		if err != nil {
			return "", errors.Wrapf(err, "class of %s", fn.ShortText())
		}
		return c + "_", nil
	}
	if includeFile == "" {
		includeFile = fn.IncludeFile
	}
	include := IncludeBaseName(includeFile)
	if include == "" {
		return "", errors.NewNamingError("free function %s has no include file", fn.ShortText())
	}
	return include + "_G_", nil
}

// IncludeBaseName turns "QtCore/qrect.h" into "qrect".
func IncludeBaseName(includeFile string) string {
	base := path.Base(strings.ReplaceAll(includeFile, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return identifierSafe(base)
}

// identifierSafe replaces every character that cannot appear in a C
// identifier with '_'.
func identifierSafe(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
