package cxx

import (
	"strings"

	"github.com/teranos/bindgen/errors"
)

// TypeCaptionStrategy selects how much of a type ends up in its caption.
type TypeCaptionStrategy int

const (
	// CaptionShort drops indirection and const qualifiers and collapses
	// function pointers to "func".
	CaptionShort TypeCaptionStrategy = iota
	// CaptionFull encodes everything that distinguishes two types.
	CaptionFull
)

func (s TypeCaptionStrategy) String() string {
	if s == CaptionFull {
		return "full"
	}
	return "short"
}

// Caption renders t as an identifier fragment. Template parameters have no
// caption: only concrete types reach the boundary.
func (t Type) Caption(strategy TypeCaptionStrategy) (string, error) {
	var r string
	switch b := t.Base.(type) {
	case Void:
		r = "void"
	case Numeric:
		r = strings.ReplaceAll(b.Kind.String(), " ", "_")
	case Enum:
		r = ScopeToIdentifier(b.Name)
	case ClassType:
		c, err := b.Caption()
		if err != nil {
			return "", err
		}
		r = c
	case FunctionPointer:
		if strategy == CaptionShort {
			r = "func"
			break
		}
		ret, err := b.Return.Caption(strategy)
		if err != nil {
			return "", err
		}
		parts := []string{ret, "func"}
		for _, arg := range b.Arguments {
			c, err := arg.Caption(strategy)
			if err != nil {
				return "", err
			}
			parts = append(parts, c)
		}
		r = strings.Join(parts, "_")
	case TemplateParameter:
		return "", errors.NewUnsupportedTypeError("template parameter %s has no caption", b.DisplayName())
	default:
		return "", errors.AssertionFailedf("unknown type base %T", t.Base)
	}

	if strategy == CaptionFull {
		if t.Indirection != IndirectionNone {
			r += "_" + t.Indirection.String()
		}
		if t.IsConst {
			r = "const_" + r
		}
	}
	return r, nil
}

// Caption renders the class name with scopes flattened and template
// arguments appended at full fidelity: QVector<int> -> "QVector_int".
func (c ClassType) Caption() (string, error) {
	name := ScopeToIdentifier(c.Name)
	if len(c.TemplateArguments) == 0 {
		return name, nil
	}
	parts := []string{name}
	for _, arg := range c.TemplateArguments {
		s, err := arg.Caption(CaptionFull)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "_"), nil
}

// ScopeToIdentifier rewrites C++ scope separators for use in identifiers.
func ScopeToIdentifier(name string) string {
	return strings.ReplaceAll(name, "::", "_")
}
