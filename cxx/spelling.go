package cxx

import (
	"fmt"
	"strings"
)

// ToCode returns the canonical C++ spelling of t, e.g. "const QPoint&",
// "QVector<int>" or "int (*)(int, bool*)".
func (t Type) ToCode() string {
	if fp, ok := t.Base.(FunctionPointer); ok {
		return fp.toCode(t.Indirection)
	}
	var b strings.Builder
	if t.IsConst {
		b.WriteString("const ")
	}
	b.WriteString(baseToCode(t.Base))
	b.WriteString(indirectionCode(t.Indirection))
	if t.IsConst2 && t.Indirection != IndirectionNone {
		b.WriteString(" const")
	}
	return b.String()
}

func baseToCode(base Base) string {
	switch b := base.(type) {
	case Void:
		return "void"
	case Numeric:
		return b.Kind.String()
	case Enum:
		return b.Name
	case ClassType:
		return b.ToCode()
	case TemplateParameter:
		return b.DisplayName()
	case FunctionPointer:
		return b.toCode(IndirectionNone)
	default:
		panic(fmt.Sprintf("cxx: unknown type base %T", base))
	}
}

// ToCode returns the class name with its template arguments, if any.
func (c ClassType) ToCode() string {
	if len(c.TemplateArguments) == 0 {
		return c.Name
	}
	args := make([]string, len(c.TemplateArguments))
	for i, arg := range c.TemplateArguments {
		args[i] = arg.ToCode()
	}
	return c.Name + "<" + strings.Join(args, ", ") + ">"
}

func (fp FunctionPointer) toCode(indirection Indirection) string {
	args := make([]string, 0, len(fp.Arguments)+1)
	for _, arg := range fp.Arguments {
		args = append(args, arg.ToCode())
	}
	if fp.Variadic {
		args = append(args, "...")
	}
	return fmt.Sprintf("%s (*%s)(%s)", fp.Return.ToCode(), indirectionCode(indirection), strings.Join(args, ", "))
}

// DisplayName returns the declared name of the parameter or a synthetic
// "T{level}_{index}" when the parser did not record one.
func (p TemplateParameter) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("T%d_%d", p.NestedLevel, p.Index)
}

func indirectionCode(i Indirection) string {
	switch i {
	case IndirectionPtr:
		return "*"
	case IndirectionRef:
		return "&"
	case IndirectionPtrRef:
		return "*&"
	case IndirectionPtrPtr:
		return "**"
	case IndirectionRValueRef:
		return "&&"
	default:
		return ""
	}
}

// Key returns an unambiguous identity encoding of t. Two types are equal
// exactly when their keys are equal. Template parameter display names do
// not participate.
func (t Type) Key() string {
	var b strings.Builder
	t.writeKey(&b)
	return b.String()
}

func (t Type) writeKey(b *strings.Builder) {
	if t.IsConst {
		b.WriteByte('c')
	}
	if t.IsConst2 {
		b.WriteByte('C')
	}
	if t.Indirection != IndirectionNone {
		fmt.Fprintf(b, "%d", int(t.Indirection))
	}
	switch base := t.Base.(type) {
	case Void:
		b.WriteString("v")
	case Numeric:
		fmt.Fprintf(b, "n:%d", int(base.Kind))
	case Enum:
		b.WriteString("e:")
		b.WriteString(base.Name)
	case ClassType:
		b.WriteString("k:")
		b.WriteString(base.Name)
		writeKeyList(b, base.TemplateArguments)
	case FunctionPointer:
		b.WriteString("f:")
		base.Return.writeKey(b)
		b.WriteByte('(')
		for i, arg := range base.Arguments {
			if i > 0 {
				b.WriteByte(',')
			}
			arg.writeKey(b)
		}
		b.WriteByte(')')
		if base.Variadic {
			b.WriteString("...")
		}
	case TemplateParameter:
		fmt.Fprintf(b, "p:%d.%d", base.NestedLevel, base.Index)
	default:
		panic(fmt.Sprintf("cxx: unknown type base %T", t.Base))
	}
}

func writeKeyList(b *strings.Builder, types []Type) {
	if len(types) == 0 {
		return
	}
	b.WriteByte('<')
	for i, arg := range types {
		if i > 0 {
			b.WriteByte(',')
		}
		arg.writeKey(b)
	}
	b.WriteByte('>')
}

// KeyOf returns the identity encoding of a template argument list.
func KeyOf(types []Type) string {
	var b strings.Builder
	writeKeyList(&b, types)
	return b.String()
}
