package cxx

import (
	"fmt"
	"strings"
)

// FunctionKind distinguishes special member functions.
type FunctionKind int

const (
	KindRegular FunctionKind = iota
	KindConstructor
	KindDestructor
)

func (k FunctionKind) String() string {
	switch k {
	case KindConstructor:
		return "constructor"
	case KindDestructor:
		return "destructor"
	default:
		return "regular"
	}
}

// MemberInfo describes class membership of a method.
type MemberInfo struct {
	ClassType     ClassType
	Kind          FunctionKind
	IsConst       bool
	IsStatic      bool
	IsVirtual     bool
	IsPureVirtual bool
}

// Argument is a function argument.
type Argument struct {
	Name            string
	Type            Type
	HasDefaultValue bool
}

// TemplateArguments is the function's own template parameter list (for
// member or free function templates) tagged with the scope depth the
// parameters live at. After instantiation Types holds concrete types.
type TemplateArguments struct {
	NestedLevel int
	Types       []Type
}

// Function is a free function or a method.
type Function struct {
	Name              string
	Arguments         []Argument
	ReturnType        Type
	Member            *MemberInfo
	Operator          *Operator
	TemplateArguments *TemplateArguments
	Variadic          bool
	IncludeFile       string
}

// Clone returns a copy that shares no mutable state with f.
func (f *Function) Clone() *Function {
	c := *f
	if f.Arguments != nil {
		c.Arguments = append([]Argument(nil), f.Arguments...)
	}
	if f.Member != nil {
		m := *f.Member
		c.Member = &m
	}
	if f.Operator != nil {
		op := *f.Operator
		if f.Operator.ConversionType != nil {
			t := *f.Operator.ConversionType
			op.ConversionType = &t
		}
		c.Operator = &op
	}
	if f.TemplateArguments != nil {
		ta := TemplateArguments{
			NestedLevel: f.TemplateArguments.NestedLevel,
			Types:       append([]Type(nil), f.TemplateArguments.Types...),
		}
		c.TemplateArguments = &ta
	}
	return &c
}

// IsConstructor reports whether f is a constructor.
func (f *Function) IsConstructor() bool {
	return f.Member != nil && f.Member.Kind == KindConstructor
}

// IsDestructor reports whether f is a destructor.
func (f *Function) IsDestructor() bool {
	return f.Member != nil && f.Member.Kind == KindDestructor
}

// IsStatic reports whether f is a static member function.
func (f *Function) IsStatic() bool {
	return f.Member != nil && f.Member.IsStatic
}

// ClassType returns the enclosing class of a method.
func (f *Function) ClassType() (ClassType, bool) {
	if f.Member == nil {
		return ClassType{}, false
	}
	return f.Member.ClassType, true
}

// OwnParametersAt reports whether f's own template list is exactly the
// placeholders (level, 0) .. (level, n-1) in order.
func (f *Function) OwnParametersAt(level int) bool {
	if f.TemplateArguments == nil || len(f.TemplateArguments.Types) == 0 {
		return false
	}
	return ParametersAt(f.TemplateArguments.Types, level)
}

// ParametersAt reports whether types is exactly the placeholder sequence
// (level, 0) .. (level, len-1).
func ParametersAt(types []Type, level int) bool {
	if len(types) == 0 {
		return false
	}
	for i, t := range types {
		if !t.IsTemplateParameter() {
			return false
		}
		p := t.Base.(TemplateParameter)
		if p.NestedLevel != level || p.Index != i {
			return false
		}
	}
	return true
}

// AllInvolvedTypes returns every top-level type mentioned by the
// signature: arguments, return type, enclosing class, conversion target
// and own template arguments.
func (f *Function) AllInvolvedTypes() []Type {
	types := make([]Type, 0, len(f.Arguments)+3)
	for _, arg := range f.Arguments {
		types = append(types, arg.Type)
	}
	types = append(types, f.ReturnType)
	if f.Member != nil {
		types = append(types, f.Member.ClassType.Type())
	}
	if f.Operator != nil && f.Operator.ConversionType != nil {
		types = append(types, *f.Operator.ConversionType)
	}
	if f.TemplateArguments != nil {
		types = append(types, f.TemplateArguments.Types...)
	}
	return types
}

// IsGeneric reports whether any involved type still contains a template parameter.
func (f *Function) IsGeneric() bool {
	for _, t := range f.AllInvolvedTypes() {
		if t.ContainsTemplateParameter() {
			return true
		}
	}
	return false
}

// QualifiedName returns Class::name for methods and name otherwise.
func (f *Function) QualifiedName() string {
	if f.Member != nil {
		return f.Member.ClassType.ToCode() + "::" + f.Name
	}
	return f.Name
}

// ShortText renders the signature for diagnostics.
func (f *Function) ShortText() string {
	var b strings.Builder
	if f.IsStatic() {
		b.WriteString("static ")
	}
	if f.Member != nil && f.Member.IsVirtual {
		b.WriteString("virtual ")
	}
	if f.Member == nil || f.Member.Kind == KindRegular {
		b.WriteString(f.ReturnType.ToCode())
		b.WriteByte(' ')
	}
	b.WriteString(f.QualifiedName())
	if f.TemplateArguments != nil {
		args := make([]string, len(f.TemplateArguments.Types))
		for i, t := range f.TemplateArguments.Types {
			args[i] = t.ToCode()
		}
		b.WriteString("<" + strings.Join(args, ", ") + ">")
	}
	args := make([]string, 0, len(f.Arguments)+1)
	for _, arg := range f.Arguments {
		s := arg.Type.ToCode()
		if arg.Name != "" {
			s += " " + arg.Name
		}
		if arg.HasDefaultValue {
			s += " = ?"
		}
		args = append(args, s)
	}
	if f.Variadic {
		args = append(args, "...")
	}
	b.WriteString("(" + strings.Join(args, ", ") + ")")
	if f.Member != nil && f.Member.IsConst {
		b.WriteString(" const")
	}
	if f.Member != nil && f.Member.IsPureVirtual {
		b.WriteString(" = 0")
	}
	return b.String()
}

// Key identifies the signature: two functions with equal keys are the same
// overload. Argument names and default values do not participate.
func (f *Function) Key() string {
	var b strings.Builder
	b.WriteString(f.Name)
	if f.Member != nil {
		fmt.Fprintf(&b, "|m:%s:%d:%t:%t", f.Member.ClassType.Type().Key(), f.Member.Kind, f.Member.IsConst, f.Member.IsStatic)
	}
	if f.Operator != nil {
		fmt.Fprintf(&b, "|o:%d", f.Operator.Kind)
		if f.Operator.ConversionType != nil {
			b.WriteString(":" + f.Operator.ConversionType.Key())
		}
	}
	if f.TemplateArguments != nil {
		fmt.Fprintf(&b, "|t:%d:%s", f.TemplateArguments.NestedLevel, KeyOf(f.TemplateArguments.Types))
	}
	b.WriteString("|a:")
	for i, arg := range f.Arguments {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg.Type.Key())
	}
	if f.Variadic {
		b.WriteString("...")
	}
	b.WriteString("|r:" + f.ReturnType.Key())
	return b.String()
}
