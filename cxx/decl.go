package cxx

import "strings"

// ClassDecl is a class declaration. A class template lists its parameters
// in TemplateParameters; Bases lists direct base classes.
type ClassDecl struct {
	Name               string
	TemplateParameters []Type
	Bases              []Type
	IncludeFile        string
}

// Type returns the class as it is referred to inside its own declaration:
// with its template parameters as arguments.
func (c *ClassDecl) Type() Type {
	return Class(c.Name, c.TemplateParameters...)
}

// IsTemplate reports whether the class is a class template.
func (c *ClassDecl) IsTemplate() bool {
	return len(c.TemplateParameters) > 0
}

// EnumValue is one enumerator.
type EnumValue struct {
	Name  string
	Value int64
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Name        string
	Values      []EnumValue
	IncludeFile string
}

// TemplateInstantiation is a concrete binding of a class template's
// arguments. TemplateArguments never contains template parameters.
type TemplateInstantiation struct {
	ClassName         string
	TemplateArguments []Type
}

// Key identifies the instantiation: (class name, argument list).
func (ti *TemplateInstantiation) Key() string {
	return InstantiationKey(ti.ClassName, ti.TemplateArguments)
}

// Type returns the instantiated class as a value type.
func (ti *TemplateInstantiation) Type() Type {
	return Class(ti.ClassName, ti.TemplateArguments...)
}

// String renders the instantiation as C++ code, e.g. QVector<int>.
func (ti *TemplateInstantiation) String() string {
	return ti.Type().ToCode()
}

// InstantiationKey is the identity of a (class name, argument list) pair.
func InstantiationKey(className string, args []Type) string {
	return className + KeyOf(args)
}

// BaseName returns the last component of a scoped name.
func BaseName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}
