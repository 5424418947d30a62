// Package cxx models the C++ API surface that bindings are generated for:
// types, functions and methods, declarations and template instantiations.
//
// Type is a closed recursive variant. Every consumer switches over the
// concrete Base implementations listed below; there are no others.
package cxx

// Indirection is the pointer/reference wrapper of a Type.
type Indirection int

const (
	IndirectionNone Indirection = iota
	IndirectionPtr              // T*
	IndirectionRef              // T&
	IndirectionPtrRef           // T*&
	IndirectionPtrPtr           // T**
	IndirectionRValueRef        // T&&
)

func (i Indirection) String() string {
	switch i {
	case IndirectionNone:
		return "none"
	case IndirectionPtr:
		return "ptr"
	case IndirectionRef:
		return "ref"
	case IndirectionPtrRef:
		return "ptr_ref"
	case IndirectionPtrPtr:
		return "ptr_ptr"
	case IndirectionRValueRef:
		return "rvalue_ref"
	default:
		return "unknown"
	}
}

// Base is the indirection-free part of a Type.
// Implemented by Void, Numeric, Enum, ClassType, FunctionPointer and
// TemplateParameter only.
type Base interface {
	isBase()
}

// Void is the void type.
type Void struct{}

// Numeric is a built-in numeric or boolean type.
type Numeric struct {
	Kind NumericKind
}

// Enum is a named enumeration.
type Enum struct {
	Name string
}

// ClassType is a class, optionally with template arguments.
// TemplateArguments is nil for non-template classes and never empty otherwise.
type ClassType struct {
	Name              string
	TemplateArguments []Type
}

// FunctionPointer is a pointer-to-function type.
type FunctionPointer struct {
	Arguments []Type
	Return    Type
	Variadic  bool
}

// TemplateParameter is a placeholder resolved only by substitution.
// NestedLevel is the depth of the template scope (0 for the outermost
// class template, 1 for a member template inside it, ...).
type TemplateParameter struct {
	NestedLevel int
	Index       int
	Name        string
}

func (Void) isBase()              {}
func (Numeric) isBase()           {}
func (Enum) isBase()              {}
func (ClassType) isBase()         {}
func (FunctionPointer) isBase()   {}
func (TemplateParameter) isBase() {}

// Type is a Base wrapped with indirection and const qualifiers.
// IsConst qualifies the pointee, IsConst2 the pointer itself (T* const).
type Type struct {
	Base        Base
	Indirection Indirection
	IsConst     bool
	IsConst2    bool
}

// VoidType returns the plain void type.
func VoidType() Type {
	return Type{Base: Void{}}
}

// NumericType returns a plain value of a built-in numeric type.
func NumericType(kind NumericKind) Type {
	return Type{Base: Numeric{Kind: kind}}
}

// EnumType returns a plain value of an enum.
func EnumType(name string) Type {
	return Type{Base: Enum{Name: name}}
}

// Class returns a plain value of a class. Passing no arguments produces a
// non-template class.
func Class(name string, templateArguments ...Type) Type {
	c := ClassType{Name: name}
	if len(templateArguments) > 0 {
		c.TemplateArguments = templateArguments
	}
	return Type{Base: c}
}

// Param returns a bare template parameter placeholder.
func Param(nestedLevel, index int, name string) Type {
	return Type{Base: TemplateParameter{NestedLevel: nestedLevel, Index: index, Name: name}}
}

// FuncPtr returns a function pointer type.
func FuncPtr(ret Type, args ...Type) Type {
	return Type{Base: FunctionPointer{Arguments: args, Return: ret}}
}

// Ptr returns t with pointer indirection.
func (t Type) Ptr() Type {
	t.Indirection = IndirectionPtr
	return t
}

// Ref returns t with reference indirection.
func (t Type) Ref() Type {
	t.Indirection = IndirectionRef
	return t
}

// Const returns t with a const pointee.
func (t Type) Const() Type {
	t.IsConst = true
	return t
}

// IsVoid reports whether t is plain void (void* is not void).
func (t Type) IsVoid() bool {
	_, ok := t.Base.(Void)
	return ok && t.Indirection == IndirectionNone
}

// AsClass returns the class base of t regardless of indirection.
func (t Type) AsClass() (ClassType, bool) {
	c, ok := t.Base.(ClassType)
	return c, ok
}

// IsClassValue reports whether t is a class passed by value.
func (t Type) IsClassValue() bool {
	_, ok := t.Base.(ClassType)
	return ok && t.Indirection == IndirectionNone
}

// IsTemplateParameter reports whether t is a bare template parameter:
// a placeholder without indirection.
func (t Type) IsTemplateParameter() bool {
	_, ok := t.Base.(TemplateParameter)
	return ok && t.Indirection == IndirectionNone
}

// ContainsTemplateParameter reports whether t or any nested argument,
// return or pointee type is a template parameter.
func (t Type) ContainsTemplateParameter() bool {
	found := false
	t.Walk(func(nested Type) bool {
		if _, ok := nested.Base.(TemplateParameter); ok {
			found = true
		}
		return !found
	})
	return found
}

// Walk calls visit for t and then for every nested type in depth-first
// order: class template arguments, function pointer return type and
// arguments. Returning false from visit stops descending into that type.
func (t Type) Walk(visit func(Type) bool) {
	if !visit(t) {
		return
	}
	switch b := t.Base.(type) {
	case ClassType:
		for _, arg := range b.TemplateArguments {
			arg.Walk(visit)
		}
	case FunctionPointer:
		b.Return.Walk(visit)
		for _, arg := range b.Arguments {
			arg.Walk(visit)
		}
	case Void, Numeric, Enum, TemplateParameter:
	}
}

// Equal reports structural equality.
func (t Type) Equal(other Type) bool {
	return t.Key() == other.Key()
}

// HasTemplateArguments reports whether the class carries a template argument list.
func (c ClassType) HasTemplateArguments() bool {
	return len(c.TemplateArguments) > 0
}

// AllArgumentsAreParameters reports whether every template argument is a
// bare template parameter, i.e. the class is the generic form itself.
func (c ClassType) AllArgumentsAreParameters() bool {
	if len(c.TemplateArguments) == 0 {
		return false
	}
	for _, arg := range c.TemplateArguments {
		if !arg.IsTemplateParameter() {
			return false
		}
	}
	return true
}

// Type returns c as a plain value type.
func (c ClassType) Type() Type {
	return Type{Base: c}
}
