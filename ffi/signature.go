package ffi

import (
	"fmt"
	"strings"

	"github.com/teranos/bindgen/cxx"
)

// MeaningKind tells what an exported argument stands for in the original call.
type MeaningKind int

const (
	MeaningThis MeaningKind = iota
	MeaningArgument
	MeaningReturnValue
)

// ArgumentMeaning is the role of an exported argument. Index is only set
// for MeaningArgument.
type ArgumentMeaning struct {
	Kind  MeaningKind
	Index int
}

func This() ArgumentMeaning            { return ArgumentMeaning{Kind: MeaningThis} }
func ArgumentAt(i int) ArgumentMeaning { return ArgumentMeaning{Kind: MeaningArgument, Index: i} }
func ReturnValue() ArgumentMeaning     { return ArgumentMeaning{Kind: MeaningReturnValue} }

func (m ArgumentMeaning) IsArgument() bool {
	return m.Kind == MeaningArgument
}

func (m ArgumentMeaning) String() string {
	switch m.Kind {
	case MeaningThis:
		return "this"
	case MeaningReturnValue:
		return "return_value"
	default:
		return fmt.Sprintf("argument(%d)", m.Index)
	}
}

// Argument is one parameter of an exported function.
type Argument struct {
	Name    string
	Type    Type
	Meaning ArgumentMeaning
}

// Signature is the parameter list and return type of an exported function.
type Signature struct {
	Arguments  []Argument
	ReturnType Type
}

// ArgumentCaptionKind selects which facts of an argument make up its caption.
type ArgumentCaptionKind int

const (
	NameOnly ArgumentCaptionKind = iota
	TypeOnly
	TypeAndName
)

// ArgumentCaptionStrategy renders one argument into a caption fragment.
type ArgumentCaptionStrategy struct {
	Kind ArgumentCaptionKind
	// Type is ignored for NameOnly.
	Type cxx.TypeCaptionStrategy
}

func (s ArgumentCaptionStrategy) String() string {
	switch s.Kind {
	case NameOnly:
		return "name"
	case TypeOnly:
		return "type(" + s.Type.String() + ")"
	default:
		return "type_and_name(" + s.Type.String() + ")"
	}
}

// AllArgumentCaptionStrategies lists argument strategies from the shortest
// caption to the most specific one.
func AllArgumentCaptionStrategies() []ArgumentCaptionStrategy {
	return []ArgumentCaptionStrategy{
		{Kind: TypeOnly, Type: cxx.CaptionShort},
		{Kind: TypeOnly, Type: cxx.CaptionFull},
		{Kind: NameOnly},
		{Kind: TypeAndName, Type: cxx.CaptionShort},
		{Kind: TypeAndName, Type: cxx.CaptionFull},
	}
}

// Caption renders a single argument.
func (a Argument) Caption(strategy ArgumentCaptionStrategy) (string, error) {
	if strategy.Kind == NameOnly {
		return a.Name, nil
	}
	typeCaption, err := a.Type.Original.Caption(strategy.Type)
	if err != nil {
		return "", err
	}
	if strategy.Kind == TypeOnly {
		return typeCaption, nil
	}
	return typeCaption + "_" + a.Name, nil
}

// ArgumentsCaption joins captions of original arguments only. The implicit
// object and output arguments are never part of it.
func (s Signature) ArgumentsCaption(strategy ArgumentCaptionStrategy) (string, error) {
	var parts []string
	for _, arg := range s.Arguments {
		if !arg.Meaning.IsArgument() {
			continue
		}
		c, err := arg.Caption(strategy)
		if err != nil {
			return "", err
		}
		parts = append(parts, c)
	}
	if len(parts) == 0 {
		return "no_args", nil
	}
	return strings.Join(parts, "_"), nil
}

// HasConstThis reports whether the object argument is a const pointer.
func (s Signature) HasConstThis() bool {
	for _, arg := range s.Arguments {
		if arg.Meaning.Kind == MeaningThis && arg.Type.FFI.IsConst {
			return true
		}
	}
	return false
}

// MethodCaptionKind selects which facts of a method make up its caption.
type MethodCaptionKind int

const (
	ConstOnly MethodCaptionKind = iota
	ArgumentsOnly
	ConstAndArguments
)

// MethodCaptionStrategy renders a whole signature into a caption fragment.
type MethodCaptionStrategy struct {
	Kind MethodCaptionKind
	// Arguments is ignored for ConstOnly.
	Arguments ArgumentCaptionStrategy
}

func (s MethodCaptionStrategy) String() string {
	switch s.Kind {
	case ConstOnly:
		return "const"
	case ArgumentsOnly:
		return "args:" + s.Arguments.String()
	default:
		return "const_args:" + s.Arguments.String()
	}
}

// AllMethodCaptionStrategies lists method strategies in the order they are
// tried during disambiguation.
func AllMethodCaptionStrategies() []MethodCaptionStrategy {
	args := AllArgumentCaptionStrategies()
	r := make([]MethodCaptionStrategy, 0, 1+2*len(args))
	r = append(r, MethodCaptionStrategy{Kind: ConstOnly})
	for _, a := range args {
		r = append(r, MethodCaptionStrategy{Kind: ArgumentsOnly, Arguments: a})
	}
	for _, a := range args {
		r = append(r, MethodCaptionStrategy{Kind: ConstAndArguments, Arguments: a})
	}
	return r
}

// Caption renders the signature.
func (s Signature) Caption(strategy MethodCaptionStrategy) (string, error) {
	switch strategy.Kind {
	case ConstOnly:
		if s.HasConstThis() {
			return "const", nil
		}
		return "", nil
	case ArgumentsOnly:
		return s.ArgumentsCaption(strategy.Arguments)
	default:
		args, err := s.ArgumentsCaption(strategy.Arguments)
		if err != nil {
			return "", err
		}
		if s.HasConstThis() {
			return "const_" + args, nil
		}
		return args, nil
	}
}
