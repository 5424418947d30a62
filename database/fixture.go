package database

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
)

// Fixture is the parsed API of one library as handed over by the source
// parser, in its YAML interchange form.
type Fixture struct {
	Library     string            `yaml:"library"`
	Version     string            `yaml:"version"`
	IncludeFile string            `yaml:"include_file"`
	Classes     []ClassFixture    `yaml:"classes"`
	Enums       []EnumFixture     `yaml:"enums"`
	Functions   []FunctionFixture `yaml:"functions"`
}

type ClassFixture struct {
	Name               string            `yaml:"name"`
	TemplateParameters []string          `yaml:"template_parameters"`
	Bases              []string          `yaml:"bases"`
	IncludeFile        string            `yaml:"include_file"`
	Methods            []FunctionFixture `yaml:"methods"`
}

type EnumFixture struct {
	Name        string `yaml:"name"`
	IncludeFile string `yaml:"include_file"`
	Values      []struct {
		Name  string `yaml:"name"`
		Value int64  `yaml:"value"`
	} `yaml:"values"`
}

type FunctionFixture struct {
	Name string `yaml:"name"`
	// Kind is regular (default), constructor or destructor.
	Kind               string            `yaml:"kind"`
	TemplateParameters []string          `yaml:"template_parameters"`
	Return             string            `yaml:"return"`
	Arguments          []ArgumentFixture `yaml:"arguments"`
	Const              bool              `yaml:"const"`
	Static             bool              `yaml:"static"`
	Virtual            bool              `yaml:"virtual"`
	PureVirtual        bool              `yaml:"pure_virtual"`
	Variadic           bool              `yaml:"variadic"`
	// Operator is the operator token, e.g. "gt" or "index".
	Operator string `yaml:"operator"`
	// Conversion is the target type of a conversion operator.
	Conversion  string `yaml:"conversion"`
	IncludeFile string `yaml:"include_file"`
}

type ArgumentFixture struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default bool   `yaml:"default"`
}

// DecodeFixture reads a YAML fixture.
func DecodeFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidInput), "failed to decode library fixture")
	}
	if f.Library == "" {
		return nil, errors.NewInvalidInputError("library fixture without library name")
	}
	return &f, nil
}

// LoadFixtureFile reads a YAML fixture from path.
func LoadFixtureFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open fixture %s", path)
	}
	defer file.Close()
	f, err := DecodeFixture(file)
	if err != nil {
		return nil, errors.Wrapf(err, "fixture %s", path)
	}
	return f, nil
}

// Load converts the fixture into parser items of db. Enums are added first
// so that type spellings can refer to them by name.
func (f *Fixture) Load(db *Database) error {
	scope := cxx.Scope{Enums: make(map[string]struct{})}
	for _, e := range f.Enums {
		scope.Enums[e.Name] = struct{}{}
	}

	for _, e := range f.Enums {
		decl := &cxx.EnumDecl{Name: e.Name, IncludeFile: f.includeFile(e.IncludeFile)}
		for _, v := range e.Values {
			decl.Values = append(decl.Values, cxx.EnumValue{Name: v.Name, Value: v.Value})
		}
		if _, _, err := db.Add(SourceParser, decl); err != nil {
			return err
		}
	}

	for _, c := range f.Classes {
		if err := f.loadClass(db, c, scope); err != nil {
			return errors.Wrapf(err, "class %s", c.Name)
		}
	}

	for _, fn := range f.Functions {
		decl, err := fn.function(nil, scope, 0, f.includeFile(fn.IncludeFile))
		if err != nil {
			return errors.Wrapf(err, "function %s", fn.Name)
		}
		if _, _, err := db.Add(SourceParser, decl); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fixture) includeFile(own string) string {
	if own != "" {
		return own
	}
	return f.IncludeFile
}

func (f *Fixture) loadClass(db *Database, c ClassFixture, scope cxx.Scope) error {
	classScope := scope
	level := 0
	if len(c.TemplateParameters) > 0 {
		classScope = scope.WithParameters(0, c.TemplateParameters)
		level = 1
	}

	decl := &cxx.ClassDecl{Name: c.Name, IncludeFile: f.includeFile(c.IncludeFile)}
	for i, name := range c.TemplateParameters {
		decl.TemplateParameters = append(decl.TemplateParameters, cxx.Param(0, i, name))
	}
	for _, spelling := range c.Bases {
		base, err := cxx.ParseType(spelling, classScope)
		if err != nil {
			return errors.Wrap(err, "base class")
		}
		decl.Bases = append(decl.Bases, base)
	}
	if _, _, err := db.Add(SourceParser, decl); err != nil {
		return err
	}

	classType, _ := decl.Type().AsClass()
	for _, m := range c.Methods {
		fn, err := m.function(&classType, classScope, level, decl.IncludeFile)
		if err != nil {
			return errors.Wrapf(err, "method %s", m.Name)
		}
		if _, _, err := db.Add(SourceParser, fn); err != nil {
			return err
		}
	}
	return nil
}

// function builds a function declared in scope. Its own template
// parameters, if any, live at level.
func (ff FunctionFixture) function(class *cxx.ClassType, scope cxx.Scope, level int, includeFile string) (*cxx.Function, error) {
	fn := &cxx.Function{
		Name:        ff.Name,
		ReturnType:  cxx.VoidType(),
		Variadic:    ff.Variadic,
		IncludeFile: includeFile,
	}

	if len(ff.TemplateParameters) > 0 {
		scope = scope.WithParameters(level, ff.TemplateParameters)
		ta := &cxx.TemplateArguments{NestedLevel: level}
		for i, name := range ff.TemplateParameters {
			ta.Types = append(ta.Types, cxx.Param(level, i, name))
		}
		fn.TemplateArguments = ta
	}

	if class != nil {
		kind, err := parseKind(ff.Kind)
		if err != nil {
			return nil, err
		}
		fn.Member = &cxx.MemberInfo{
			ClassType:     *class,
			Kind:          kind,
			IsConst:       ff.Const,
			IsStatic:      ff.Static,
			IsVirtual:     ff.Virtual || ff.PureVirtual,
			IsPureVirtual: ff.PureVirtual,
		}
		if fn.Name == "" {
			switch kind {
			case cxx.KindConstructor:
				fn.Name = cxx.BaseName(class.Name)
			case cxx.KindDestructor:
				fn.Name = "~" + cxx.BaseName(class.Name)
			}
		}
	} else if ff.Kind != "" && ff.Kind != "regular" {
		return nil, errors.NewInvalidInputError("free function cannot be a %s", ff.Kind)
	}

	if ff.Return != "" {
		rt, err := cxx.ParseType(ff.Return, scope)
		if err != nil {
			return nil, errors.Wrap(err, "return type")
		}
		fn.ReturnType = rt
	}

	for i, a := range ff.Arguments {
		t, err := cxx.ParseType(a.Type, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		fn.Arguments = append(fn.Arguments, cxx.Argument{Name: a.Name, Type: t, HasDefaultValue: a.Default})
	}

	switch {
	case ff.Conversion != "":
		target, err := cxx.ParseType(ff.Conversion, scope)
		if err != nil {
			return nil, errors.Wrap(err, "conversion target")
		}
		fn.Operator = cxx.NewConversionOperator(target)
		fn.ReturnType = target
		fn.Name = "operator " + target.ToCode()
	case ff.Operator != "":
		kind, ok := cxx.OperatorKindByToken(ff.Operator)
		if !ok {
			return nil, errors.NewInvalidInputError("unknown operator %q", ff.Operator)
		}
		fn.Operator = cxx.NewOperator(kind)
		if fn.Name == "" {
			fn.Name = "operator" + kind.Symbol()
		}
	}

	if fn.Name == "" {
		return nil, errors.NewInvalidInputError("function without name")
	}
	return fn, nil
}

func parseKind(kind string) (cxx.FunctionKind, error) {
	switch kind {
	case "", "regular":
		return cxx.KindRegular, nil
	case "constructor":
		return cxx.KindConstructor, nil
	case "destructor":
		return cxx.KindDestructor, nil
	default:
		return 0, errors.NewInvalidInputError("unknown method kind %q", kind)
	}
}
