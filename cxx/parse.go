package cxx

import (
	"strings"
	"unicode"

	"github.com/teranos/bindgen/errors"
)

// Scope resolves names while parsing type spellings.
type Scope struct {
	// Parameters maps template parameter names visible at this point.
	Parameters map[string]TemplateParameter
	// Enums holds qualified names that denote enums rather than classes.
	Enums map[string]struct{}
}

// WithParameters returns a copy of s in which names are the template
// parameters of a new scope at nestedLevel. Inner names shadow outer ones.
func (s Scope) WithParameters(nestedLevel int, names []string) Scope {
	params := make(map[string]TemplateParameter, len(s.Parameters)+len(names))
	for k, v := range s.Parameters {
		params[k] = v
	}
	for i, name := range names {
		params[name] = TemplateParameter{NestedLevel: nestedLevel, Index: i, Name: name}
	}
	return Scope{Parameters: params, Enums: s.Enums}
}

var numericWords = map[string]bool{
	"bool": true, "char": true, "signed": true, "unsigned": true, "wchar_t": true,
	"char16_t": true, "char32_t": true, "short": true, "int": true, "long": true,
	"__int128_t": true, "__uint128_t": true, "float": true, "double": true,
}

// ParseType parses a C++ type spelling such as "const QVector<T>&",
// "unsigned long long", "enum Qt::AlignmentFlag" or "int (*)(int, bool*)".
func ParseType(spelling string, scope Scope) (Type, error) {
	p := &typeParser{tokens: tokenize(spelling), scope: scope, src: spelling}
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if !p.done() {
		return Type{}, p.errorf("unexpected %q", p.peek())
	}
	return t, nil
}

func tokenize(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		r := rune(s[i])
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			j := i
			for j < len(s) {
				c := rune(s[j])
				if c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) {
					j++
					continue
				}
				if strings.HasPrefix(s[j:], "::") {
					j += 2
					continue
				}
				break
			}
			tokens = append(tokens, s[i:j])
			i = j
		case strings.HasPrefix(s[i:], "..."):
			tokens = append(tokens, "...")
			i += 3
		default:
			tokens = append(tokens, string(r))
			i++
		}
	}
	return tokens
}

type typeParser struct {
	tokens []string
	pos    int
	scope  Scope
	src    string
}

func (p *typeParser) done() bool { return p.pos >= len(p.tokens) }

func (p *typeParser) peek() string {
	if p.done() {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *typeParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *typeParser) accept(tok string) bool {
	if p.peek() == tok {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expect(tok string) error {
	if !p.accept(tok) {
		return p.errorf("expected %q, got %q", tok, p.peek())
	}
	return nil
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return errors.WithDetailf(errors.NewInvalidInputError(format, args...), "type spelling: %s", p.src)
}

func (p *typeParser) parseType() (Type, error) {
	isConst := p.accept("const")
	base, err := p.parseBase()
	if err != nil {
		return Type{}, err
	}
	if p.accept("const") {
		isConst = true
	}
	t := Type{Base: base, IsConst: isConst}
	if err := p.parseIndirection(&t); err != nil {
		return Type{}, err
	}

	// Function pointer declarator: ret (*)(args).
	if p.peek() == "(" && p.pos+2 < len(p.tokens) && p.tokens[p.pos+1] == "*" && p.tokens[p.pos+2] == ")" {
		p.pos += 3
		fp := FunctionPointer{Return: t}
		if err := p.expect("("); err != nil {
			return Type{}, err
		}
		for !p.accept(")") {
			if len(fp.Arguments) > 0 || fp.Variadic {
				if err := p.expect(","); err != nil {
					return Type{}, err
				}
			}
			if p.accept("...") {
				fp.Variadic = true
				continue
			}
			if p.peek() == "void" && p.pos+1 < len(p.tokens) && p.tokens[p.pos+1] == ")" && len(fp.Arguments) == 0 {
				p.pos++
				continue
			}
			arg, err := p.parseType()
			if err != nil {
				return Type{}, err
			}
			fp.Arguments = append(fp.Arguments, arg)
		}
		return Type{Base: fp}, nil
	}
	return t, nil
}

func (p *typeParser) parseIndirection(t *Type) error {
	var marks string
	for {
		switch p.peek() {
		case "*":
			p.pos++
			marks += "*"
			if p.accept("const") {
				t.IsConst2 = true
			}
		case "&":
			p.pos++
			marks += "&"
		default:
			switch marks {
			case "":
				t.Indirection = IndirectionNone
			case "*":
				t.Indirection = IndirectionPtr
			case "&":
				t.Indirection = IndirectionRef
			case "*&":
				t.Indirection = IndirectionPtrRef
			case "**":
				t.Indirection = IndirectionPtrPtr
			case "&&":
				t.Indirection = IndirectionRValueRef
			default:
				return p.errorf("unsupported indirection %q", marks)
			}
			return nil
		}
	}
}

func (p *typeParser) parseBase() (Base, error) {
	tok := p.peek()
	switch {
	case tok == "":
		return nil, p.errorf("unexpected end of type")
	case tok == "void":
		p.pos++
		return Void{}, nil
	case tok == "enum":
		p.pos++
		name := p.next()
		if name == "" || !isIdentifier(name) {
			return nil, p.errorf("expected enum name")
		}
		return Enum{Name: name}, nil
	case numericWords[tok]:
		var words []string
		for numericWords[p.peek()] {
			words = append(words, p.next())
		}
		spelling := normalizeNumeric(strings.Join(words, " "))
		kind, ok := ParseNumericKind(spelling)
		if !ok {
			return nil, p.errorf("unknown numeric type %q", spelling)
		}
		return Numeric{Kind: kind}, nil
	case !isIdentifier(tok):
		return nil, p.errorf("unexpected %q", tok)
	}

	name := p.next()
	if param, ok := p.scope.Parameters[name]; ok {
		return param, nil
	}
	if _, ok := p.scope.Enums[name]; ok {
		return Enum{Name: name}, nil
	}
	c := ClassType{Name: name}
	if p.accept("<") {
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			c.TemplateArguments = append(c.TemplateArguments, arg)
			if p.accept(">") {
				break
			}
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func isIdentifier(tok string) bool {
	r := rune(tok[0])
	return r == '_' || unicode.IsLetter(r)
}

// normalizeNumeric maps alternative spellings to the canonical ones.
func normalizeNumeric(s string) string {
	switch s {
	case "unsigned":
		return "unsigned int"
	case "signed", "signed int":
		return "int"
	case "short int", "signed short":
		return "short"
	case "unsigned short int":
		return "unsigned short"
	case "long int", "signed long":
		return "long"
	case "unsigned long int":
		return "unsigned long"
	case "long long int", "signed long long":
		return "long long"
	case "unsigned long long int":
		return "unsigned long long"
	}
	return s
}
