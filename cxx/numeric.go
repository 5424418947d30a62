package cxx

// NumericKind enumerates the built-in arithmetic types.
type NumericKind int

const (
	Bool NumericKind = iota
	Char
	SChar
	UChar
	WChar
	Char16
	Char32
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong
	Int128
	UInt128
	Float
	Double
	LongDouble
)

var numericSpellings = map[NumericKind]string{
	Bool:       "bool",
	Char:       "char",
	SChar:      "signed char",
	UChar:      "unsigned char",
	WChar:      "wchar_t",
	Char16:     "char16_t",
	Char32:     "char32_t",
	Short:      "short",
	UShort:     "unsigned short",
	Int:        "int",
	UInt:       "unsigned int",
	Long:       "long",
	ULong:      "unsigned long",
	LongLong:   "long long",
	ULongLong:  "unsigned long long",
	Int128:     "__int128_t",
	UInt128:    "__uint128_t",
	Float:      "float",
	Double:     "double",
	LongDouble: "long double",
}

// String returns the C++ spelling of the type.
func (k NumericKind) String() string {
	if s, ok := numericSpellings[k]; ok {
		return s
	}
	return "unknown"
}

// ParseNumericKind is the inverse of NumericKind.String.
func ParseNumericKind(spelling string) (NumericKind, bool) {
	for kind, s := range numericSpellings {
		if s == spelling {
			return kind, true
		}
	}
	return 0, false
}

// IsFloat reports whether k is a floating point kind.
func (k NumericKind) IsFloat() bool {
	return k == Float || k == Double || k == LongDouble
}
