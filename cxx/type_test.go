package cxx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCode(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"void", VoidType(), "void"},
		{"int", NumericType(Int), "int"},
		{"unsigned int pointer", NumericType(UInt).Ptr(), "unsigned int*"},
		{"const class ref", Class("QPoint").Const().Ref(), "const QPoint&"},
		{"template class", Class("QVector", NumericType(Int)), "QVector<int>"},
		{"nested template", Class("QHash", Class("QString"), Class("QVector", NumericType(Double))), "QHash<QString, QVector<double>>"},
		{"named parameter", Param(0, 0, "T"), "T"},
		{"anonymous parameter", Param(1, 2, ""), "T1_2"},
		{"function pointer", FuncPtr(NumericType(Int), NumericType(Int), NumericType(Bool).Ptr()), "int (*)(int, bool*)"},
		{"const pointer", Type{Base: Numeric{Kind: Char}, Indirection: IndirectionPtr, IsConst: true, IsConst2: true}, "const char* const"},
		{"ptr ptr", Type{Base: Numeric{Kind: Char}, Indirection: IndirectionPtrPtr}, "char**"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.typ.ToCode())
		})
	}
}

func TestContainsTemplateParameter(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		contains bool
		bare     bool
	}{
		{"int", NumericType(Int), false, false},
		{"bare parameter", Param(0, 0, "T"), true, true},
		{"parameter pointer", Param(0, 0, "T").Ptr(), true, false},
		{"class of parameter", Class("QVector", Param(0, 0, "T")), true, false},
		{"deeply nested", Class("QVector", Class("QList", Param(1, 0, "U").Const().Ref())), true, false},
		{"function pointer return", FuncPtr(Param(0, 0, "T"), NumericType(Int)), true, false},
		{"function pointer argument", FuncPtr(VoidType(), Class("QList", Param(0, 1, "V"))), true, false},
		{"concrete class", Class("QVector", Class("QString")), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, tt.typ.ContainsTemplateParameter())
			assert.Equal(t, tt.bare, tt.typ.IsTemplateParameter())
		})
	}
}

func TestKeyDistinguishesTypes(t *testing.T) {
	types := []Type{
		VoidType(),
		VoidType().Ptr(),
		NumericType(Int),
		NumericType(Int).Ptr(),
		NumericType(Int).Const().Ptr(),
		NumericType(Int).Ref(),
		EnumType("Qt::Orientation"),
		Class("Qt::Orientation"),
		Class("QVector", NumericType(Int)),
		Class("QVector", NumericType(UInt)),
		Class("QVector", Class("QVector", NumericType(Int))),
		Param(0, 0, "T"),
		Param(1, 0, "T"),
		FuncPtr(NumericType(Int)),
		FuncPtr(NumericType(Int), NumericType(Int)),
	}
	seen := make(map[string]string)
	for _, typ := range types {
		key := typ.Key()
		if prev, ok := seen[key]; ok {
			t.Fatalf("%s and %s share key %q", prev, typ.ToCode(), key)
		}
		seen[key] = typ.ToCode()
	}

	// Parameter display names are not part of the identity
	assert.True(t, Param(0, 1, "T").Equal(Param(0, 1, "Key")))
}

func TestClassTypeArgumentsAreParameters(t *testing.T) {
	generic := Class("QHash", Param(0, 0, "K"), Param(0, 1, "V")).Base.(ClassType)
	assert.True(t, generic.AllArgumentsAreParameters())

	partial := Class("QHash", Class("QString"), Param(0, 1, "V")).Base.(ClassType)
	assert.False(t, partial.AllArgumentsAreParameters())

	plain := Class("QString").Base.(ClassType)
	assert.False(t, plain.AllArgumentsAreParameters())
	assert.False(t, plain.HasTemplateArguments())
}

func TestNumericKindRoundTrip(t *testing.T) {
	for kind, spelling := range numericSpellings {
		parsed, ok := ParseNumericKind(spelling)
		assert.True(t, ok, spelling)
		assert.Equal(t, kind, parsed)
	}
	_, ok := ParseNumericKind("QString")
	assert.False(t, ok)
}
