package cxx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/errors"
)

func TestTypeCaption(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		short string
		full  string
	}{
		{"int", NumericType(Int), "int", "int"},
		{"int pointer", NumericType(Int).Ptr(), "int", "int_ptr"},
		{"unsigned long long", NumericType(ULongLong), "unsigned_long_long", "unsigned_long_long"},
		{"const class ref", Class("QPoint").Const().Ref(), "QPoint", "const_QPoint_ref"},
		{"scoped enum", EnumType("Qt::AlignmentFlag"), "Qt_AlignmentFlag", "Qt_AlignmentFlag"},
		{"template class", Class("QVector", NumericType(Int).Ptr()), "QVector_int_ptr", "QVector_int_ptr"},
		{"scoped template class", Class("ns1::Box", NumericType(Int)), "ns1_Box_int", "ns1_Box_int"},
		{"function pointer", FuncPtr(NumericType(Int), NumericType(Int), NumericType(Bool).Ptr()), "func", "int_func_int_bool_ptr"},
		{"function pointer without arguments", FuncPtr(VoidType()), "func", "void_func"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			short, err := tt.typ.Caption(CaptionShort)
			require.NoError(t, err)
			assert.Equal(t, tt.short, short)

			full, err := tt.typ.Caption(CaptionFull)
			require.NoError(t, err)
			assert.Equal(t, tt.full, full)
		})
	}
}

func TestTemplateParameterHasNoCaption(t *testing.T) {
	_, err := Class("QVector", Param(0, 0, "T")).Caption(CaptionShort)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedType))
}

func TestOperatorTokens(t *testing.T) {
	for kind, info := range operators {
		token, err := kind.Token()
		require.NoError(t, err)
		assert.Equal(t, info.token, token)
		back, ok := OperatorKindByToken(token)
		require.True(t, ok)
		assert.Equal(t, kind, back)
	}
	token, err := OperatorGreaterThan.Token()
	require.NoError(t, err)
	assert.Equal(t, "gt", token)
	assert.Equal(t, ">", OperatorGreaterThan.Symbol())
}
