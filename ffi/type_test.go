package ffi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
)

func TestToFFI(t *testing.T) {
	tests := []struct {
		name       string
		typ        cxx.Type
		role       Role
		want       string
		conversion Conversion
	}{
		{"int", cxx.NumericType(cxx.Int), RoleArgument, "int", NoChange},
		{"int reference", cxx.NumericType(cxx.Int).Ref(), RoleArgument, "int*", ReferenceToPointer},
		{"const class reference", cxx.Class("QPoint").Const().Ref(), RoleArgument, "const QPoint*", ReferenceToPointer},
		{"class value argument", cxx.Class("QPoint"), RoleArgument, "const QPoint*", ValueToPointer},
		{"class value return", cxx.Class("QPoint"), RoleReturnType, "QPoint*", ValueToPointer},
		{"class pointer", cxx.Class("QObject").Ptr(), RoleArgument, "QObject*", NoChange},
		{"qflags", cxx.Class("QFlags", cxx.EnumType("Qt::AlignmentFlag")), RoleArgument, "unsigned int", QFlagsToUInt},
		{"void return", cxx.VoidType(), RoleReturnType, "void", NoChange},
		{"void pointer", cxx.VoidType().Ptr(), RoleArgument, "void*", NoChange},
		{"function pointer", cxx.FuncPtr(cxx.VoidType(), cxx.NumericType(cxx.Int)), RoleArgument, "void (*)(int)", NoChange},
		{"object", cxx.Class("QRect"), RoleNotApplicable, "QRect*", ValueToPointer},
		{"const object", cxx.Class("QRect").Const(), RoleNotApplicable, "const QRect*", ValueToPointer},
		{"qflags object", cxx.Class("QFlags", cxx.EnumType("Qt::AlignmentFlag")), RoleNotApplicable, "QFlags<Qt::AlignmentFlag>*", ValueToPointer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFFI(tt.typ, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.FFI.ToCode())
			assert.Equal(t, tt.conversion, got.Conversion)
			assert.True(t, tt.typ.Equal(got.Original))
		})
	}
}

func TestToFFIUnsupported(t *testing.T) {
	tests := []struct {
		name string
		typ  cxx.Type
		role Role
	}{
		{"template parameter", cxx.Param(0, 0, "T"), RoleArgument},
		{"void argument", cxx.VoidType(), RoleArgument},
		{"rvalue reference", cxx.Type{Base: cxx.Numeric{Kind: cxx.Int}, Indirection: cxx.IndirectionRValueRef}, RoleArgument},
		{"function pointer with class argument", cxx.FuncPtr(cxx.VoidType(), cxx.Class("QPoint")), RoleArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToFFI(tt.typ, tt.role)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrUnsupportedType))
			assert.False(t, errors.IsFatal(err))
		})
	}
}
