package cxx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/errors"
)

func TestInstantiateReplacesOnlyRequestedLevel(t *testing.T) {
	// QPair<T, U> where T lives at level 0 (class) and U at level 1 (member template)
	typ := Class("QPair", Param(0, 0, "T"), Param(1, 0, "U"))

	r, err := typ.Instantiate(0, []Type{NumericType(Int)})
	require.NoError(t, err)
	assert.Equal(t, "QPair<int, U>", r.ToCode())
	assert.True(t, r.ContainsTemplateParameter())

	r, err = r.Instantiate(1, []Type{Class("QString")})
	require.NoError(t, err)
	assert.Equal(t, "QPair<int, QString>", r.ToCode())
	assert.False(t, r.ContainsTemplateParameter())

	// The original is untouched
	assert.Equal(t, "QPair<T, U>", typ.ToCode())
}

func TestInstantiatePreservesQualifiers(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		arg      Type
		expected string
	}{
		{"const ref", Param(0, 0, "T").Const().Ref(), Class("QString"), "const QString&"},
		{"pointer", Param(0, 0, "T").Ptr(), NumericType(Int), "int*"},
		{"pointer into pointer", Param(0, 0, "T").Ptr(), Class("QObject").Ptr(), "QObject**"},
		{"pointer into reference", Param(0, 0, "T").Ref(), Class("QObject").Ptr(), "QObject*&"},
		{"const value of pointer", Param(0, 0, "T").Const(), Class("QObject").Ptr(), "QObject* const"},
		{"nested in class", Class("QVector", Param(0, 0, "T")).Const().Ref(), NumericType(Double), "const QVector<double>&"},
		{"function pointer", FuncPtr(Param(0, 0, "T"), Param(0, 0, "T").Ptr()), NumericType(Bool), "bool (*)(bool*)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.typ.Instantiate(0, []Type{tt.arg})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r.ToCode())
		})
	}
}

func TestInstantiateIndexOutOfRangeIsAssertion(t *testing.T) {
	_, err := Param(0, 1, "U").Instantiate(0, []Type{NumericType(Int)})
	require.Error(t, err)
	assert.True(t, errors.HasAssertionFailure(err))
	assert.True(t, errors.IsFatal(err))
}

func TestInstantiateUnsupportedIndirectionIsRejection(t *testing.T) {
	constPtr := NumericType(Int).Ptr()
	constPtr.IsConst2 = true

	tests := []struct {
		name string
		typ  Type
		arg  Type
	}{
		{"reference into pointer", Param(0, 0, "T").Ptr(), NumericType(Int).Ref()},
		{"pointer into const pointer", Param(0, 0, "T").Const().Ptr(), NumericType(Int).Ptr()},
		{"pointer into const reference", Param(0, 0, "T").Const().Ref(), Class("QObject").Ptr()},
		{"const pointer into pointer", Param(0, 0, "T").Ptr(), constPtr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.typ.Instantiate(0, []Type{tt.arg})
			require.Error(t, err)
			assert.True(t, errors.IsCandidateRejection(err))
			assert.False(t, errors.IsFatal(err))
		})
	}
}

func TestInstantiateLeavesConcreteTypes(t *testing.T) {
	for _, typ := range []Type{VoidType(), NumericType(Int).Ptr(), EnumType("Qt::Key"), Class("QString")} {
		r, err := typ.Instantiate(0, nil)
		require.NoError(t, err)
		assert.True(t, typ.Equal(r))
	}
}
