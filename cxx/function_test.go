package cxx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorAt() *Function {
	t := Param(0, 0, "T")
	return &Function{
		Name:       "at",
		Arguments:  []Argument{{Name: "i", Type: NumericType(Int)}},
		ReturnType: t.Const().Ref(),
		Member: &MemberInfo{
			ClassType: ClassType{Name: "QVector", TemplateArguments: []Type{t}},
			IsConst:   true,
		},
	}
}

func TestCloneSharesNoState(t *testing.T) {
	fn := vectorAt()
	fn.Operator = NewConversionOperator(NumericType(Int))
	fn.TemplateArguments = &TemplateArguments{NestedLevel: 1, Types: []Type{Param(1, 0, "U")}}

	c := fn.Clone()
	c.Arguments[0].Name = "index"
	c.Member.IsConst = false
	c.Member.ClassType.Name = "QList"
	*c.Operator.ConversionType = NumericType(Double)
	c.TemplateArguments.Types[0] = NumericType(Bool)

	assert.Equal(t, "i", fn.Arguments[0].Name)
	assert.True(t, fn.Member.IsConst)
	assert.Equal(t, "QVector", fn.Member.ClassType.Name)
	assert.Equal(t, "int", fn.Operator.ConversionType.ToCode())
	assert.True(t, fn.TemplateArguments.Types[0].IsTemplateParameter())
}

func TestFunctionKey(t *testing.T) {
	a := vectorAt()
	b := vectorAt()
	b.Arguments[0].Name = "index"
	b.Arguments[0].HasDefaultValue = true
	assert.Equal(t, a.Key(), b.Key(), "names and defaults do not distinguish overloads")

	c := vectorAt()
	c.Member.IsConst = false
	assert.NotEqual(t, a.Key(), c.Key())

	d := vectorAt()
	d.Arguments[0].Type = NumericType(UInt)
	assert.NotEqual(t, a.Key(), d.Key())
}

func TestAllInvolvedTypesOrder(t *testing.T) {
	fn := vectorAt()
	fn.TemplateArguments = &TemplateArguments{NestedLevel: 1, Types: []Type{Param(1, 0, "U")}}

	var got []string
	for _, t := range fn.AllInvolvedTypes() {
		got = append(got, t.ToCode())
	}
	assert.Equal(t, []string{"int", "const T&", "QVector<T>", "U"}, got)
	assert.True(t, fn.IsGeneric())
}

func TestShortText(t *testing.T) {
	assert.Equal(t, "const T& QVector<T>::at(int i) const", vectorAt().ShortText())

	ctor := &Function{
		Name:       "QPoint",
		Arguments:  []Argument{{Name: "x", Type: NumericType(Int)}, {Type: NumericType(Int), HasDefaultValue: true}},
		ReturnType: VoidType(),
		Member:     &MemberInfo{ClassType: ClassType{Name: "QPoint"}, Kind: KindConstructor},
	}
	assert.Equal(t, "QPoint::QPoint(int x, int = ?)", ctor.ShortText())

	static := &Function{
		Name:       "fromString",
		Arguments:  []Argument{{Name: "s", Type: Class("QString").Const().Ref()}},
		ReturnType: Class("QUrl"),
		Member:     &MemberInfo{ClassType: ClassType{Name: "QUrl"}, IsStatic: true},
	}
	assert.Equal(t, "static QUrl QUrl::fromString(const QString& s)", static.ShortText())

	paint := &Function{
		Name:       "paint",
		ReturnType: VoidType(),
		Member:     &MemberInfo{ClassType: ClassType{Name: "QGraphicsItem"}, IsVirtual: true, IsPureVirtual: true},
	}
	assert.Equal(t, "virtual void QGraphicsItem::paint() = 0", paint.ShortText())
	paint.Member.IsPureVirtual = false
	paint.Member.IsConst = true
	assert.Equal(t, "virtual void QGraphicsItem::paint() const", paint.ShortText())

	free := &Function{Name: "qMax", ReturnType: NumericType(Int), Variadic: true}
	assert.Equal(t, "int qMax(...)", free.ShortText())
}

func TestParametersAt(t *testing.T) {
	assert.True(t, ParametersAt([]Type{Param(1, 0, "A"), Param(1, 1, "B")}, 1))
	assert.False(t, ParametersAt([]Type{Param(1, 1, "B"), Param(1, 0, "A")}, 1))
	assert.False(t, ParametersAt([]Type{Param(0, 0, "T")}, 1))
	assert.False(t, ParametersAt([]Type{Param(0, 0, "T").Ptr()}, 0))
	assert.False(t, ParametersAt(nil, 0))

	fn := vectorAt()
	assert.False(t, fn.OwnParametersAt(0))
	fn.TemplateArguments = &TemplateArguments{NestedLevel: 1, Types: []Type{Param(1, 0, "U")}}
	assert.True(t, fn.OwnParametersAt(1))

	class, ok := fn.ClassType()
	require.True(t, ok)
	assert.True(t, class.AllArgumentsAreParameters())
}
