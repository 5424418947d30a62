package ffi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
)

func method(class string, kind cxx.FunctionKind, name string) *cxx.Function {
	return &cxx.Function{
		Name:       name,
		ReturnType: cxx.VoidType(),
		Member:     &cxx.MemberInfo{ClassType: cxx.ClassType{Name: class}, Kind: kind},
	}
}

func TestBaseName(t *testing.T) {
	free := &cxx.Function{Name: "func1", ReturnType: cxx.VoidType(), IncludeFile: "QRect"}
	scoped := method("ns1::MyClass", cxx.KindRegular, "func1")
	ctor := method("QRect", cxx.KindConstructor, "QRect")
	dtor := method("QRect", cxx.KindDestructor, "~QRect")
	gt := method("MyClass", cxx.KindRegular, "operator>")
	gt.Operator = cxx.NewOperator(cxx.OperatorGreaterThan)
	conv := method("MyClass", cxx.KindRegular, "operator const QPoint&")
	conv.Operator = cxx.NewConversionOperator(cxx.Class("QPoint").Const().Ref())
	templated := method("Box", cxx.KindRegular, "get")
	templated.Member.ClassType = cxx.ClassType{Name: "Box", TemplateArguments: []cxx.Type{cxx.NumericType(cxx.Int)}}

	tests := []struct {
		name  string
		fn    *cxx.Function
		place AllocationPlace
		want  string
	}{
		{"free function", free, NotApplicable, "QRect_G_func1"},
		{"scoped class", scoped, NotApplicable, "ns1_MyClass_func1"},
		{"constructor on heap", ctor, Heap, "QRect_new"},
		{"constructor on stack", ctor, Stack, "QRect_constructor"},
		{"destructor on heap", dtor, Heap, "QRect_delete"},
		{"destructor on stack", dtor, Stack, "QRect_destructor"},
		{"operator", gt, NotApplicable, "MyClass_operator_gt"},
		{"conversion operator", conv, NotApplicable, "MyClass_convert_to_const_QPoint_ref"},
		{"stack return", templated, Stack, "Box_int_get_to_output"},
		{"heap return", templated, Heap, "Box_int_get_as_ptr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BaseName(tt.fn, tt.place, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseNameRequiresAllocationPlace(t *testing.T) {
	for _, kind := range []cxx.FunctionKind{cxx.KindConstructor, cxx.KindDestructor} {
		_, err := BaseName(method("QRect", kind, "QRect"), NotApplicable, "")
		require.Error(t, err)
		assert.True(t, errors.IsNamingError(err), kind.String())
	}
}

func TestBaseNameFreeFunctionWithoutInclude(t *testing.T) {
	_, err := BaseName(&cxx.Function{Name: "f", ReturnType: cxx.VoidType()}, NotApplicable, "")
	assert.True(t, errors.IsNamingError(err))
}

func TestBaseNameFreeFunctionStrategies(t *testing.T) {
	fn := &cxx.Function{Name: "func1", ReturnType: cxx.VoidType()}
	want := map[AllocationPlace]string{
		NotApplicable: "QRect_G_func1",
		Stack:         "QRect_G_func1_to_output",
		Heap:          "QRect_G_func1_as_ptr",
	}
	for place, name := range want {
		got, err := BaseName(fn, place, "QRect")
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}

	scoped := &cxx.Function{Name: "ns1::func1", ReturnType: cxx.VoidType(), IncludeFile: "ignored.h"}
	got, err := BaseName(scoped, NotApplicable, "qrect.h")
	require.NoError(t, err)
	assert.Equal(t, "qrect_G_ns1_func1", got)
}

func TestBaseNameSuffixes(t *testing.T) {
	fns := map[string]*cxx.Function{
		"ns1_MyClass_func1":                   method("ns1::MyClass", cxx.KindRegular, "func1"),
		"MyClass_operator_gt":                 method("MyClass", cxx.KindRegular, "operator>"),
		"MyClass_convert_to_const_QPoint_ref": method("MyClass", cxx.KindRegular, "operator const QPoint&"),
	}
	fns["MyClass_operator_gt"].Operator = cxx.NewOperator(cxx.OperatorGreaterThan)
	fns["MyClass_convert_to_const_QPoint_ref"].Operator = cxx.NewConversionOperator(cxx.Class("QPoint").Const().Ref())

	for base, fn := range fns {
		for place, suffix := range map[AllocationPlace]string{NotApplicable: "", Stack: "_to_output", Heap: "_as_ptr"} {
			got, err := BaseName(fn, place, "")
			require.NoError(t, err)
			assert.Equal(t, base+suffix, got)
		}
	}
}

func TestIncludeBaseName(t *testing.T) {
	assert.Equal(t, "QRect", IncludeBaseName("QRect"))
	assert.Equal(t, "qrect", IncludeBaseName("QtCore/qrect.h"))
	assert.Equal(t, "my_header", IncludeBaseName("include/my-header.hpp"))
	assert.Equal(t, "", IncludeBaseName(""))
}

func TestAllocationPlaces(t *testing.T) {
	assert.Equal(t, []AllocationPlace{Stack, Heap}, AllocationPlaces(method("QRect", cxx.KindConstructor, "QRect")))
	assert.Equal(t, []AllocationPlace{Stack, Heap}, AllocationPlaces(method("QRect", cxx.KindDestructor, "~QRect")))

	byValue := method("QRect", cxx.KindRegular, "center")
	byValue.ReturnType = cxx.Class("QPoint")
	assert.Equal(t, []AllocationPlace{Stack, Heap}, AllocationPlaces(byValue))

	byPointer := method("QRect", cxx.KindRegular, "parent")
	byPointer.ReturnType = cxx.Class("QObject").Ptr()
	assert.Equal(t, []AllocationPlace{NotApplicable}, AllocationPlaces(byPointer))

	flags := method("QWidget", cxx.KindRegular, "alignment")
	flags.ReturnType = cxx.Class("QFlags", cxx.EnumType("Qt::AlignmentFlag"))
	assert.Equal(t, []AllocationPlace{NotApplicable}, AllocationPlaces(flags))
}
