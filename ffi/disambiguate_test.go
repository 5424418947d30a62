package ffi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/cxx"
)

func overload(name string, isConst bool, args ...cxx.Argument) *cxx.Function {
	fn := method("MyClass", cxx.KindRegular, name)
	fn.Member.IsConst = isConst
	fn.Arguments = args
	return fn
}

func arg(name string, t cxx.Type) cxx.Argument {
	return cxx.Argument{Name: name, Type: t}
}

func exportAll(t *testing.T, fns ...*cxx.Function) []*Method {
	t.Helper()
	var methods []*Method
	for _, fn := range fns {
		ms, err := NewMethods(fn, "")
		require.NoError(t, err)
		methods = append(methods, ms...)
	}
	return methods
}

func names(methods []*Method) []string {
	r := make([]string, len(methods))
	for i, m := range methods {
		r[i] = m.Name
	}
	return r
}

func TestDisambiguateSingleMethodKeepsBaseName(t *testing.T) {
	methods := exportAll(t, overload("func1", false))
	assert.Equal(t, 0, Disambiguate(methods))
	assert.Equal(t, []string{"MyClass_func1"}, names(methods))
	assert.Nil(t, methods[0].Strategy)
}

func TestDisambiguateConstOverloads(t *testing.T) {
	methods := exportAll(t, overload("data", false), overload("data", true))
	assert.Equal(t, 0, Disambiguate(methods))
	assert.Equal(t, []string{"MyClass_data", "MyClass_data_const"}, names(methods))
	require.NotNil(t, methods[0].Strategy)
	assert.Equal(t, ConstOnly, methods[0].Strategy.Kind)
}

func TestDisambiguateByArgumentTypes(t *testing.T) {
	methods := exportAll(t,
		overload("set", false, arg("v", cxx.NumericType(cxx.Int))),
		overload("set", false, arg("v", cxx.NumericType(cxx.Double))),
	)
	Disambiguate(methods)
	assert.Equal(t, []string{"MyClass_set_int", "MyClass_set_double"}, names(methods))
}

func TestDisambiguateFallsBackToFullTypes(t *testing.T) {
	methods := exportAll(t,
		overload("set", false, arg("v", cxx.NumericType(cxx.Int))),
		overload("set", false, arg("v", cxx.NumericType(cxx.Int).Ptr())),
	)
	Disambiguate(methods)
	assert.Equal(t, []string{"MyClass_set_int", "MyClass_set_int_ptr"}, names(methods))
}

func TestDisambiguateNoArgsOverload(t *testing.T) {
	methods := exportAll(t,
		overload("reset", false),
		overload("reset", false, arg("value", cxx.NumericType(cxx.Int))),
	)
	Disambiguate(methods)
	assert.Equal(t, []string{"MyClass_reset_no_args", "MyClass_reset_int"}, names(methods))
}

func TestDisambiguateNumericFallback(t *testing.T) {
	a := overload("f", false, arg("x", cxx.NumericType(cxx.Int)))
	b := overload("f", false, arg("x", cxx.NumericType(cxx.Int)))
	b.Member.IsStatic = true
	b.Member.IsConst = false
	methods := exportAll(t, a, b)
	// The static overload has no object argument, so every caption of the
	// pair coincides.
	assert.Equal(t, 1, Disambiguate(methods))
	assert.Equal(t, []string{"MyClass_f", "MyClass_f_2"}, names(methods))
}

func TestDisambiguateCrossGroupCollision(t *testing.T) {
	// MyClass_set + "_int" collides with a method literally named set_int.
	methods := exportAll(t,
		overload("set", false, arg("v", cxx.NumericType(cxx.Int))),
		overload("set", false, arg("v", cxx.NumericType(cxx.Double))),
		overload("set_int", false),
	)
	assert.Equal(t, 1, Disambiguate(methods))
	assert.Equal(t, []string{"MyClass_set_int", "MyClass_set_double", "MyClass_set_int_2"}, names(methods))
}

func TestDisambiguateStackAndHeapVariants(t *testing.T) {
	ctor1 := method("QRect", cxx.KindConstructor, "QRect")
	ctor2 := method("QRect", cxx.KindConstructor, "QRect")
	ctor2.Arguments = []cxx.Argument{arg("other", cxx.Class("QRect").Const().Ref())}
	methods := exportAll(t, ctor1, ctor2)
	Disambiguate(methods)
	assert.Equal(t, []string{
		"QRect_constructor_no_args", "QRect_new_no_args",
		"QRect_constructor_QRect", "QRect_new_QRect",
	}, names(methods))
}

// Synthetic overload sets: every name is unique, starts with the base name
// and is stable across runs.
func TestDisambiguateProperties(t *testing.T) {
	types := []cxx.Type{
		cxx.NumericType(cxx.Int),
		cxx.NumericType(cxx.Int).Ptr(),
		cxx.NumericType(cxx.Int).Const().Ref(),
		cxx.NumericType(cxx.Double),
		cxx.Class("QString").Const().Ref(),
		cxx.Class("QString").Ptr(),
		cxx.EnumType("Qt::AlignmentFlag"),
	}
	for size := 2; size <= 12; size++ {
		t.Run(fmt.Sprintf("overloads=%d", size), func(t *testing.T) {
			build := func() []*Method {
				var fns []*cxx.Function
				for i := 0; i < size; i++ {
					var args []cxx.Argument
					for j := 0; j <= i%3; j++ {
						args = append(args, arg(fmt.Sprintf("a%d", (i+j)%4), types[(i*3+j)%len(types)]))
					}
					fns = append(fns, overload("op", i%2 == 1, args...))
				}
				return exportAll(t, fns...)
			}

			first := build()
			Disambiguate(first)
			seen := map[string]bool{}
			for _, m := range first {
				assert.False(t, seen[m.Name], "duplicate name %s", m.Name)
				seen[m.Name] = true
				assert.Contains(t, m.Name, m.BaseName)
			}

			second := build()
			Disambiguate(second)
			assert.Equal(t, names(first), names(second))
		})
	}
}
