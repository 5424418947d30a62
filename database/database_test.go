package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
)

func TestAddDeduplicatesInstantiations(t *testing.T) {
	db := New("core")
	ti := &cxx.TemplateInstantiation{ClassName: "QVector", TemplateArguments: []cxx.Type{cxx.NumericType(cxx.Int)}}

	first, added, err := db.Add(SourceTemplateInstantiation, ti)
	require.NoError(t, err)
	assert.True(t, added)

	again := &cxx.TemplateInstantiation{ClassName: "QVector", TemplateArguments: []cxx.Type{cxx.NumericType(cxx.Int)}}
	second, added, err := db.Add(SourceTemplateInstantiation, again)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Same(t, first, second)
	assert.Equal(t, 1, db.Len())
	assert.True(t, db.HasInstantiation(ti.Key()))
}

func TestAddDeduplicatesFunctions(t *testing.T) {
	db := New("core")
	fn := &cxx.Function{Name: "f", ReturnType: cxx.VoidType(), IncludeFile: "a.h"}
	_, added, err := db.Add(SourceParser, fn)
	require.NoError(t, err)
	assert.True(t, added)

	_, added, err = db.Add(SourceTemplateInstantiation, fn.Clone())
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, db.Functions(), 1)
}

func TestFrozenDatabaseRejectsAdd(t *testing.T) {
	db := New("core")
	db.Freeze()
	_, _, err := db.Add(SourceParser, &cxx.EnumDecl{Name: "E"})
	require.Error(t, err)
	assert.True(t, errors.HasAssertionFailure(err))
}

func TestAddRejectsUnknownData(t *testing.T) {
	_, _, err := New("core").Add(SourceParser, "not an item")
	assert.True(t, errors.HasAssertionFailure(err))
}

func TestItemIDsFollowInsertionOrder(t *testing.T) {
	db := New("core")
	for _, name := range []string{"A", "B", "C"} {
		_, _, err := db.Add(SourceParser, &cxx.ClassDecl{Name: name})
		require.NoError(t, err)
	}
	items := db.Items()
	require.Len(t, items, 3)
	for i, it := range items {
		assert.Equal(t, i+1, it.ID)
		assert.Equal(t, "core", it.Library)
	}
	assert.Equal(t, "core#2 class B (parser)", items[1].String())
}

func TestViewRequiresFrozenDependencies(t *testing.T) {
	dep := New("dep")
	_, err := NewView(New("app"), dep)
	require.Error(t, err)
	assert.True(t, errors.HasAssertionFailure(err))

	dep.Freeze()
	_, err = NewView(New("app"), dep)
	assert.NoError(t, err)
}

func TestViewCombinesDatabases(t *testing.T) {
	dep := New("dep")
	ti := &cxx.TemplateInstantiation{ClassName: "QList", TemplateArguments: []cxx.Type{cxx.Class("QString")}}
	_, _, err := dep.Add(SourceTemplateInstantiation, ti)
	require.NoError(t, err)
	_, _, err = dep.Add(SourceParser, &cxx.Function{Name: "depFunc", ReturnType: cxx.VoidType()})
	require.NoError(t, err)
	_, _, err = dep.Add(SourceParser, &cxx.ClassDecl{Name: "QString"})
	require.NoError(t, err)
	dep.Freeze()

	app := New("app")
	_, _, err = app.Add(SourceParser, &cxx.Function{Name: "appFunc", ReturnType: cxx.VoidType()})
	require.NoError(t, err)

	view, err := NewView(app, dep)
	require.NoError(t, err)
	assert.True(t, view.HasInstantiation(ti.Key()))
	assert.False(t, app.HasInstantiation(ti.Key()))
	assert.Len(t, view.AllItems(), 4)

	fns := view.AllFunctions()
	require.Len(t, fns, 2)
	assert.Equal(t, "appFunc", fns[0].Name)
	assert.Equal(t, "depFunc", fns[1].Name)

	_, ok := view.ClassDecl("QString")
	assert.True(t, ok)
}

func TestLoadFixture(t *testing.T) {
	f, err := LoadFixtureFile("testdata/box.yaml")
	require.NoError(t, err)
	assert.Equal(t, "box", f.Library)
	assert.Equal(t, "1.2.0", f.Version)

	db := New(f.Library)
	require.NoError(t, f.Load(db))

	byName := map[string]*cxx.Function{}
	for _, fn := range db.Functions() {
		byName[fn.Name] = fn
	}

	get := byName["get"]
	require.NotNil(t, get)
	assert.Equal(t, "T Box<T>::get() const", get.ShortText())
	assert.True(t, get.ReturnType.Equal(cxx.Param(0, 0, "T")))
	assert.Equal(t, "box.h", get.IncludeFile)

	ctor := byName["Box"]
	require.NotNil(t, ctor)
	assert.True(t, ctor.IsConstructor())
	require.NotNil(t, byName["~Box"])
	assert.True(t, byName["~Box"].IsDestructor())

	mapFn := byName["map"]
	require.NotNil(t, mapFn)
	require.NotNil(t, mapFn.TemplateArguments)
	assert.Equal(t, 1, mapFn.TemplateArguments.NestedLevel)
	assert.Equal(t, "Box<U>", mapFn.ReturnType.ToCode())
	assert.Equal(t, "U (*)(T)", mapFn.Arguments[0].Type.ToCode())

	eq := byName["operator=="]
	require.NotNil(t, eq)
	assert.Equal(t, cxx.OperatorEqualTo, eq.Operator.Kind)

	conv := byName["operator const T&"]
	require.NotNil(t, conv)
	assert.True(t, conv.Operator.IsConversion())

	align := byName["align"]
	require.NotNil(t, align)
	assert.Equal(t, "QFlags<Qt::AlignmentFlag>", align.Arguments[0].Type.ToCode())
	_, isEnum := align.Arguments[0].Type.Base.(cxx.ClassType).TemplateArguments[0].Base.(cxx.Enum)
	assert.True(t, isEnum)

	qMax := byName["qMax"]
	require.NotNil(t, qMax)
	assert.Nil(t, qMax.Member)
	assert.Equal(t, "qglobal.h", qMax.IncludeFile)
	assert.Equal(t, 0, qMax.TemplateArguments.NestedLevel)

	box, ok := db.ClassDecl("Box")
	require.True(t, ok)
	assert.True(t, box.IsTemplate())
}

func TestDecodeFixtureRejectsUnknownFields(t *testing.T) {
	_, err := DecodeFixture(strings.NewReader("library: x\nclases: []\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestLoadFixtureReportsBadSpelling(t *testing.T) {
	f, err := DecodeFixture(strings.NewReader(`
library: broken
functions:
  - name: f
    include_file: f.h
    return: "QVector<int"
`))
	require.NoError(t, err)
	err = f.Load(New("broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "function f")
}
