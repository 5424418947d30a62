// Package database holds the per-library item collection the pipeline steps
// read and extend, and the read-only view over already processed
// dependency libraries.
package database

import (
	"fmt"

	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/ffi"
)

// Source is the provenance of an item.
type Source int

const (
	SourceParser Source = iota
	SourceTemplateInstantiation
	SourceFFIGeneration
)

func (s Source) String() string {
	switch s {
	case SourceParser:
		return "parser"
	case SourceTemplateInstantiation:
		return "template_instantiation"
	case SourceFFIGeneration:
		return "ffi_generation"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Item is one entry of a database. Data is one of *cxx.Function,
// *cxx.ClassDecl, *cxx.EnumDecl, *cxx.TemplateInstantiation or *ffi.Method.
type Item struct {
	ID      int
	Library string
	Source  Source
	Data    any
}

func (it *Item) Function() (*cxx.Function, bool) {
	f, ok := it.Data.(*cxx.Function)
	return f, ok
}

func (it *Item) ClassDecl() (*cxx.ClassDecl, bool) {
	c, ok := it.Data.(*cxx.ClassDecl)
	return c, ok
}

func (it *Item) EnumDecl() (*cxx.EnumDecl, bool) {
	e, ok := it.Data.(*cxx.EnumDecl)
	return e, ok
}

func (it *Item) Instantiation() (*cxx.TemplateInstantiation, bool) {
	ti, ok := it.Data.(*cxx.TemplateInstantiation)
	return ti, ok
}

func (it *Item) Method() (*ffi.Method, bool) {
	m, ok := it.Data.(*ffi.Method)
	return m, ok
}

// Kind names the item's data variant.
func (it *Item) Kind() string {
	switch it.Data.(type) {
	case *cxx.Function:
		return "function"
	case *cxx.ClassDecl:
		return "class"
	case *cxx.EnumDecl:
		return "enum"
	case *cxx.TemplateInstantiation:
		return "instantiation"
	case *ffi.Method:
		return "ffi_method"
	default:
		return "unknown"
	}
}

func (it *Item) String() string {
	var text string
	switch d := it.Data.(type) {
	case *cxx.Function:
		text = d.ShortText()
	case *cxx.ClassDecl:
		text = d.Type().ToCode()
	case *cxx.EnumDecl:
		text = d.Name
	case *cxx.TemplateInstantiation:
		text = d.String()
	case *ffi.Method:
		text = d.Name
	}
	return fmt.Sprintf("%s#%d %s %s (%s)", it.Library, it.ID, it.Kind(), text, it.Source)
}
