package database

import (
	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
)

// View combines the database being processed with the frozen databases of
// its dependencies. Only Current is ever written to.
type View struct {
	Current      *Database
	Dependencies []*Database
}

// NewView checks that every dependency is frozen.
func NewView(current *Database, dependencies ...*Database) (*View, error) {
	if current == nil {
		return nil, errors.AssertionFailedf("view without current database")
	}
	for _, dep := range dependencies {
		if !dep.Frozen() {
			return nil, errors.AssertionFailedf("dependency %s of %s is not frozen", dep.Library(), current.Library())
		}
	}
	return &View{Current: current, Dependencies: dependencies}, nil
}

func (v *View) all() []*Database {
	return append([]*Database{v.Current}, v.Dependencies...)
}

// AllItems returns own items followed by each dependency's items.
func (v *View) AllItems() []*Item {
	var r []*Item
	for _, db := range v.all() {
		r = append(r, db.items...)
	}
	return r
}

// AllFunctions returns every function of the current database and its
// dependencies, own functions first.
func (v *View) AllFunctions() []*cxx.Function {
	var r []*cxx.Function
	for _, db := range v.all() {
		r = append(r, db.Functions()...)
	}
	return r
}

// HasInstantiation reports whether key is known to the library or any
// dependency.
func (v *View) HasInstantiation(key string) bool {
	for _, db := range v.all() {
		if db.HasInstantiation(key) {
			return true
		}
	}
	return false
}

// HasFunction reports whether a function with key exists anywhere in the view.
func (v *View) HasFunction(key string) bool {
	for _, db := range v.all() {
		if db.HasFunction(key) {
			return true
		}
	}
	return false
}

// ClassDecl looks up a class declaration in the library or its dependencies.
func (v *View) ClassDecl(name string) (*cxx.ClassDecl, bool) {
	for _, db := range v.all() {
		if c, ok := db.ClassDecl(name); ok {
			return c, true
		}
	}
	return nil, false
}
