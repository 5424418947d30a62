package database

import (
	"github.com/teranos/bindgen/cxx"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/ffi"
)

// Database is the append-only item collection of one library. Once frozen
// it is an immutable input for dependent libraries and may be read
// concurrently.
type Database struct {
	library        string
	items          []*Item
	instantiations map[string]*Item
	functions      map[string]*Item
	classes        map[string]*cxx.ClassDecl
	frozen         bool
}

// New creates an empty database for library.
func New(library string) *Database {
	return &Database{
		library:        library,
		instantiations: make(map[string]*Item),
		functions:      make(map[string]*Item),
		classes:        make(map[string]*cxx.ClassDecl),
	}
}

func (db *Database) Library() string { return db.library }

func (db *Database) Frozen() bool { return db.frozen }

// Freeze makes the database read-only.
func (db *Database) Freeze() { db.frozen = true }

// Len returns the number of own items.
func (db *Database) Len() int { return len(db.items) }

// Add appends data with the given provenance. An instantiation or function
// that is already present is not added again; the existing item is
// returned with added == false.
func (db *Database) Add(source Source, data any) (item *Item, added bool, err error) {
	if db.frozen {
		return nil, false, errors.AssertionFailedf("database %s is frozen", db.library)
	}
	switch d := data.(type) {
	case *cxx.TemplateInstantiation:
		key := d.Key()
		if existing, ok := db.instantiations[key]; ok {
			return existing, false, nil
		}
		item = db.append(source, d)
		db.instantiations[key] = item
	case *cxx.Function:
		key := d.Key()
		if existing, ok := db.functions[key]; ok {
			return existing, false, nil
		}
		item = db.append(source, d)
		db.functions[key] = item
	case *cxx.ClassDecl:
		item = db.append(source, d)
		db.classes[d.Name] = d
	case *cxx.EnumDecl, *ffi.Method:
		item = db.append(source, d)
	default:
		return nil, false, errors.AssertionFailedf("unsupported item data %T", data)
	}
	return item, true, nil
}

func (db *Database) append(source Source, data any) *Item {
	item := &Item{ID: len(db.items) + 1, Library: db.library, Source: source, Data: data}
	db.items = append(db.items, item)
	return item
}

// Items returns own items in insertion order.
func (db *Database) Items() []*Item {
	return append([]*Item(nil), db.items...)
}

// Functions returns own functions in insertion order.
func (db *Database) Functions() []*cxx.Function {
	var r []*cxx.Function
	for _, it := range db.items {
		if f, ok := it.Function(); ok {
			r = append(r, f)
		}
	}
	return r
}

// Instantiations returns own instantiations in insertion order.
func (db *Database) Instantiations() []*cxx.TemplateInstantiation {
	var r []*cxx.TemplateInstantiation
	for _, it := range db.items {
		if ti, ok := it.Instantiation(); ok {
			r = append(r, ti)
		}
	}
	return r
}

// Methods returns the generated boundary methods in insertion order.
func (db *Database) Methods() []*ffi.Method {
	var r []*ffi.Method
	for _, it := range db.items {
		if m, ok := it.Method(); ok {
			r = append(r, m)
		}
	}
	return r
}

// HasInstantiation reports whether an instantiation with key is recorded.
func (db *Database) HasInstantiation(key string) bool {
	_, ok := db.instantiations[key]
	return ok
}

// HasFunction reports whether a function with the given Key is recorded.
func (db *Database) HasFunction(key string) bool {
	_, ok := db.functions[key]
	return ok
}

// ClassDecl looks up a class declaration by its qualified name.
func (db *Database) ClassDecl(name string) (*cxx.ClassDecl, bool) {
	c, ok := db.classes[name]
	return c, ok
}
