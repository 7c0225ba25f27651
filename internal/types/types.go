// Package types implements the Type lattice of spec.md §4.4: a set of
// primitive tags plus optional shape descriptors (callable signature,
// iterable element type), with compatibility and Int->Float promotion.
package types

import (
	"sort"
	"strings"
)

// Tag is one primitive member of a Type's tag set.
type Tag int

const (
	Void Tag = 1 << iota
	Null
	Bool
	Int
	Float
	String
	Object
)

var tagOrder = []Tag{Void, Null, Bool, Int, Float, String, Object}

func (t Tag) String() string {
	switch t {
	case Void:
		return "void"
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Object:
		return "object"
	default:
		return "?"
	}
}

// Callable describes a callable shape: declared return type. egg does not
// check parameter lists structurally (spec.md §4.4 only names the return
// type for Object/shape-specific callables), so Params is advisory.
type Callable struct {
	Params []Type
	Return Type
}

// Iterable describes the element type produced by iterating a Type.
type Iterable struct {
	Element Type
}

// Type is an unordered set of primitive Tags plus optional shape
// descriptors. The empty Type is invalid except as the sentinel returned
// by a failed compatibility check (spec.md §4.4).
type Type struct {
	tags     Tag
	callable *Callable
	iterable *Iterable
}

// Of builds a Type from a set of tags.
func Of(tags ...Tag) Type {
	var t Type
	for _, tag := range tags {
		t.tags |= tag
	}
	return t
}

// Canonical types named in spec.md §3.
var (
	VOID   = Of(Void)
	NULLT  = Of(Null)
	BOOL   = Of(Bool)
	INT    = Of(Int)
	FLOAT  = Of(Float)
	STRING = Of(String)
	OBJECT = Of(Object)
	ANY    = Of(Bool, Int, Float, String, Object)
	ANYQ   = Of(Bool, Int, Float, String, Object, Null)
)

// IsEmpty reports whether the type carries no primitive tags (the
// compatibility-failure sentinel).
func (t Type) IsEmpty() bool {
	return t.tags == 0
}

// Has reports whether t admits tag.
func (t Type) Has(tag Tag) bool {
	return t.tags&tag != 0
}

// WithCallable returns a copy of t carrying the given callable shape.
func (t Type) WithCallable(c Callable) Type {
	t.callable = &c
	return t
}

// WithIterable returns a copy of t carrying the given iterable shape.
func (t Type) WithIterable(i Iterable) Type {
	t.iterable = &i
	return t
}

// Nullable returns t with Null added to its tag set.
func (t Type) Nullable() Type {
	t.tags |= Null
	return t
}

// NonNull returns t with Null removed from its tag set (used when
// resolving bare "var", per spec.md §4.6).
func (t Type) NonNull() Type {
	t.tags &^= Null
	return t
}

// Equal reports whether t and other carry the same primitive tag set.
// Shape descriptors are not compared (egg's linker only needs return/
// element-type compatibility, derived separately via GetCallables/
// GetIterables).
func (t Type) Equal(other Type) bool {
	return t.tags == other.tags
}

// String renders t per spec.md §3: full ANY as "any", a |Null suffix as
// "?", otherwise the sorted "|"-joined tag names.
func (t Type) String() string {
	if t.Equal(ANY) {
		return "any"
	}
	if t.Equal(ANYQ) {
		return "any?"
	}
	base := t.NonNull()
	names := make([]string, 0, len(tagOrder))
	for _, tag := range tagOrder {
		if tag == Null {
			continue
		}
		if base.Has(tag) {
			names = append(names, tag.String())
		}
	}
	sort.Strings(names)
	out := strings.Join(names, "|")
	if out == "" {
		out = "void"
	}
	if t.Equal(Of(Null)) {
		out = "null"
	} else if t.Has(Null) {
		out += "?"
	}
	return out
}
