// Package decl describes type declarations handed to the generator: records
// and tagged unions with their generic parameters, where-clauses and fields.
//
// A declaration is built once by the loader and never modified afterwards.
package decl

import (
	"fmt"
	"go/token"
)

// Decl is a record or tagged-union declaration. Exactly one of Fields and
// Variants describes the body; Union tells which.
//
//	struct Foo<'a, T: Clone> where T: Default { a: Cow<'a, str>, t: T }
//	enum Bar<'a> { Unit, Named { s: Cow<'a, str> }, Pos(u8, u16) }
type Decl struct {
	Name     string
	Generics Generics
	Where    []Predicate

	Union    bool
	Fields   Fields    // if !Union
	Variants []Variant // if Union

	Position token.Position
}

// Pos returns where the declaration was described.
func (d *Decl) Pos() token.Position { return d.Position }

func (d *Decl) String() string {
	kind := "struct"
	if d.Union {
		kind = "enum"
	}
	return fmt.Sprintf("%s %s", kind, d.Name)
}

// Variant is a variant of a tagged union.
type Variant struct {
	Name     string
	Fields   Fields
	Position token.Position
}

// Pos returns where the variant was described.
func (v Variant) Pos() token.Position { return v.Position }

// Shape is the shape of a field list.
type Shape int

const (
	Empty      Shape = iota // no fields: struct Foo; or a unit variant
	Named                   // { a: A, b: B }
	Positional              // (A, B)
)

func (s Shape) String() string {
	switch s {
	case Empty:
		return "empty"
	case Named:
		return "named"
	case Positional:
		return "positional"
	}
	return "unknown"
}

// Fields is a field list whose shape is fixed at construction.
type Fields struct {
	shape Shape
	list  []Field
}

// NoFields returns an empty field list.
func NoFields() Fields { return Fields{shape: Empty} }

// NamedFields returns a named field list. Every field must have a name.
func NamedFields(fields ...Field) Fields {
	for i := range fields {
		if fields[i].Name == "" {
			panic("named field without a name")
		}
		fields[i].Index = i
	}
	return Fields{shape: Named, list: fields}
}

// PositionalFields returns a positional field list. Names are cleared.
func PositionalFields(fields ...Field) Fields {
	for i := range fields {
		fields[i].Name = ""
		fields[i].Index = i
	}
	return Fields{shape: Positional, list: fields}
}

func (fs Fields) Shape() Shape { return fs.shape }
func (fs Fields) Len() int     { return len(fs.list) }

// List returns the fields in declared order.
func (fs Fields) List() []Field { return fs.list }

// Field is a named or positional field.
type Field struct {
	Name     string // empty for positional fields
	Index    int
	Type     Type
	Position token.Position
}

// Pos returns where the field was described.
func (f Field) Pos() token.Position { return f.Position }

// Label returns the field name, or its index for a positional field.
func (f Field) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprint(f.Index)
}
