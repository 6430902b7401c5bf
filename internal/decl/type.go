package decl

import (
	"fmt"
	"strings"
)

// StaticLifetime is the unbounded lifetime.
const StaticLifetime = "'static"

// Kind tells which shape of type expression a [Type] is.
type Kind int

const (
	KindPath      Kind = iota // std::borrow::Cow<'a, str>
	KindQualified             // <T as Trait>::Assoc
	KindRef                   // &'a T, &'a mut T
	KindPtr                   // *const T, *mut T
	KindArray                 // [T; N]
	KindSlice                 // [T]
	KindTuple                 // (A, B), ()
	KindDyn                   // dyn Trait + 'a
	KindNever                 // !
	KindInfer                 // _
)

// Type is a structured type expression. Which fields are meaningful depends on
// the kind:
//
//	KindPath:      Path
//	KindQualified: Self, Path (the trait), Assoc
//	KindRef:       Lifetime (may be empty if elided), Mut, Elem
//	KindPtr:       Mut, Elem
//	KindArray:     Elem, Len
//	KindSlice:     Elem
//	KindTuple:     Elems
//	KindDyn:       Bounds
//
// Types are values. Transformations return new types and never modify their
// input.
type Type struct {
	Kind Kind

	Path     *Path
	Self     *Type
	Assoc    string
	Lifetime string
	Mut      bool
	Elem     *Type
	Len      string
	Elems    []Type
	Bounds   []Bound
}

func (t Type) IsPath() bool      { return t.Kind == KindPath }
func (t Type) IsQualified() bool { return t.Kind == KindQualified }
func (t Type) IsRef() bool       { return t.Kind == KindRef }
func (t Type) IsPtr() bool       { return t.Kind == KindPtr }
func (t Type) IsArray() bool     { return t.Kind == KindArray }
func (t Type) IsSlice() bool     { return t.Kind == KindSlice }
func (t Type) IsTuple() bool     { return t.Kind == KindTuple }
func (t Type) IsDyn() bool       { return t.Kind == KindDyn }

// Ident returns the name of a single-segment path without generic arguments,
// like "T". Otherwise it returns false.
func (t Type) Ident() (string, bool) {
	if t.Kind != KindPath || t.Path == nil || t.Path.Global || len(t.Path.Segments) != 1 {
		return "", false
	}
	seg := t.Path.Segments[0]
	if len(seg.Args) != 0 {
		return "", false
	}
	return seg.Name, true
}

// Path is a possibly global path of segments, like "::std::vec::Vec<T>".
type Path struct {
	Global   bool
	Segments []Segment
}

// Segment is a path segment with optional generic arguments.
type Segment struct {
	Name string
	Args []GenericArg
}

// PathOf builds a path from "::"-separated names without generic arguments.
// A leading "::" makes the path global.
func PathOf(s string) Path {
	var p Path
	if strings.HasPrefix(s, "::") {
		p.Global = true
		s = s[2:]
	}
	for name := range strings.SplitSeq(s, "::") {
		p.Segments = append(p.Segments, Segment{Name: name})
	}
	return p
}

// PathType returns a path type.
func PathType(p Path) Type { return Type{Kind: KindPath, Path: &p} }

// NamedType returns a single-segment path type, like T or Foo<'a, T>.
func NamedType(name string, args ...GenericArg) Type {
	return PathType(Path{Segments: []Segment{{Name: name, Args: args}}})
}

// Projection returns the qualified path "<self as trait>::assoc".
func Projection(self Type, trait Path, assoc string) Type {
	return Type{Kind: KindQualified, Self: &self, Path: &trait, Assoc: assoc}
}

// RefType returns "&'lifetime T" or "&'lifetime mut T".
func RefType(lifetime string, mut bool, elem Type) Type {
	return Type{Kind: KindRef, Lifetime: lifetime, Mut: mut, Elem: &elem}
}

func (t Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Type) write(b *strings.Builder) {
	switch t.Kind {
	case KindPath:
		t.Path.write(b)

	case KindQualified:
		b.WriteString("<")
		t.Self.write(b)
		b.WriteString(" as ")
		t.Path.write(b)
		b.WriteString(">::")
		b.WriteString(t.Assoc)

	case KindRef:
		b.WriteString("&")
		if t.Lifetime != "" {
			b.WriteString(t.Lifetime)
			b.WriteString(" ")
		}
		if t.Mut {
			b.WriteString("mut ")
		}
		t.Elem.writeElem(b)

	case KindPtr:
		if t.Mut {
			b.WriteString("*mut ")
		} else {
			b.WriteString("*const ")
		}
		t.Elem.writeElem(b)

	case KindArray:
		b.WriteString("[")
		t.Elem.write(b)
		b.WriteString("; ")
		b.WriteString(t.Len)
		b.WriteString("]")

	case KindSlice:
		b.WriteString("[")
		t.Elem.write(b)
		b.WriteString("]")

	case KindTuple:
		b.WriteString("(")
		for i, elem := range t.Elems {
			if i != 0 {
				b.WriteString(", ")
			}
			elem.write(b)
		}
		if len(t.Elems) == 1 {
			b.WriteString(",")
		}
		b.WriteString(")")

	case KindDyn:
		b.WriteString("dyn ")
		writeBounds(b, t.Bounds)

	case KindNever:
		b.WriteString("!")

	case KindInfer:
		b.WriteString("_")

	default:
		panic(fmt.Sprintf("unknown type kind %d", t.Kind))
	}
}

// writeElem writes the pointee of a reference or pointer. A trait object with
// more than one bound must be parenthesized there.
func (t Type) writeElem(b *strings.Builder) {
	if t.Kind == KindDyn && len(t.Bounds) > 1 {
		b.WriteString("(")
		t.write(b)
		b.WriteString(")")
		return
	}
	t.write(b)
}

func (p Path) String() string {
	var b strings.Builder
	p.write(&b)
	return b.String()
}

func (p Path) write(b *strings.Builder) {
	if p.Global {
		b.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i != 0 {
			b.WriteString("::")
		}
		b.WriteString(seg.Name)
		writeArgs(b, seg.Args)
	}
}

// Map returns a copy of t where every lifetime is replaced by lifetime(l) and
// every single-identifier type is replaced by ident(name) when it returns
// true. Either function may be nil.
func (t Type) Map(lifetime func(string) string, ident func(string) (Type, bool)) Type {
	m := mapper{lifetime, ident}
	return m.typ(t)
}

type mapper struct {
	lifetime func(string) string
	ident    func(string) (Type, bool)
}

func (m mapper) lt(l string) string {
	if m.lifetime == nil || l == "" {
		return l
	}
	return m.lifetime(l)
}

func (m mapper) typ(t Type) Type {
	if name, ok := t.Ident(); ok && m.ident != nil {
		if u, ok := m.ident(name); ok {
			return u
		}
		return t
	}

	out := t
	switch t.Kind {
	case KindPath:
		p := m.path(*t.Path)
		out.Path = &p
	case KindQualified:
		self := m.typ(*t.Self)
		trait := m.path(*t.Path)
		out.Self, out.Path = &self, &trait
	case KindRef:
		out.Lifetime = m.lt(t.Lifetime)
		elem := m.typ(*t.Elem)
		out.Elem = &elem
	case KindPtr, KindArray, KindSlice:
		elem := m.typ(*t.Elem)
		out.Elem = &elem
	case KindTuple:
		out.Elems = make([]Type, len(t.Elems))
		for i, elem := range t.Elems {
			out.Elems[i] = m.typ(elem)
		}
	case KindDyn:
		out.Bounds = m.bounds(t.Bounds)
	}
	return out
}

func (m mapper) path(p Path) Path {
	out := Path{Global: p.Global, Segments: make([]Segment, len(p.Segments))}
	for i, seg := range p.Segments {
		out.Segments[i] = Segment{Name: seg.Name, Args: m.args(seg.Args)}
	}
	return out
}

func (m mapper) args(args []GenericArg) []GenericArg {
	if args == nil {
		return nil
	}
	out := make([]GenericArg, len(args))
	for i, arg := range args {
		out[i] = arg
		switch {
		case arg.Lifetime != "":
			out[i].Lifetime = m.lt(arg.Lifetime)
		case arg.Type != nil:
			t := m.typ(*arg.Type)
			out[i].Type = &t
		}
	}
	return out
}

func (m mapper) bounds(bounds []Bound) []Bound {
	if bounds == nil {
		return nil
	}
	out := make([]Bound, len(bounds))
	for i, b := range bounds {
		out[i] = b
		if b.Lifetime != "" {
			out[i].Lifetime = m.lt(b.Lifetime)
		}
		if b.Trait != nil {
			p := m.path(*b.Trait)
			out[i].Trait = &p
		}
	}
	return out
}

// Walk calls fn for t and every type nested in it, depth first. If fn returns
// false, the types nested in the current one are skipped.
func (t Type) Walk(fn func(Type) bool) {
	if !fn(t) {
		return
	}
	switch t.Kind {
	case KindPath:
		walkPath(*t.Path, fn)
	case KindQualified:
		t.Self.Walk(fn)
		walkPath(*t.Path, fn)
	case KindRef, KindPtr, KindArray, KindSlice:
		t.Elem.Walk(fn)
	case KindTuple:
		for _, elem := range t.Elems {
			elem.Walk(fn)
		}
	case KindDyn:
		for _, b := range t.Bounds {
			if b.Trait != nil {
				walkPath(*b.Trait, fn)
			}
		}
	}
}

func walkPath(p Path, fn func(Type) bool) {
	for _, seg := range p.Segments {
		for _, arg := range seg.Args {
			if arg.Type != nil {
				arg.Type.Walk(fn)
			}
		}
	}
}

// MapBounds applies [Type.Map] to every trait bound and replaces lifetime
// bounds by lifetime(l).
func MapBounds(bounds []Bound, lifetime func(string) string, ident func(string) (Type, bool)) []Bound {
	m := mapper{lifetime, ident}
	return m.bounds(bounds)
}
