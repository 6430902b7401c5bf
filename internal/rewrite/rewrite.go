// Package rewrite derives the generic parameter views of a declaration which
// are needed to implement a capability for it and to name its snapshot type.
//
// Given
//
//	struct Foo<'a, T: Into<String>, const N: usize> where T: Clone
//
// the views for the by-reference capability are:
//
//	impl-side: <'a, T: Into<String> + ::bounded_static::ToBoundedStatic, const N: usize>
//	           where T: Clone,
//	                 <T as ::bounded_static::ToBoundedStatic>::Static: Into<String> + Clone + 'static
//	self-side: Foo<'a, T, N>
//	target:    Foo<'static, <T as ::bounded_static::ToBoundedStatic>::Static, N>
//
// Rewriting is total: every well-formed parameter list has all three views.
package rewrite

import (
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/sublee/staticgen/internal/decl"
)

// Rewriter rewrites generic parameter lists. The zero value uses
// [DefaultCrate].
type Rewriter struct {
	// Crate is the path of the runtime crate defining the capability traits.
	Crate string

	// OutlivesLifetimes additionally requires every type parameter to outlive
	// every lifetime parameter on the impl side.
	OutlivesLifetimes bool
}

func (rw Rewriter) crate() string {
	if rw.Crate == "" {
		return DefaultCrate
	}
	return rw.Crate
}

// Impl is the impl-side view: the parameters and where-clause of an impl
// block of a capability.
type Impl struct {
	Params []decl.Param
	Where  []decl.Predicate
}

// Impl computes the impl-side view of g and where for capability c.
//
// Lifetime and const parameters are kept. Every type parameter gets c as an
// additional bound. Defaults are dropped. The original where-clause is kept
// verbatim and followed by one predicate per type parameter which requires
// its snapshot type to satisfy the original bounds and to be 'static, then by
// the snapshot-side form of every other predicate mentioning a type parameter.
func (rw Rewriter) Impl(g decl.Generics, where []decl.Predicate, c Capability) Impl {
	trait := c.Trait(rw.crate())
	lifetimes := g.Lifetimes()

	params := make([]decl.Param, len(g.Params))
	for i, p := range g.Params {
		params[i] = decl.Param{
			Kind:      p.Kind,
			Name:      p.Name,
			Bounds:    slices.Clone(p.Bounds),
			ConstType: p.ConstType,
		}
		if p.Kind != decl.TypeParam {
			continue
		}
		params[i].Bounds = append(params[i].Bounds, decl.TraitBound(trait))
		if rw.OutlivesLifetimes {
			for _, l := range lifetimes {
				params[i].Bounds = append(params[i].Bounds, decl.LifetimeBound(l))
			}
		}
	}

	out := Impl{Params: params, Where: slices.Clone(where)}
	out.Where = append(out.Where, rw.snapshotPredicates(g, where, c)...)
	return out
}

// snapshotPredicates re-states the bounds of every type parameter, and every
// where-predicate mentioning one, on the snapshot side. The snapshot type appears as an argument of the target type,
// so it must satisfy whatever the declaration requires of the parameter.
func (rw Rewriter) snapshotPredicates(g decl.Generics, where []decl.Predicate, c Capability) []decl.Predicate {
	// param name -> bound code -> decl.Bound, both in first-seen order
	collected := linkedhashmap.New()
	for _, p := range g.TypeParams() {
		collected.Put(p.Name, linkedhashmap.New())
	}

	add := func(name string, bounds []decl.Bound) {
		v, ok := collected.Get(name)
		if !ok {
			return
		}
		set := v.(*linkedhashmap.Map)
		for _, b := range rw.substituteBounds(g, bounds, c) {
			if b.Maybe {
				// ?Sized and friends are only allowed on type parameters.
				continue
			}
			if b.Lifetime != "" {
				// Every lifetime is 'static here, which is added last.
				continue
			}
			set.Put(b.String(), b)
		}
	}

	for _, p := range g.TypeParams() {
		add(p.Name, p.Bounds)
	}
	for _, pred := range where {
		if pred.Type == nil {
			continue
		}
		if name, ok := pred.Type.Ident(); ok {
			add(name, pred.Bounds)
		}
	}

	static := decl.LifetimeBound(decl.StaticLifetime)
	var preds []decl.Predicate
	it := collected.Iterator()
	for it.Next() {
		set := it.Value().(*linkedhashmap.Map)
		set.Put(static.String(), static)

		var bounds []decl.Bound
		for _, v := range set.Values() {
			bounds = append(bounds, v.(decl.Bound))
		}

		proj := rw.projection(it.Key().(string), c)
		preds = append(preds, decl.Predicate{Type: &proj, Bounds: bounds})
	}
	return append(preds, rw.snapshotCompoundPredicates(g, where, c)...)
}

// snapshotCompoundPredicates re-states predicates on types which mention a
// type parameter, like "Vec<T>: Debug", with the target-side substitution
// applied to both sides: "Vec<<T as C>::Static>: Debug".
func (rw Rewriter) snapshotCompoundPredicates(g decl.Generics, where []decl.Predicate, c Capability) []decl.Predicate {
	// snapshot type code -> decl.Predicate, in first-seen order
	collected := linkedhashmap.New()
	for _, pred := range where {
		if pred.Type == nil {
			continue
		}
		if _, ok := pred.Type.Ident(); ok || !mentionsTypeParam(g, *pred.Type) {
			continue
		}

		snap := rw.Snapshot(g, *pred.Type, c)
		key := snap.String()
		out := decl.Predicate{Type: &snap}
		if v, ok := collected.Get(key); ok {
			out = v.(decl.Predicate)
		}
		for _, b := range rw.substituteBounds(g, pred.Bounds, c) {
			if b.Maybe || slices.ContainsFunc(out.Bounds, func(o decl.Bound) bool { return o.String() == b.String() }) {
				continue
			}
			out.Bounds = append(out.Bounds, b)
		}
		if len(out.Bounds) == 0 {
			continue
		}
		collected.Put(key, out)
	}

	var preds []decl.Predicate
	for _, v := range collected.Values() {
		preds = append(preds, v.(decl.Predicate))
	}
	return preds
}

func mentionsTypeParam(g decl.Generics, t decl.Type) bool {
	found := false
	t.Walk(func(sub decl.Type) bool {
		if found {
			return false
		}
		if name, ok := sub.Ident(); ok {
			if p, ok := g.Lookup(name); ok && p.Kind == decl.TypeParam {
				found = true
			}
		}
		return !found
	})
	return found
}

// Target computes the target-side view of g: the arguments which instantiate
// the snapshot type. Lifetimes become 'static, type parameters become their
// snapshot types under c, and const parameters pass through.
func (rw Rewriter) Target(g decl.Generics, c Capability) []decl.GenericArg {
	args := make([]decl.GenericArg, len(g.Params))
	for i, p := range g.Params {
		switch p.Kind {
		case decl.LifetimeParam:
			args[i] = decl.LifetimeArg(decl.StaticLifetime)
		case decl.TypeParam:
			args[i] = decl.TypeArg(rw.projection(p.Name, c))
		case decl.ConstParam:
			args[i] = decl.ConstArg(p.Name)
		}
	}
	return args
}

// Self returns the parameters of g as arguments, which instantiate the
// declared type itself inside an impl block.
func Self(g decl.Generics) []decl.GenericArg {
	args := make([]decl.GenericArg, len(g.Params))
	for i, p := range g.Params {
		switch p.Kind {
		case decl.LifetimeParam:
			args[i] = decl.LifetimeArg(p.Name)
		case decl.TypeParam:
			args[i] = decl.TypeArg(decl.NamedType(p.Name))
		case decl.ConstParam:
			args[i] = decl.ConstArg(p.Name)
		}
	}
	return args
}

// Snapshot applies the target-side substitution to a type mentioned inside
// the declaration: lifetimes become 'static and type parameters of g become
// their snapshot types under c.
func (rw Rewriter) Snapshot(g decl.Generics, t decl.Type, c Capability) decl.Type {
	return t.Map(staticLifetime, rw.identMapper(g, c))
}

func (rw Rewriter) substituteBounds(g decl.Generics, bounds []decl.Bound, c Capability) []decl.Bound {
	return decl.MapBounds(bounds, staticLifetime, rw.identMapper(g, c))
}

func (rw Rewriter) identMapper(g decl.Generics, c Capability) func(string) (decl.Type, bool) {
	return func(name string) (decl.Type, bool) {
		p, ok := g.Lookup(name)
		if !ok || p.Kind != decl.TypeParam {
			return decl.Type{}, false
		}
		return rw.projection(name, c), true
	}
}

// projection returns "<T as Capability>::Static".
func (rw Rewriter) projection(name string, c Capability) decl.Type {
	return decl.Projection(decl.NamedType(name), c.Trait(rw.crate()), AssocName)
}

func staticLifetime(string) string { return decl.StaticLifetime }
