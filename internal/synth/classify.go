package synth

import (
	"errors"
	"fmt"
	"maps"
	"strconv"

	"github.com/sublee/staticgen/internal/codefmt"
	"github.com/sublee/staticgen/internal/decl"
	"github.com/sublee/staticgen/pkg/staticerrors"
)

// binding is a field with the name bound to it in a match arm.
type binding struct {
	decl.Field

	// binder is the pattern variable of the field. For a named field it is
	// the field name unless the name is taken by a generic parameter.
	binder string
}

// shorthand reports whether the field can be bound by its own name, like
// Foo::V { a } rather than Foo::V { a: b }.
func (b binding) shorthand() bool { return b.binder == b.Name }

// fieldList is a field list classified once per declaration. Both
// capabilities generate code from the same fieldList.
type fieldList struct {
	shape    decl.Shape
	bindings []binding
}

// classify classifies fs and names the binder of every field. Binders avoid
// the names in ns, which is not modified. Positional binders are prefix
// followed by the field index.
func classify(fs decl.Fields, ns codefmt.NS, prefix string) fieldList {
	local := maps.Clone(ns)
	if fs.Shape() == decl.Named {
		for _, f := range fs.List() {
			local.Reserve(f.Name)
		}
	}

	list := fieldList{shape: fs.Shape()}
	for _, f := range fs.List() {
		b := binding{Field: f}
		switch fs.Shape() {
		case decl.Named:
			b.binder = f.Name
			if _, taken := ns[f.Name]; taken {
				b.binder = local.Name(f.Name)
			}
		case decl.Positional:
			b.binder = local.Name(prefix + strconv.Itoa(f.Index))
		}
		list.bindings = append(list.bindings, b)
	}
	return list
}

// checkFields checks every field of fs. Errors are attributed to path, which
// is the declaration name or the variant path like "Foo::Bar".
func checkFields(path string, fs decl.Fields, strict bool) error {
	var errs error
	for _, f := range fs.List() {
		err := checkField(f.Type, strict)
		if err == nil {
			continue
		}
		err = staticerrors.Wrap(path, staticerrors.Wrap("."+f.Label(), err))
		errs = errors.Join(errs, codefmt.At(f, err))
	}
	return errs
}

// checkField reports why a field of type t cannot be converted, or nil.
//
// A reference to anything with a lifetime other than 'static, elided
// included, cannot be turned into an owned value. By default only the field
// type itself is checked because nested types are converted by their own
// capability implementations. In strict mode nested references, raw pointers
// and non-static trait objects are also rejected.
func checkField(t decl.Type, strict bool) error {
	if t.IsRef() && t.Lifetime != decl.StaticLifetime {
		return fieldError(staticerrors.ErrNonStaticReference, t, t)
	}
	if !strict {
		return nil
	}

	var err error
	t.Walk(func(sub decl.Type) bool {
		if err != nil {
			return false
		}
		switch {
		case sub.IsRef() && sub.Lifetime != decl.StaticLifetime:
			err = fieldError(staticerrors.ErrNonStaticReference, sub, t)
		case sub.IsPtr():
			err = fieldError(staticerrors.ErrRawPointer, sub, t)
		case sub.IsDyn():
			for _, b := range sub.Bounds {
				if b.Lifetime != "" && b.Lifetime != decl.StaticLifetime {
					err = fieldError(staticerrors.ErrNonStaticTraitObject, sub, t)
					break
				}
			}
		}
		return err == nil
	})
	return err
}

func fieldError(sentinel error, sub, t decl.Type) error {
	if s := sub.String(); s != t.String() {
		return fmt.Errorf("%w: %s in %s", sentinel, s, t)
	}
	return fmt.Errorf("%w: %s", sentinel, t)
}
