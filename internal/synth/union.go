package synth

import (
	"strings"

	"github.com/sublee/staticgen/internal/codefmt"
	"github.com/sublee/staticgen/internal/decl"
	"github.com/sublee/staticgen/internal/rewrite"
)

// unionConverter matches self over every variant in declared order and
// re-tags each variant with its converted fields.
//
//	Foo::Unit => Foo::Unit,
//	Foo::Named { a } => Foo::Named { a: a.to_static() },
//	Foo::Pos(field_0) => Foo::Pos(field_0.to_static()),
type unionConverter struct {
	name     string
	variants []variantArm
}

type variantArm struct {
	name   string
	fields fieldList
}

func (cv unionConverter) writeConvertCode(w *codefmt.Writer, c rewrite.Capability) {
	if len(cv.variants) == 0 {
		// Uninhabited. A reference to it must be dereferenced to match.
		if c == rewrite.CapabilityTo {
			w.Printf("match *self {}\n")
		} else {
			w.Printf("match self {}\n")
		}
		return
	}

	w.Printf("match self {\n")
	for _, v := range cv.variants {
		path := cv.name + "::" + v.name
		w.Printf("%s => %s,\n", v.pattern(path), v.construct(path, c.Method()))
	}
	w.Printf("}\n")
}

// pattern returns the match pattern which binds every field of the variant.
func (v variantArm) pattern(path string) string {
	return v.render(path, func(b binding) string {
		if v.fields.shape == decl.Named && !b.shorthand() {
			return b.Name + ": " + b.binder
		}
		return b.binder
	})
}

// construct returns the expression which builds the variant from the
// converted bindings.
func (v variantArm) construct(path, method string) string {
	return v.render(path, func(b binding) string {
		call := b.binder + "." + method + "()"
		if v.fields.shape == decl.Named {
			return b.Name + ": " + call
		}
		return call
	})
}

func (v variantArm) render(path string, item func(binding) string) string {
	items := make([]string, len(v.fields.bindings))
	for i, b := range v.fields.bindings {
		items[i] = item(b)
	}

	switch v.fields.shape {
	case decl.Named:
		if len(items) == 0 {
			return path + " {}"
		}
		return path + " { " + strings.Join(items, ", ") + " }"
	case decl.Positional:
		return path + "(" + strings.Join(items, ", ") + ")"
	}
	return path
}
