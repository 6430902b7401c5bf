// Package synth synthesizes the ToBoundedStatic and IntoBoundedStatic
// implementations of a record or tagged-union declaration.
//
// For
//
//	struct Foo<'a> { a: Cow<'a, str> }
//
// it generates
//
//	impl<'a> ::bounded_static::ToBoundedStatic for Foo<'a> {
//	    type Static = Foo<'static>;
//
//	    fn to_static(&self) -> Self::Static {
//	        Foo {
//	            a: self.a.to_static(),
//	        }
//	    }
//	}
//
// and the by-value counterpart with into_static(self).
package synth

import (
	"bytes"
	"errors"

	"github.com/sublee/staticgen/internal/codefmt"
	"github.com/sublee/staticgen/internal/decl"
	"github.com/sublee/staticgen/internal/rewrite"
)

// converter writes the body of a conversion method.
type converter interface {
	writeConvertCode(w *codefmt.Writer, c rewrite.Capability)
}

// Synth generates the capability implementations of a declaration. Call
// [Synth.Build] and then [Synth.Generate]. All potential errors are returned
// by Build. Once Build succeeds, Generate never fails.
type Synth struct {
	d    *decl.Decl
	cfg  Config
	rw   rewrite.Rewriter
	conv converter
}

// New creates a [Synth] for d. It does not inspect d until [Synth.Build].
func New(d *decl.Decl, cfg Config) *Synth {
	return &Synth{
		d:   d,
		cfg: cfg,
		rw:  cfg.rewriter(),
	}
}

// Decl returns the declaration.
func (s *Synth) Decl() *decl.Decl { return s.d }

// Build checks every field of the declaration and classifies its field lists.
// Every offending field is reported, and the declaration gets no code then.
func (s *Synth) Build() error {
	if err := s.check(); err != nil {
		return err
	}

	ns := s.reservedNS()
	prefix := s.cfg.fieldPrefix()

	if !s.d.Union {
		s.conv = recordConverter{
			name:   s.d.Name,
			fields: classify(s.d.Fields, ns, prefix),
		}
		return nil
	}

	cv := unionConverter{name: s.d.Name}
	for _, v := range s.d.Variants {
		cv.variants = append(cv.variants, variantArm{
			name:   v.Name,
			fields: classify(v.Fields, ns, prefix),
		})
	}
	s.conv = cv
	return nil
}

func (s *Synth) check() error {
	if !s.d.Union {
		return checkFields(s.d.Name, s.d.Fields, s.cfg.Strict)
	}

	var errs error
	for _, v := range s.d.Variants {
		err := checkFields(s.d.Name+"::"+v.Name, v.Fields, s.cfg.Strict)
		errs = errors.Join(errs, err)
	}
	return errs
}

// reservedNS returns the names which generated bindings must avoid: keywords
// and the generic parameters of the declaration.
func (s *Synth) reservedNS() codefmt.NS {
	names := make([]string, 0, s.d.Generics.Len())
	for _, p := range s.d.Generics.Params {
		names = append(names, p.Name)
	}
	return codefmt.NewNS(names...)
}

// Generate generates both implementations, by-reference first. The code is
// not indented; see [codefmt.Indent]. It must be called after [Synth.Build]
// succeeds.
func (s *Synth) Generate() []byte {
	if s.conv == nil {
		panic("synth: Generate before successful Build")
	}

	var buf bytes.Buffer
	w := codefmt.NewWriter(&buf)
	for i, c := range rewrite.Capabilities {
		if i != 0 {
			w.Printf("\n")
		}
		s.writeImplCode(w, c)
	}
	return buf.Bytes()
}

// writeImplCode writes the impl block of capability c.
func (s *Synth) writeImplCode(w *codefmt.Writer, c rewrite.Capability) {
	g := s.d.Generics
	impl := s.rw.Impl(g, s.d.Where, c)
	self := decl.NamedType(s.d.Name, rewrite.Self(g)...)
	target := decl.NamedType(s.d.Name, s.rw.Target(g, c)...)

	w.Printf("impl%g %t for %t", impl.Params, c.Trait(s.cfg.crate()), self)
	if len(impl.Where) == 0 {
		w.Printf(" {\n")
	} else {
		w.Printf("\nwhere\n")
		for _, pred := range impl.Where {
			w.Printf("%s,\n", pred)
		}
		w.Printf("{\n")
	}

	w.Printf("type %s = %t;\n\n", rewrite.AssocName, target)
	w.Printf("fn %s(%s) -> Self::%s {\n", c.Method(), c.Receiver(), rewrite.AssocName)
	s.conv.writeConvertCode(w, c)
	w.Printf("}\n")
	w.Printf("}\n")
}
