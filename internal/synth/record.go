package synth

import (
	"github.com/sublee/staticgen/internal/codefmt"
	"github.com/sublee/staticgen/internal/decl"
	"github.com/sublee/staticgen/internal/rewrite"
)

// recordConverter constructs the snapshot of a record from the converted
// fields of self, in declared order.
//
//	Foo
//	Foo { a: self.a.to_static(), }
//	Foo(self.0.to_static(),)
type recordConverter struct {
	name   string
	fields fieldList
}

func (cv recordConverter) writeConvertCode(w *codefmt.Writer, c rewrite.Capability) {
	method := c.Method()

	switch cv.fields.shape {
	case decl.Empty:
		w.Printf("%s\n", cv.name)

	case decl.Named:
		w.Printf("%s {\n", cv.name)
		for _, b := range cv.fields.bindings {
			w.Printf("%s: self.%s.%s(),\n", b.Name, b.Name, method)
		}
		w.Printf("}\n")

	case decl.Positional:
		w.Printf("%s(\n", cv.name)
		for _, b := range cv.fields.bindings {
			w.Printf("self.%d.%s(),\n", b.Index, method)
		}
		w.Printf(")\n")
	}
}
