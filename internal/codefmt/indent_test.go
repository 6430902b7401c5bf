package codefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	src := `impl Foo for Bar {
fn f(&self) -> Self {
match self {
Bar::A(field_0) => Bar::A(field_0.f()),
Bar::B { x } => Bar::B {
x: x.f(),
},
}
}
}
`
	want := `impl Foo for Bar {
    fn f(&self) -> Self {
        match self {
            Bar::A(field_0) => Bar::A(field_0.f()),
            Bar::B { x } => Bar::B {
                x: x.f(),
            },
        }
    }
}
`
	assert.Equal(t, want, string(Indent([]byte(src))))
}

func TestIndentBlankLines(t *testing.T) {
	src := "\n\na {\n\n\nb\n}\n\n\n"
	assert.Equal(t, "a {\n\n    b\n}\n", string(Indent([]byte(src))))
}

func TestIndentLeadingClosers(t *testing.T) {
	src := "f(\n[\nx,\n],\n)\n"
	assert.Equal(t, "f(\n    [\n        x,\n    ],\n)\n", string(Indent([]byte(src))))
}

func TestIndentEmpty(t *testing.T) {
	assert.Empty(t, Indent(nil))
}

func TestIndentWhere(t *testing.T) {
	src := "impl<T> Foo for Bar<T>\nwhere\nT: Clone,\n{\nfn f() {}\n}\n"
	want := "impl<T> Foo for Bar<T>\nwhere\n    T: Clone,\n{\n    fn f() {}\n}\n"
	assert.Equal(t, want, string(Indent([]byte(src))))
}
