package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorize(t *testing.T) {
	message := "decls.yaml:5:7: deriving Foo::Bar.0: non-static reference cannot be made static: &'a str\n" +
		"decls.yaml:1:1: unknown key \"decl\"; did you mean \"decls\"?"

	want := posColor.Sprint("decls.yaml:5:7:") + " " + derivingColor.Sprint("deriving Foo::Bar.0: ") +
		"non-static reference cannot be made static: &'a str\n" +
		posColor.Sprint("decls.yaml:1:1:") + " unknown key \"decl\"; did you mean \"decls\"?"
	assert.Equal(t, want, colorize(message))
}

func TestColorizeForced(t *testing.T) {
	assert.Equal(t, "\033[31mderiving Foo.a: \033[0m", derivingColor.Sprint("deriving Foo.a: "))
	assert.Contains(t, colorize("x.yaml:1:2: msg"), "\033[2m")
}

func TestColorizePlain(t *testing.T) {
	assert.Equal(t, "no files given", colorize("no files given"))
}
