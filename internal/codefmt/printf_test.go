package codefmt_test

import (
	"bytes"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/staticgen/internal/codefmt"
	"github.com/sublee/staticgen/internal/decl"
)

func fprintf(t *testing.T, format string, args ...any) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := codefmt.Fprintf(&buf, format, args...)
	require.NoError(t, err)
	return buf.String()
}

func TestFprintfType(t *testing.T) {
	typ, err := decl.ParseType("Vec<&'a str>")
	require.NoError(t, err)
	assert.Equal(t, "type Static = Vec<&'a str>;", fprintf(t, "type Static = %t;", typ))
	assert.Equal(t, "::bounded_static::ToBoundedStatic", fprintf(t, "%t", decl.PathOf("::bounded_static::ToBoundedStatic")))
}

func TestFprintfBounds(t *testing.T) {
	bounds, err := decl.ParseBounds("Clone + 'a")
	require.NoError(t, err)
	assert.Equal(t, "T: Clone + 'a", fprintf(t, "T: %t", bounds))
}

func TestFprintfArgs(t *testing.T) {
	args := []decl.GenericArg{decl.LifetimeArg(decl.StaticLifetime), decl.TypeArg(decl.NamedType("T")), decl.ConstArg("N")}
	assert.Equal(t, "Foo<'static, T, N>", fprintf(t, "Foo%a", args))
	assert.Equal(t, "Foo", fprintf(t, "Foo%a", []decl.GenericArg(nil)))
}

func TestFprintfParams(t *testing.T) {
	var params []decl.Param
	for _, s := range []string{"'a", "T: Clone = String", "const N: usize"} {
		p, err := decl.ParseParam(s)
		require.NoError(t, err)
		params = append(params, p)
	}
	assert.Equal(t, "impl<'a, T: Clone, const N: usize>", fprintf(t, "impl%g", params))
	assert.Equal(t, "impl", fprintf(t, "impl%g", []decl.Param(nil)))
}

func TestFprintfPosition(t *testing.T) {
	pos := token.Position{Filename: "decls.yaml", Line: 2, Column: 4}
	assert.Equal(t, "at decls.yaml:2:4", fprintf(t, "at %b", pos))
	assert.Equal(t, "at decls.yaml:3:5", fprintf(t, "at %b", poser{3, 5}))
	assert.Equal(t, "at -:-", fprintf(t, "at %b", token.Position{}))
}

func TestFprintfMismatch(t *testing.T) {
	assert.Equal(t, "[%t cannot format token.Position]", fprintf(t, "%t", token.Position{}))
	assert.Equal(t, "42", fprintf(t, "%d", 42))
}
