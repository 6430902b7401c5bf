package decl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/staticgen/internal/decl"
)

func TestParseTypeRoundTrip(t *testing.T) {
	for _, src := range []string{
		"u8",
		"String",
		"Cow<'a, str>",
		"::std::borrow::Cow<'static, str>",
		"Vec<Bar<'b>>",
		"&'static str",
		"&'a mut [u8]",
		"*const T",
		"*mut Vec<T>",
		"[usize; N]",
		"[u8; 4 * 1024]",
		"(String, u16)",
		"(u8,)",
		"()",
		"<T as ::bounded_static::ToBoundedStatic>::Static",
		"Box<dyn Error + Send + 'static>",
		"&'a (dyn Any + Send)",
		"HashMap<K, V, S>",
		"Iterator<Item = T>",
		"Foo<3, -1, true, { N + 1 }>",
		"r#type",
		"!",
	} {
		typ, err := decl.ParseType(src)
		require.NoError(t, err, src)
		assert.Equal(t, src, typ.String())
	}
}

func TestParseTypeNormalizes(t *testing.T) {
	for src, want := range map[string]string{
		"Cow< 'a ,str >":    "Cow<'a, str>",
		"((u8))":            "u8",
		"Vec::<u8>":         "Vec<u8>",
		"Option<Vec<T>>":    "Option<Vec<T>>",
		"& 'a   T":          "&'a T",
		"[ u8 ;  N ]":       "[u8; N]",
		"Box<dyn Fn + 'a>":  "Box<dyn Fn + 'a>",
		"Foo<'_, T>":        "Foo<'_, T>",
		"std::vec::Vec<T,>": "std::vec::Vec<T>",
	} {
		typ, err := decl.ParseType(src)
		require.NoError(t, err, src)
		assert.Equal(t, want, typ.String(), src)
	}
}

func TestParseTypeKinds(t *testing.T) {
	typ, err := decl.ParseType("&'a mut Cow<'a, str>")
	require.NoError(t, err)
	assert.True(t, typ.IsRef())
	assert.Equal(t, "'a", typ.Lifetime)
	assert.True(t, typ.Mut)
	assert.True(t, typ.Elem.IsPath())

	typ, err = decl.ParseType("&str")
	require.NoError(t, err)
	assert.True(t, typ.IsRef())
	assert.Empty(t, typ.Lifetime)

	typ, err = decl.ParseType("[T; N]")
	require.NoError(t, err)
	assert.True(t, typ.IsArray())
	assert.Equal(t, "N", typ.Len)

	typ, err = decl.ParseType("T")
	require.NoError(t, err)
	name, ok := typ.Ident()
	assert.True(t, ok)
	assert.Equal(t, "T", name)

	typ, err = decl.ParseType("Vec<T>")
	require.NoError(t, err)
	_, ok = typ.Ident()
	assert.False(t, ok)
}

func TestParseTypeErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"Cow<'a, str",
		"&'a",
		"*T",
		"[u8; ]",
		"impl Trait",
		"fn(u8) -> u8",
		"u8 u16",
		"Foo<$>",
		"'",
	} {
		_, err := decl.ParseType(src)
		assert.Error(t, err, src)
		var synErr *decl.SyntaxError
		assert.ErrorAs(t, err, &synErr, src)
	}
}

func TestParseParam(t *testing.T) {
	p, err := decl.ParseParam("'a")
	require.NoError(t, err)
	assert.Equal(t, decl.LifetimeParam, p.Kind)
	assert.Equal(t, "'a", p.Name)
	assert.Empty(t, p.Bounds)

	p, err = decl.ParseParam("'b: 'a + 'c")
	require.NoError(t, err)
	assert.Equal(t, decl.LifetimeParam, p.Kind)
	assert.Equal(t, "'a + 'c", decl.FormatBounds(p.Bounds))

	p, err = decl.ParseParam("T")
	require.NoError(t, err)
	assert.Equal(t, decl.TypeParam, p.Kind)
	assert.Equal(t, "T", p.Name)
	assert.Nil(t, p.Default)

	p, err = decl.ParseParam("T: Into<String> + 'a + ?Sized = String")
	require.NoError(t, err)
	assert.Equal(t, decl.TypeParam, p.Kind)
	assert.Equal(t, "Into<String> + 'a + ?Sized", decl.FormatBounds(p.Bounds))
	assert.True(t, p.Bounds[2].Maybe)
	require.NotNil(t, p.Default)
	assert.Equal(t, "String", p.Default.String())

	p, err = decl.ParseParam("R = Vec<u8>")
	require.NoError(t, err)
	assert.Empty(t, p.Bounds)
	assert.Equal(t, "Vec<u8>", p.Default.String())

	p, err = decl.ParseParam("const N: usize")
	require.NoError(t, err)
	assert.Equal(t, decl.ConstParam, p.Kind)
	assert.Equal(t, "N", p.Name)
	assert.Equal(t, "usize", p.ConstType.String())

	p, err = decl.ParseParam("const Q: bool = true")
	require.NoError(t, err)
	assert.Equal(t, "true", p.ConstDefault)
}

func TestParseParamErrors(t *testing.T) {
	for _, src := range []string{"", "'a: T", "const N", "const N: usize =", "T: + Clone", "T Clone"} {
		_, err := decl.ParseParam(src)
		assert.Error(t, err, src)
	}
}

func TestParsePredicate(t *testing.T) {
	p, err := decl.ParsePredicate("'b: 'a")
	require.NoError(t, err)
	assert.Equal(t, "'b", p.Lifetime)
	assert.Nil(t, p.Type)
	assert.Equal(t, "'b: 'a", p.String())

	p, err = decl.ParsePredicate("T: Into<String> + 'a + Bar")
	require.NoError(t, err)
	assert.Equal(t, "T", p.Type.String())
	assert.Len(t, p.Bounds, 3)
	assert.Equal(t, "T: Into<String> + 'a + Bar", p.String())

	p, err = decl.ParsePredicate("Vec<T>: Clone")
	require.NoError(t, err)
	assert.Equal(t, "Vec<T>: Clone", p.String())

	_, err = decl.ParsePredicate("T")
	assert.Error(t, err)
	_, err = decl.ParsePredicate("'a: Clone")
	assert.Error(t, err)
}

func TestTypeMap(t *testing.T) {
	typ, err := decl.ParseType("HashMap<&'a T, Vec<(U, Cow<'b, str>)>>")
	require.NoError(t, err)

	out := typ.Map(
		func(string) string { return decl.StaticLifetime },
		func(name string) (decl.Type, bool) {
			if name == "T" {
				return decl.NamedType("X"), true
			}
			return decl.Type{}, false
		},
	)
	assert.Equal(t, "HashMap<&'static X, Vec<(U, Cow<'static, str>)>>", out.String())
	assert.Equal(t, "HashMap<&'a T, Vec<(U, Cow<'b, str>)>>", typ.String(), "input must not change")
}

func TestTypeWalk(t *testing.T) {
	typ, err := decl.ParseType("Option<(&'a str, [*const u8; 2])>")
	require.NoError(t, err)

	var kinds []decl.Kind
	typ.Walk(func(t decl.Type) bool {
		kinds = append(kinds, t.Kind)
		return true
	})
	assert.Equal(t, []decl.Kind{
		decl.KindPath, decl.KindTuple, decl.KindRef, decl.KindPath,
		decl.KindArray, decl.KindPtr, decl.KindPath,
	}, kinds)
}

func TestFormatParams(t *testing.T) {
	var params []decl.Param
	for _, src := range []string{"'a", "'b: 'a", "T: Clone = String", "const N: usize = 3"} {
		p, err := decl.ParseParam(src)
		require.NoError(t, err)
		params = append(params, p)
	}
	assert.Equal(t, "<'a, 'b: 'a, T: Clone, const N: usize>", decl.FormatParams(params))
	assert.Equal(t, "", decl.FormatParams(nil))
}

func TestFields(t *testing.T) {
	u8 := decl.NamedType("u8")

	named := decl.NamedFields(decl.Field{Name: "a", Type: u8}, decl.Field{Name: "b", Type: u8})
	assert.Equal(t, decl.Named, named.Shape())
	assert.Equal(t, 1, named.List()[1].Index)
	assert.Equal(t, "b", named.List()[1].Label())

	pos := decl.PositionalFields(decl.Field{Name: "ignored", Type: u8}, decl.Field{Type: u8})
	assert.Equal(t, decl.Positional, pos.Shape())
	assert.Equal(t, "0", pos.List()[0].Label())
	assert.Equal(t, "1", pos.List()[1].Label())

	assert.Equal(t, decl.Empty, decl.NoFields().Shape())
	assert.Equal(t, 0, decl.NoFields().Len())

	assert.Panics(t, func() { decl.NamedFields(decl.Field{Type: u8}) })
}
