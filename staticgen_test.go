package staticgen_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/sublee/staticgen"
	"github.com/sublee/staticgen/pkg/staticerrors"
)

var update = flag.Bool("update", false, "rewrite the want files of golden tests")

// TestGolden generates code for the description files in the testdata
// directory and compares the result with the wanted code or error.
//
// Each test case is a txtar archive:
//
//	testdata/
//	└── golden/
//	    └── case.txtar
//	        ├── decls.yaml
//	        └── want/static.rs or want/error.txt
func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.FromSlash("testdata/golden/*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			files := make(map[string]*txtar.File)
			for i := range ar.Files {
				files[ar.Files[i].Name] = &ar.Files[i]
			}

			src, ok := files["decls.yaml"]
			require.True(t, ok, "decls.yaml is missing")

			code, genErr := staticgen.Generate("decls.yaml", src.Data)

			if *update {
				ar.Files = []txtar.File{*src}
				if genErr != nil {
					ar.Files = append(ar.Files, txtar.File{Name: "want/error.txt", Data: []byte(genErr.Error() + "\n")})
				} else {
					ar.Files = append(ar.Files, txtar.File{Name: "want/static.rs", Data: code})
				}
				require.NoError(t, os.WriteFile(path, txtar.Format(ar), 0o644))
				return
			}

			if want, ok := files["want/error.txt"]; ok {
				require.Error(t, genErr)
				if diff := cmp.Diff(strings.TrimSpace(string(want.Data)), genErr.Error()); diff != "" {
					t.Errorf("error mismatch (-want +got):\n%s", diff)
				}
				return
			}

			want, ok := files["want/static.rs"]
			require.True(t, ok, "want/static.rs or want/error.txt is required")
			require.NoError(t, genErr)
			if diff := cmp.Diff(string(want.Data), string(code)); diff != "" {
				t.Errorf("code mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateOptionsOverrideFile(t *testing.T) {
	src := []byte(`options:
  crate: crate::bs
  strict: true
decls:
  - name: Foo
    generics: ["'a"]
    fields: ["Vec<&'a str>"]
`)

	_, err := staticgen.Generate("decls.yaml", src)
	require.ErrorIs(t, err, staticerrors.ErrNonStaticReference)

	code, err := staticgen.Generate("decls.yaml", src,
		staticgen.WithStrict(false),
		staticgen.WithCrate("::bs"),
	)
	require.NoError(t, err)
	assert.Contains(t, string(code), "impl<'a> ::bs::ToBoundedStatic for Foo<'a> {")
	assert.NotContains(t, string(code), "crate::bs")
}

func TestGenerateFieldPrefixAndOutlives(t *testing.T) {
	src := []byte(`decls:
  - name: E
    generics: ["'a", "T"]
    variants:
      - V: [T, u8]
`)

	code, err := staticgen.Generate("decls.yaml", src,
		staticgen.WithFieldPrefix("x_"),
		staticgen.WithOutlivesLifetimes(true),
	)
	require.NoError(t, err)
	assert.Contains(t, string(code), "E::V(x_0, x_1) => E::V(x_0.into_static(), x_1.into_static()),")
	assert.Contains(t, string(code), "impl<'a, T: ::bounded_static::IntoBoundedStatic + 'a>")
}

func TestGenerateLoadError(t *testing.T) {
	_, err := staticgen.Generate("decls.yaml", []byte("decls:\n  - name: Foo\n    fields: {a: \"Vec<\"}\n"))
	assert.ErrorContains(t, err, "decls.yaml:3:17: bad field type: ")
}
