// Package load reads declaration description files.
//
// A description file is a YAML document:
//
//	options:
//	  crate: ::bounded_static
//	  field_prefix: field_
//	  strict: false
//	  outlives_lifetimes: false
//	decls:
//	  - name: Foo
//	    generics: ["'a", "T: Into<String> + 'a", "const N: usize"]
//	    where: ["T: Clone"]
//	    fields:
//	      value: Cow<'a, str>
//	      items: "[T; N]"
//	  - name: Bar
//	    variants:
//	      - Unit
//	      - Named: {name: String}
//	      - Pos: ["Cow<'a, str>", u8]
//
// A mapping of fields describes named fields in order, a sequence describes
// positional fields, and no fields at all describe a unit record or variant.
package load

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sublee/staticgen/internal/codefmt"
	"github.com/sublee/staticgen/internal/decl"
)

// Options are the generation options of a description file.
type Options struct {
	Crate             string `yaml:"crate"`
	FieldPrefix       string `yaml:"field_prefix"`
	Strict            bool   `yaml:"strict"`
	OutlivesLifetimes bool   `yaml:"outlives_lifetimes"`
}

// File is a loaded description file.
type File struct {
	Path    string
	Options Options
	Decls   []*decl.Decl
}

// LoadFile reads and parses the description file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read description file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses a description file. filename is used for positions in errors.
// Every problem found is reported, not only the first one.
func Parse(filename string, data []byte) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	l := loader{filename: filename}
	f := &File{Path: filename}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty document
		return f, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, l.errorf(top, "expected a mapping with options and decls")
	}

	var errs error
	for key, val := range pairs(top) {
		switch key.Value {
		case "options":
			opts, err := l.options(val)
			f.Options = opts
			errs = errors.Join(errs, err)
		case "decls":
			decls, err := l.decls(val)
			f.Decls = decls
			errs = errors.Join(errs, err)
		default:
			errs = errors.Join(errs, l.unknown(key, "key", fileKeys))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return f, nil
}

var (
	fileKeys   = []string{"options", "decls"}
	optionKeys = []string{"crate", "field_prefix", "strict", "outlives_lifetimes"}
	declKeys   = []string{"name", "generics", "where", "fields", "variants"}
)

// loader converts YAML nodes of a file into declarations.
type loader struct {
	filename string
}

func (l loader) pos(n *yaml.Node) position {
	return position{Filename: l.filename, Line: n.Line, Column: n.Column}
}

func (l loader) errorf(n *yaml.Node, format string, args ...any) error {
	return codefmt.Errorf(l.pos(n), format, args...)
}

// syntaxError attributes a parse error of the string in n to n.
func (l loader) syntaxError(n *yaml.Node, what string, err error) error {
	return codefmt.At(l.pos(n), fmt.Errorf("bad %s: %w", what, err))
}

func (l loader) options(n *yaml.Node) (Options, error) {
	var opts Options
	if n.Kind != yaml.MappingNode {
		if isNull(n) {
			return opts, nil
		}
		return opts, l.errorf(n, "options must be a mapping")
	}

	var errs error
	for key := range pairs(n) {
		switch key.Value {
		case "crate", "field_prefix", "strict", "outlives_lifetimes":
		default:
			errs = errors.Join(errs, l.unknown(key, "option", optionKeys))
		}
	}
	if errs != nil {
		return opts, errs
	}

	if err := n.Decode(&opts); err != nil {
		return opts, codefmt.At(l.pos(n), err)
	}
	return opts, nil
}

func (l loader) decls(n *yaml.Node) ([]*decl.Decl, error) {
	if n.Kind != yaml.SequenceNode {
		if isNull(n) {
			return nil, nil
		}
		return nil, l.errorf(n, "decls must be a sequence")
	}

	var (
		decls []*decl.Decl
		errs  error
		seen  = make(map[string]bool)
	)
	for _, item := range n.Content {
		d, err := l.decl(item)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if seen[d.Name] {
			errs = errors.Join(errs, l.errorf(item, "duplicate declaration %q", d.Name))
			continue
		}
		seen[d.Name] = true
		decls = append(decls, d)
	}
	return decls, errs
}

func (l loader) decl(n *yaml.Node) (*decl.Decl, error) {
	if n.Kind != yaml.MappingNode {
		return nil, l.errorf(n, "declaration must be a mapping")
	}

	d := &decl.Decl{Position: token.Position(l.pos(n)), Fields: decl.NoFields()}

	var (
		errs             error
		fields, variants *yaml.Node
	)
	for key, val := range pairs(n) {
		switch key.Value {
		case "name":
			if val.Kind != yaml.ScalarNode || val.Value == "" || isNull(val) {
				errs = errors.Join(errs, l.errorf(val, "name must be a non-empty string"))
				continue
			}
			d.Name = val.Value
		case "generics":
			g, err := l.generics(val)
			d.Generics = g
			errs = errors.Join(errs, err)
		case "where":
			where, err := l.where(val)
			d.Where = where
			errs = errors.Join(errs, err)
		case "fields":
			fields = val
		case "variants":
			variants = val
		default:
			errs = errors.Join(errs, l.unknown(key, "key", declKeys))
		}
	}

	if d.Name == "" && errs == nil {
		errs = l.errorf(n, "declaration without a name")
	}

	switch {
	case fields != nil && variants != nil:
		errs = errors.Join(errs, l.errorf(variants, "%s has both fields and variants", d.Name))
	case variants != nil:
		d.Union = true
		vs, err := l.variants(variants)
		d.Variants = vs
		errs = errors.Join(errs, err)
	case fields != nil:
		fs, err := l.fields(fields)
		d.Fields = fs
		errs = errors.Join(errs, err)
	}

	if errs != nil {
		return nil, errs
	}
	return d, nil
}

func (l loader) generics(n *yaml.Node) (decl.Generics, error) {
	items, errs := l.strings(n, "generics")

	var (
		g    decl.Generics
		seen = make(map[string]bool)
	)
	for _, item := range items {
		p, err := decl.ParseParam(item.Value)
		if err != nil {
			errs = errors.Join(errs, l.syntaxError(item, "generic parameter", err))
			continue
		}
		if seen[p.Name] {
			errs = errors.Join(errs, l.errorf(item, "duplicate generic parameter %s", p.Name))
			continue
		}
		seen[p.Name] = true
		g.Params = append(g.Params, p)
	}
	return g, errs
}

func (l loader) where(n *yaml.Node) ([]decl.Predicate, error) {
	items, errs := l.strings(n, "where")

	var where []decl.Predicate
	for _, item := range items {
		pred, err := decl.ParsePredicate(item.Value)
		if err != nil {
			errs = errors.Join(errs, l.syntaxError(item, "where predicate", err))
			continue
		}
		where = append(where, pred)
	}
	return where, errs
}

func (l loader) variants(n *yaml.Node) ([]decl.Variant, error) {
	if n.Kind != yaml.SequenceNode {
		if isNull(n) {
			return nil, nil
		}
		return nil, l.errorf(n, "variants must be a sequence")
	}

	var (
		variants []decl.Variant
		errs     error
		seen     = make(map[string]bool)
	)
	for _, item := range n.Content {
		v, err := l.variant(item)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if seen[v.Name] {
			errs = errors.Join(errs, l.errorf(item, "duplicate variant %q", v.Name))
			continue
		}
		seen[v.Name] = true
		variants = append(variants, v)
	}
	return variants, errs
}

// variant reads "Unit" or a single-key mapping like "Named: {a: A}" or
// "Pos: [A, B]".
func (l loader) variant(n *yaml.Node) (decl.Variant, error) {
	v := decl.Variant{Position: token.Position(l.pos(n)), Fields: decl.NoFields()}

	switch {
	case n.Kind == yaml.ScalarNode && n.Value != "" && !isNull(n):
		v.Name = n.Value
		return v, nil

	case n.Kind == yaml.MappingNode && len(n.Content) == 2:
		key, val := n.Content[0], n.Content[1]
		if key.Kind != yaml.ScalarNode || key.Value == "" || isNull(key) {
			return v, l.errorf(key, "variant name must be a non-empty string")
		}
		v.Name = key.Value

		fs, err := l.fields(val)
		v.Fields = fs
		return v, err
	}

	return v, l.errorf(n, "variant must be a name or a mapping from its name to fields")
}

func (l loader) fields(n *yaml.Node) (decl.Fields, error) {
	switch n.Kind {
	case yaml.MappingNode:
		var (
			list []decl.Field
			errs error
			seen = make(map[string]bool)
		)
		for key, val := range pairs(n) {
			if key.Kind != yaml.ScalarNode || key.Value == "" || isNull(key) {
				errs = errors.Join(errs, l.errorf(key, "field name must be a non-empty string"))
				continue
			}
			if seen[key.Value] {
				errs = errors.Join(errs, l.errorf(key, "duplicate field %q", key.Value))
				continue
			}
			seen[key.Value] = true

			typ, err := l.fieldType(val)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			list = append(list, decl.Field{
				Name:     key.Value,
				Type:     typ,
				Position: token.Position(l.pos(key)),
			})
		}
		if errs != nil {
			return decl.Fields{}, errs
		}
		return decl.NamedFields(list...), nil

	case yaml.SequenceNode:
		var (
			list []decl.Field
			errs error
		)
		for _, item := range n.Content {
			typ, err := l.fieldType(item)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			list = append(list, decl.Field{
				Type:     typ,
				Position: token.Position(l.pos(item)),
			})
		}
		if errs != nil {
			return decl.Fields{}, errs
		}
		return decl.PositionalFields(list...), nil
	}

	if isNull(n) {
		return decl.NoFields(), nil
	}
	return decl.Fields{}, l.errorf(n, "fields must be a mapping or a sequence")
}

func (l loader) fieldType(n *yaml.Node) (decl.Type, error) {
	if n.Kind != yaml.ScalarNode || isNull(n) {
		// "[T; N]" without quotes is a YAML sequence.
		return decl.Type{}, l.errorf(n, "field type must be a string; quote types starting with [ or &")
	}
	typ, err := decl.ParseType(n.Value)
	if err != nil {
		return decl.Type{}, l.syntaxError(n, "field type", err)
	}
	return typ, nil
}
