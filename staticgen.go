// Package staticgen generates ToBoundedStatic and IntoBoundedStatic
// implementations for records and tagged unions.
//
// A type which borrows data, like a struct holding a Cow<'a, str>, often
// needs an owned copy of itself that outlives the borrow. Staticgen writes
// the boilerplate: for every declaration it generates a by-reference
// conversion (to_static) and a by-value conversion (into_static) whose result
// is the same type with every lifetime argument replaced by 'static.
//
// Declarations are described in a YAML file:
//
//	# decls.yaml
//	decls:
//	  - name: User
//	    generics: ["'a"]
//	    fields:
//	      name: Cow<'a, str>
//	      tags: Vec<Cow<'a, str>>
//
//	// generated: decls_static.rs (simplified)
//	impl<'a> ::bounded_static::ToBoundedStatic for User<'a> {
//		type Static = User<'static>;
//
//		fn to_static(&self) -> Self::Static {
//			User {
//				name: self.name.to_static(),
//				tags: self.tags.to_static(),
//			}
//		}
//	}
//
// Run the staticgen command to generate the code next to the description
// file:
//
//	go run github.com/sublee/staticgen/cmd/staticgen decls.yaml
//
// # Generics
//
// Declarations may be generic over lifetimes, types and consts. Every type
// parameter T must itself be convertible, and its snapshot type
// <T as ToBoundedStatic>::Static must satisfy the bounds which the
// declaration puts on T:
//
//	# decls.yaml
//	decls:
//	  - name: Labeled
//	    generics: ["'a", "T: Into<String>", "const N: usize"]
//	    where: ["T: Clone"]
//	    fields:
//	      label: Cow<'a, str>
//	      values: "[T; N]"
//
//	// generated: (simplified)
//	impl<'a, T: Into<String> + ::bounded_static::ToBoundedStatic, const N: usize>
//		::bounded_static::ToBoundedStatic for Labeled<'a, T, N>
//	where
//		T: Clone,
//		<T as ::bounded_static::ToBoundedStatic>::Static: Into<String> + Clone + 'static,
//	{
//		type Static = Labeled<'static, <T as ::bounded_static::ToBoundedStatic>::Static, N>;
//		...
//	}
//
// # Tagged unions
//
// Variants are listed under variants instead of fields. A variant is either a
// bare name or a mapping from its name to named or positional fields. The
// conversion matches every variant and converts its fields:
//
//	variants:
//	  - Unit
//	  - Named: {name: "Cow<'a, str>"}
//	  - Pos: ["Cow<'a, str>", u16]
//
//	// generated: (simplified)
//	match self {
//		Bar::Unit => Bar::Unit,
//		Bar::Named { name } => Bar::Named { name: name.to_static() },
//		Bar::Pos(field_0, field_1) => Bar::Pos(field_0.to_static(), field_1.to_static()),
//	}
//
// # Errors
//
// A field of a reference type with a lifetime other than 'static, like &'a str
// or &str, cannot be converted into an owned value. Staticgen reports every
// such field of a declaration with its position and generates nothing for the
// declaration:
//
//	decls.yaml:5:7: deriving User.name: non-static reference cannot be made static: &'a str
//
// With [WithStrict], references nested in other types, raw pointers and trait
// objects with a non-static lifetime bound are rejected as well.
package staticgen

import (
	"github.com/sublee/staticgen/internal/load"
	staticgeninternal "github.com/sublee/staticgen/internal/staticgen"
)

// Option overrides an option of the description file.
type Option func(*staticgeninternal.Overrides)

// WithCrate sets the path of the runtime crate which defines the capability
// traits. The default is "::bounded_static".
func WithCrate(path string) Option {
	return func(ov *staticgeninternal.Overrides) { ov.Crate = &path }
}

// WithFieldPrefix sets the prefix of the names which bind positional fields
// of variants. The default is "field_".
func WithFieldPrefix(prefix string) Option {
	return func(ov *staticgeninternal.Overrides) { ov.FieldPrefix = &prefix }
}

// WithStrict enables or disables rejection of nested non-static references,
// raw pointers and non-static trait objects.
func WithStrict(enable bool) Option {
	return func(ov *staticgeninternal.Overrides) { ov.Strict = &enable }
}

// WithOutlivesLifetimes requires every type parameter to outlive every
// lifetime parameter in the generated impls.
func WithOutlivesLifetimes(enable bool) Option {
	return func(ov *staticgeninternal.Overrides) { ov.OutlivesLifetimes = &enable }
}

// Generate generates the implementations for the description file src.
// filename is used in the header of the code and in positions of errors. It
// returns nil code if the file describes no declarations.
func Generate(filename string, src []byte, opts ...Option) ([]byte, error) {
	var ov staticgeninternal.Overrides
	for _, opt := range opts {
		opt(&ov)
	}

	f, err := load.Parse(filename, src)
	if err != nil {
		return nil, err
	}

	sg := staticgeninternal.New(f, ov.Apply(f.Options))
	if err := sg.Build(); err != nil {
		return nil, err
	}
	return sg.Generate(), nil
}
