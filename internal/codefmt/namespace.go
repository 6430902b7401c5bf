package codefmt

import (
	"fmt"
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywords cannot be used as plain identifiers in generated code.
var keywords = []string{
	"as", "async", "await", "break", "const", "continue", "crate", "dyn",
	"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in", "let",
	"loop", "match", "mod", "move", "mut", "pub", "ref", "return", "self",
	"Self", "static", "struct", "super", "trait", "true", "type", "unsafe",
	"use", "where", "while", "abstract", "become", "box", "do", "final",
	"macro", "override", "priv", "try", "typeof", "unsized", "virtual",
	"yield",
}

// NS manages unique names in a namespace.
type NS map[string]struct{}

// NewNS creates a new namespace which reserves keywords and the given names.
func NewNS(names ...string) NS {
	ns := make(NS)
	for _, kw := range keywords {
		ns.Reserve(kw)
	}
	for _, name := range names {
		ns.Reserve(name)
	}
	return ns
}

// Reserve marks a name as used in the namespace. If the name is already used,
// it returns false.
func (ns NS) Reserve(name string) bool {
	if _, ok := ns[name]; ok {
		return false
	}
	ns[name] = struct{}{}
	return true
}

// Name returns a unique name in its namespace. Once a name is used, it is
// reserved in the namespace to avoid conflicts. If conflicts occur, a numbering
// suffix is added.
//
// Panics if the name is empty.
func (ns NS) Name(name string) string {
	name = NormalizeName(name)
	if ns == nil {
		return name
	}
	for name := range DisambiguateName(name) {
		if ok := ns.Reserve(name); ok {
			return name
		}
	}
	panic("unreachable")
}

// NormalizeName turns an arbitrary string into a lower snake case
// identifier. "Field Name" becomes "field_name" and "0x" becomes "_0x".
func NormalizeName(name string) string {
	if name == "" {
		panic("empty name")
	}

	chunks := strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	if len(chunks) == 0 {
		return "_"
	}

	lower := cases.Lower(language.Und)
	for i := range chunks {
		chunks[i] = lower.String(chunks[i])
	}

	// Keep a trailing underscore so that prefixes like "field_" survive.
	out := strings.Join(chunks, "_")
	if strings.HasSuffix(name, "_") {
		out += "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// DisambiguateName offers an alternative unique names.
func DisambiguateName(name string) iter.Seq[string] {
	if name == "" {
		panic("empty name")
	}

	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}

		// Postfix "_" to the name if it already ends with a number.
		// "field_0_2" is better than "field_02".
		sep := ""
		if name[len(name)-1] != '_' && name[len(name)-1] >= '0' && name[len(name)-1] <= '9' {
			sep = "_"
		}

		for i := 2; ; i++ {
			if !yield(fmt.Sprintf("%s%s%d", name, sep, i)) {
				return
			}
		}
	}
}
