package synth

import "github.com/sublee/staticgen/internal/rewrite"

// DefaultFieldPrefix is the prefix of placeholder names which bind positional
// fields of variants: field_0, field_1, ...
const DefaultFieldPrefix = "field_"

// Config tunes code generation for a declaration. The zero value is usable.
type Config struct {
	// Crate is the path of the runtime crate. Defaults to
	// [rewrite.DefaultCrate].
	Crate string

	// FieldPrefix is the prefix of positional placeholder names. Defaults to
	// [DefaultFieldPrefix].
	FieldPrefix string

	// Strict rejects field types which contain non-static references, raw
	// pointers or non-static trait objects anywhere, not only at the top.
	Strict bool

	// OutlivesLifetimes requires every type parameter to outlive every
	// lifetime parameter on the impl side.
	OutlivesLifetimes bool
}

func (cfg Config) crate() string {
	if cfg.Crate == "" {
		return rewrite.DefaultCrate
	}
	return cfg.Crate
}

func (cfg Config) fieldPrefix() string {
	if cfg.FieldPrefix == "" {
		return DefaultFieldPrefix
	}
	return cfg.FieldPrefix
}

func (cfg Config) rewriter() rewrite.Rewriter {
	return rewrite.Rewriter{
		Crate:             cfg.crate(),
		OutlivesLifetimes: cfg.OutlivesLifetimes,
	}
}
