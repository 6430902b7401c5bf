package rewrite

import "github.com/sublee/staticgen/internal/decl"

//go:generate go tool stringer -type=Capability -trimprefix=Capability

// Capability is a conversion a type can implement to produce its snapshot.
type Capability int

const (
	// CapabilityTo converts by reference: fn to_static(&self) -> Self::Static.
	CapabilityTo Capability = iota

	// CapabilityInto converts by value: fn into_static(self) -> Self::Static.
	CapabilityInto
)

// Capabilities lists every capability in the order their implementations are
// generated.
var Capabilities = []Capability{CapabilityTo, CapabilityInto}

// DefaultCrate is the path of the runtime crate which defines the capability
// traits.
const DefaultCrate = "::bounded_static"

// AssocName is the associated type of both capability traits naming the
// snapshot type.
const AssocName = "Static"

// TraitName returns the trait name without the crate path.
func (c Capability) TraitName() string {
	switch c {
	case CapabilityTo:
		return "ToBoundedStatic"
	case CapabilityInto:
		return "IntoBoundedStatic"
	}
	panic("unknown capability")
}

// Method returns the conversion method name.
func (c Capability) Method() string {
	switch c {
	case CapabilityTo:
		return "to_static"
	case CapabilityInto:
		return "into_static"
	}
	panic("unknown capability")
}

// Receiver returns the receiver of the conversion method.
func (c Capability) Receiver() string {
	switch c {
	case CapabilityTo:
		return "&self"
	case CapabilityInto:
		return "self"
	}
	panic("unknown capability")
}

// Trait returns the full path of the trait in the given crate.
func (c Capability) Trait(crate string) decl.Path {
	p := decl.PathOf(crate)
	p.Segments = append(p.Segments, decl.Segment{Name: c.TraitName()})
	return p
}
