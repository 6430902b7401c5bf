package decl

import "strings"

// ParamKind tells lifetime, type and const parameters apart.
type ParamKind int

const (
	LifetimeParam ParamKind = iota
	TypeParam
	ConstParam
)

func (k ParamKind) String() string {
	switch k {
	case LifetimeParam:
		return "lifetime"
	case TypeParam:
		return "type"
	case ConstParam:
		return "const"
	}
	return "unknown"
}

// Param is a generic parameter of a declaration.
//
//	'b: 'a                 Kind=LifetimeParam Name="'b" Bounds=['a]
//	T: Into<String> = S    Kind=TypeParam Name="T" Bounds=[Into<String>] Default=S
//	const N: usize = 4     Kind=ConstParam Name="N" ConstType=usize ConstDefault="4"
type Param struct {
	Kind   ParamKind
	Name   string
	Bounds []Bound

	Default      *Type
	ConstType    *Type
	ConstDefault string
}

// Generics is the ordered generic parameter list of a declaration. The order is
// significant: arguments are matched to parameters by position.
type Generics struct {
	Params []Param
}

// Len returns the number of parameters.
func (g Generics) Len() int { return len(g.Params) }

// Lifetimes returns the names of the lifetime parameters in order.
func (g Generics) Lifetimes() []string {
	var out []string
	for _, p := range g.Params {
		if p.Kind == LifetimeParam {
			out = append(out, p.Name)
		}
	}
	return out
}

// TypeParams returns the type parameters in order.
func (g Generics) TypeParams() []Param {
	var out []Param
	for _, p := range g.Params {
		if p.Kind == TypeParam {
			out = append(out, p)
		}
	}
	return out
}

// Lookup finds a parameter by name.
func (g Generics) Lookup(name string) (Param, bool) {
	for _, p := range g.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Bound is a single bound of a type or lifetime: either a lifetime like 'a, or
// a trait path like Into<String>. Maybe marks a relaxed bound like ?Sized.
type Bound struct {
	Lifetime string
	Trait    *Path
	Maybe    bool
}

// LifetimeBound returns a lifetime bound.
func LifetimeBound(lifetime string) Bound { return Bound{Lifetime: lifetime} }

// TraitBound returns a trait bound.
func TraitBound(trait Path) Bound { return Bound{Trait: &trait} }

func (b Bound) String() string {
	var sb strings.Builder
	b.write(&sb)
	return sb.String()
}

func (b Bound) write(sb *strings.Builder) {
	if b.Lifetime != "" {
		sb.WriteString(b.Lifetime)
		return
	}
	if b.Maybe {
		sb.WriteString("?")
	}
	b.Trait.write(sb)
}

func writeBounds(sb *strings.Builder, bounds []Bound) {
	for i, b := range bounds {
		if i != 0 {
			sb.WriteString(" + ")
		}
		b.write(sb)
	}
}

// Predicate is a where-clause predicate. Exactly one of Lifetime and Type is
// set.
//
//	'b: 'a
//	T: Into<String> + 'a
type Predicate struct {
	Lifetime string
	Type     *Type
	Bounds   []Bound
}

func (p Predicate) String() string {
	var sb strings.Builder
	if p.Lifetime != "" {
		sb.WriteString(p.Lifetime)
	} else {
		p.Type.write(&sb)
	}
	sb.WriteString(": ")
	writeBounds(&sb, p.Bounds)
	return sb.String()
}

// GenericArg is an argument in a generic argument list. Exactly one of the
// fields is set, except Binding which comes with Type for associated type
// bindings like Item = T.
type GenericArg struct {
	Lifetime string
	Type     *Type
	Const    string
	Binding  string
}

// LifetimeArg returns a lifetime argument.
func LifetimeArg(lifetime string) GenericArg { return GenericArg{Lifetime: lifetime} }

// TypeArg returns a type argument.
func TypeArg(t Type) GenericArg { return GenericArg{Type: &t} }

// ConstArg returns a const argument. The expression is kept as written.
func ConstArg(expr string) GenericArg { return GenericArg{Const: expr} }

func (a GenericArg) String() string {
	var sb strings.Builder
	a.write(&sb)
	return sb.String()
}

func (a GenericArg) write(sb *strings.Builder) {
	switch {
	case a.Lifetime != "":
		sb.WriteString(a.Lifetime)
	case a.Type != nil:
		if a.Binding != "" {
			sb.WriteString(a.Binding)
			sb.WriteString(" = ")
		}
		a.Type.write(sb)
	default:
		sb.WriteString(a.Const)
	}
}

// FormatArgs renders "<A, B>" or an empty string for no arguments.
func FormatArgs(args []GenericArg) string {
	var sb strings.Builder
	writeArgs(&sb, args)
	return sb.String()
}

func writeArgs(sb *strings.Builder, args []GenericArg) {
	if len(args) == 0 {
		return
	}
	sb.WriteString("<")
	for i, arg := range args {
		if i != 0 {
			sb.WriteString(", ")
		}
		arg.write(sb)
	}
	sb.WriteString(">")
}

// FormatParams renders a parameter list for an impl header, like
// "<'a, T: Clone, const N: usize>". Defaults are omitted because they are
// not allowed there. An empty list renders as an empty string.
func FormatParams(params []Param) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<")
	for i, p := range params {
		if i != 0 {
			sb.WriteString(", ")
		}
		if p.Kind == ConstParam {
			sb.WriteString("const ")
		}
		sb.WriteString(p.Name)
		switch {
		case p.Kind == ConstParam:
			sb.WriteString(": ")
			p.ConstType.write(&sb)
		case len(p.Bounds) != 0:
			sb.WriteString(": ")
			writeBounds(&sb, p.Bounds)
		}
	}
	sb.WriteString(">")
	return sb.String()
}

// FormatBounds renders bounds joined by " + ".
func FormatBounds(bounds []Bound) string {
	var sb strings.Builder
	writeBounds(&sb, bounds)
	return sb.String()
}
