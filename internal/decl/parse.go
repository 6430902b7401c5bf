package decl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError reports a malformed type, bound, parameter or predicate.
type SyntaxError struct {
	Input  string
	Offset int // byte offset in Input
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Msg, e.Offset, e.Input)
}

// ParseType parses a type expression like "Cow<'a, str>" or "&'static [u8]".
func ParseType(s string) (Type, error) {
	p, err := newParser(s)
	if err != nil {
		return Type{}, err
	}
	t, err := p.typ()
	if err != nil {
		return Type{}, err
	}
	return t, p.expectEOF()
}

// ParseBounds parses bounds joined by "+", like "Into<String> + 'a".
func ParseBounds(s string) ([]Bound, error) {
	p, err := newParser(s)
	if err != nil {
		return nil, err
	}
	bounds, err := p.bounds()
	if err != nil {
		return nil, err
	}
	return bounds, p.expectEOF()
}

// ParseParam parses a generic parameter.
//
//	'a
//	'b: 'a + 'c
//	T
//	T: Into<String> + 'a = String
//	const N: usize = 4
func ParseParam(s string) (Param, error) {
	p, err := newParser(s)
	if err != nil {
		return Param{}, err
	}
	param, err := p.param()
	if err != nil {
		return Param{}, err
	}
	return param, p.expectEOF()
}

// ParsePredicate parses a where-clause predicate like "'b: 'a" or
// "T: Into<String>".
func ParsePredicate(s string) (Predicate, error) {
	p, err := newParser(s)
	if err != nil {
		return Predicate{}, err
	}
	pred, err := p.predicate()
	if err != nil {
		return Predicate{}, err
	}
	return pred, p.expectEOF()
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLifetime
	tokLiteral
	tokPunct
)

type lexToken struct {
	kind tokenKind
	text string
	off  int
	end  int
}

// lex splits s into tokens. Multi-character punctuation is limited to "::"
// and "->"; ">>" is two tokens so nested generic arguments close naturally.
func lex(s string) ([]lexToken, error) {
	var toks []lexToken
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '\'':
			j := i + 1
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			if j < len(s) && s[j] == '\'' {
				toks = append(toks, lexToken{tokLiteral, s[i : j+1], i, j + 1})
				i = j + 1
				continue
			}
			if j == i+1 {
				return nil, &SyntaxError{s, i, "bad lifetime"}
			}
			toks = append(toks, lexToken{tokLifetime, s[i:j], i, j})
			i = j

		case r == '_' || unicode.IsLetter(r):
			j := i
			if strings.HasPrefix(s[i:], "r#") {
				j += 2
			}
			for j < len(s) {
				r, size := utf8.DecodeRuneInString(s[j:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				j += size
			}
			toks = append(toks, lexToken{tokIdent, s[i:j], i, j})
			i = j

		case unicode.IsDigit(r):
			j := i
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			toks = append(toks, lexToken{tokLiteral, s[i:j], i, j})
			i = j

		case r == '"':
			j := i + 1
			for j < len(s) && s[j] != '"' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(s) {
				return nil, &SyntaxError{s, i, "unterminated string"}
			}
			toks = append(toks, lexToken{tokLiteral, s[i : j+1], i, j + 1})
			i = j + 1

		default:
			if strings.HasPrefix(s[i:], "::") || strings.HasPrefix(s[i:], "->") {
				toks = append(toks, lexToken{tokPunct, s[i : i+2], i, i + 2})
				i += 2
				continue
			}
			if !strings.ContainsRune("<>,:+=&*[];()?!{}-#.", r) {
				return nil, &SyntaxError{s, i, fmt.Sprintf("unexpected %q", r)}
			}
			toks = append(toks, lexToken{tokPunct, s[i : i+size], i, i + size})
			i += size
		}
	}
	toks = append(toks, lexToken{tokEOF, "", len(s), len(s)})
	return toks, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

type parser struct {
	src  string
	toks []lexToken
	pos  int
}

func newParser(s string) (*parser, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	return &parser{src: s, toks: toks}, nil
}

func (p *parser) peek() lexToken { return p.toks[p.pos] }
func (p *parser) peekAt(n int) lexToken {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() lexToken {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) is(text string) bool {
	t := p.peek()
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{p.src, p.peek().off, fmt.Sprintf(format, args...)}
}

func (p *parser) expect(text string) error {
	if !p.accept(text) {
		return p.errorf("expected %q, found %s", text, p.describe())
	}
	return nil
}

func (p *parser) expectEOF() error {
	if p.peek().kind != tokEOF {
		return p.errorf("unexpected %s", p.describe())
	}
	return nil
}

func (p *parser) describe() string {
	t := p.peek()
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

func (p *parser) ident() (string, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", p.errorf("expected identifier, found %s", p.describe())
	}
	p.next()
	return t.text, nil
}

func (p *parser) lifetime() (string, error) {
	t := p.peek()
	if t.kind != tokLifetime {
		return "", p.errorf("expected lifetime, found %s", p.describe())
	}
	p.next()
	return t.text, nil
}

func (p *parser) typ() (Type, error) {
	t := p.peek()
	switch {
	case p.is("&"):
		p.next()
		var out Type
		out.Kind = KindRef
		if p.peek().kind == tokLifetime {
			out.Lifetime = p.next().text
		}
		out.Mut = p.accept("mut")
		elem, err := p.typ()
		if err != nil {
			return Type{}, err
		}
		out.Elem = &elem
		return out, nil

	case p.is("*"):
		p.next()
		var out Type
		out.Kind = KindPtr
		switch {
		case p.accept("const"):
		case p.accept("mut"):
			out.Mut = true
		default:
			return Type{}, p.errorf("expected const or mut after *")
		}
		elem, err := p.typ()
		if err != nil {
			return Type{}, err
		}
		out.Elem = &elem
		return out, nil

	case p.is("["):
		p.next()
		elem, err := p.typ()
		if err != nil {
			return Type{}, err
		}
		if p.accept("]") {
			return Type{Kind: KindSlice, Elem: &elem}, nil
		}
		if err := p.expect(";"); err != nil {
			return Type{}, err
		}
		n, err := p.raw("[", "]")
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindArray, Elem: &elem, Len: n}, nil

	case p.is("("):
		p.next()
		var elems []Type
		trailingComma := false
		for !p.is(")") {
			elem, err := p.typ()
			if err != nil {
				return Type{}, err
			}
			elems = append(elems, elem)
			trailingComma = p.accept(",")
			if !trailingComma {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return Type{}, err
		}
		if len(elems) == 1 && !trailingComma {
			// Parenthesized type
			return elems[0], nil
		}
		if elems == nil {
			elems = []Type{}
		}
		return Type{Kind: KindTuple, Elems: elems}, nil

	case p.is("!"):
		p.next()
		return Type{Kind: KindNever}, nil

	case p.is("_"):
		p.next()
		return Type{Kind: KindInfer}, nil

	case p.is("dyn"):
		p.next()
		bounds, err := p.bounds()
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindDyn, Bounds: bounds}, nil

	case p.is("impl"), p.is("fn"), p.is("unsafe"), p.is("extern"):
		return Type{}, p.errorf("unsupported type syntax %q", t.text)

	case p.is("<"):
		p.next()
		self, err := p.typ()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect("as"); err != nil {
			return Type{}, err
		}
		trait, err := p.path()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect(">"); err != nil {
			return Type{}, err
		}
		if err := p.expect("::"); err != nil {
			return Type{}, err
		}
		assoc, err := p.ident()
		if err != nil {
			return Type{}, err
		}
		if p.is("::") {
			return Type{}, p.errorf("unsupported nested associated path")
		}
		return Projection(self, trait, assoc), nil

	case t.kind == tokIdent || p.is("::"):
		path, err := p.path()
		if err != nil {
			return Type{}, err
		}
		return PathType(path), nil
	}
	return Type{}, p.errorf("expected type, found %s", p.describe())
}

func (p *parser) path() (Path, error) {
	var path Path
	path.Global = p.accept("::")
	for {
		name, err := p.ident()
		if err != nil {
			return Path{}, err
		}
		seg := Segment{Name: name}

		turbofish := p.is("::") && p.peekAt(1).text == "<"
		if turbofish {
			p.next()
		}
		if p.is("<") {
			p.next()
			args, err := p.args()
			if err != nil {
				return Path{}, err
			}
			seg.Args = args
		}
		path.Segments = append(path.Segments, seg)

		if !p.is("::") || p.peekAt(1).kind != tokIdent {
			return path, nil
		}
		p.next()
	}
}

// args parses generic arguments after "<" up to and including ">".
func (p *parser) args() ([]GenericArg, error) {
	args := []GenericArg{}
	for !p.is(">") {
		arg, err := p.arg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(",") {
			break
		}
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) arg() (GenericArg, error) {
	t := p.peek()
	switch {
	case t.kind == tokLifetime:
		p.next()
		return LifetimeArg(t.text), nil

	case t.kind == tokLiteral:
		p.next()
		return ConstArg(t.text), nil

	case p.is("-") && p.peekAt(1).kind == tokLiteral:
		p.next()
		lit := p.next()
		return ConstArg("-" + lit.text), nil

	case p.is("true"), p.is("false"):
		p.next()
		return ConstArg(t.text), nil

	case p.is("{"):
		p.next()
		expr, err := p.raw("{", "}")
		if err != nil {
			return GenericArg{}, err
		}
		return ConstArg("{ " + expr + " }"), nil

	case t.kind == tokIdent && p.peekAt(1).text == "=":
		p.next()
		p.next()
		typ, err := p.typ()
		if err != nil {
			return GenericArg{}, err
		}
		return GenericArg{Type: &typ, Binding: t.text}, nil
	}

	typ, err := p.typ()
	if err != nil {
		return GenericArg{}, err
	}
	return TypeArg(typ), nil
}

// raw consumes tokens up to the close delimiter which balances open, and
// returns the consumed source text without surrounding spaces. The close
// delimiter is consumed too.
func (p *parser) raw(open, close string) (string, error) {
	start := p.peek().off
	depth := 0
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return "", p.errorf("expected %q, found end of input", close)
		case t.kind == tokPunct && t.text == open:
			depth++
		case t.kind == tokPunct && t.text == close:
			if depth == 0 {
				text := strings.TrimSpace(p.src[start:t.off])
				if text == "" {
					return "", p.errorf("expected expression")
				}
				p.next()
				return text, nil
			}
			depth--
		}
		p.next()
	}
}

func (p *parser) bounds() ([]Bound, error) {
	var bounds []Bound
	for {
		b, err := p.bound()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, b)
		if !p.accept("+") {
			return bounds, nil
		}
	}
}

func (p *parser) bound() (Bound, error) {
	if p.peek().kind == tokLifetime {
		return LifetimeBound(p.next().text), nil
	}
	maybe := p.accept("?")
	if p.is("for") {
		return Bound{}, p.errorf("unsupported higher-ranked bound")
	}
	path, err := p.path()
	if err != nil {
		return Bound{}, err
	}
	if p.is("(") {
		return Bound{}, p.errorf("unsupported parenthesized trait arguments")
	}
	b := TraitBound(path)
	b.Maybe = maybe
	return b, nil
}

func (p *parser) lifetimeBounds() ([]Bound, error) {
	var bounds []Bound
	for {
		l, err := p.lifetime()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, LifetimeBound(l))
		if !p.accept("+") {
			return bounds, nil
		}
	}
}

func (p *parser) param() (Param, error) {
	if p.peek().kind == tokLifetime {
		param := Param{Kind: LifetimeParam, Name: p.next().text}
		if p.accept(":") {
			bounds, err := p.lifetimeBounds()
			if err != nil {
				return Param{}, err
			}
			param.Bounds = bounds
		}
		return param, nil
	}

	if p.accept("const") {
		name, err := p.ident()
		if err != nil {
			return Param{}, err
		}
		if err := p.expect(":"); err != nil {
			return Param{}, err
		}
		typ, err := p.typ()
		if err != nil {
			return Param{}, err
		}
		param := Param{Kind: ConstParam, Name: name, ConstType: &typ}
		if p.accept("=") {
			start := p.peek().off
			for p.peek().kind != tokEOF {
				p.next()
			}
			param.ConstDefault = strings.TrimSpace(p.src[start:])
			if param.ConstDefault == "" {
				return Param{}, p.errorf("expected const default")
			}
		}
		return param, nil
	}

	name, err := p.ident()
	if err != nil {
		return Param{}, err
	}
	param := Param{Kind: TypeParam, Name: name}
	if p.accept(":") && !p.is("=") && p.peek().kind != tokEOF {
		bounds, err := p.bounds()
		if err != nil {
			return Param{}, err
		}
		param.Bounds = bounds
	}
	if p.accept("=") {
		def, err := p.typ()
		if err != nil {
			return Param{}, err
		}
		param.Default = &def
	}
	return param, nil
}

func (p *parser) predicate() (Predicate, error) {
	if p.peek().kind == tokLifetime {
		pred := Predicate{Lifetime: p.next().text}
		if err := p.expect(":"); err != nil {
			return Predicate{}, err
		}
		bounds, err := p.lifetimeBounds()
		if err != nil {
			return Predicate{}, err
		}
		pred.Bounds = bounds
		return pred, nil
	}

	typ, err := p.typ()
	if err != nil {
		return Predicate{}, err
	}
	if err := p.expect(":"); err != nil {
		return Predicate{}, err
	}
	bounds, err := p.bounds()
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{Type: &typ, Bounds: bounds}, nil
}
