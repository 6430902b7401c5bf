package codefmt

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"

	"github.com/sublee/staticgen/internal/decl"
)

func wrapPrintfArgs(args []any) []any {
	for i, arg := range args {
		switch arg.(type) {
		case decl.Type, decl.Path, []decl.GenericArg, []decl.Param, []decl.Bound:
			args[i] = formatArg{arg}
		case token.Position, Poser:
			args[i] = formatArg{arg}
		}
	}
	return args
}

type formatArg struct{ x any }

func (f formatArg) code() (string, bool) {
	switch x := f.x.(type) {
	case decl.Type:
		return x.String(), true
	case decl.Path:
		return x.String(), true
	case []decl.Bound:
		return decl.FormatBounds(x), true
	}
	return "", false
}

func (f formatArg) position() (token.Position, bool) {
	switch x := f.x.(type) {
	case token.Position:
		return x, true
	case Poser:
		return x.Pos(), true
	}
	return token.Position{}, false
}

// Format implements fmt.Formatter interface.
//
// Supported verbs:
//
//	%t: decl.Type, decl.Path, []decl.Bound - code form
//	%a: []decl.GenericArg - "<A, B>", or nothing if empty
//	%g: []decl.Param - "<'a, T: B>" without defaults, or nothing if empty
//	%b: token.Position or Poser - file:line:column form
//
// For other verbs, it falls back to the default formatting of fmt package.
func (f formatArg) Format(s fmt.State, verb rune) {
	switch verb {
	case 't':
		code, ok := f.code()
		if !ok {
			fmt.Fprintf(s, "[%%t cannot format %T]", f.x)
			return
		}
		_, _ = io.WriteString(s, code)

	case 'a':
		args, ok := f.x.([]decl.GenericArg)
		if !ok {
			fmt.Fprintf(s, "[%%a cannot format %T]", f.x)
			return
		}
		_, _ = io.WriteString(s, decl.FormatArgs(args))

	case 'g':
		params, ok := f.x.([]decl.Param)
		if !ok {
			fmt.Fprintf(s, "[%%g cannot format %T]", f.x)
			return
		}
		_, _ = io.WriteString(s, decl.FormatParams(params))

	case 'b':
		pos, ok := f.position()
		if !ok {
			fmt.Fprintf(s, "[%%b cannot format %T]", f.x)
			return
		}
		_, _ = io.WriteString(s, FormatPosition(pos))

	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), f.x)
	}
}

// Fprintf formats like [fmt.Fprintf] with the extra verbs of [formatArg].
func Fprintf(w io.Writer, format string, args ...any) (int, error) {
	args = wrapPrintfArgs(args)
	return fmt.Fprintf(w, format, args...)
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if filepath.IsAbs(filename) {
		if rel, err := filepath.Rel(wd, filename); err == nil {
			filename = rel
		}
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
