// Package staticerrors defines the errors reported when a declaration cannot
// derive its static conversions.
//
// Errors are attributed to a path inside the declaration, like "Foo.bar" for
// a record field or "Foo::Variant.0" for a positional variant field. Wrapping
// an already attributed error folds the paths together instead of nesting the
// messages:
//
//	err := staticerrors.Wrap(".0", staticerrors.ErrNonStaticReference)
//	err = staticerrors.Wrap("Foo::First", err)
//	err.Error() // deriving Foo::First.0: non-static reference
package staticerrors

import (
	"errors"
	"strings"
)

var (
	// ErrNonStaticReference is reported for a field whose type is a reference
	// with a lifetime other than 'static. Such a reference cannot be converted
	// into an owned value.
	ErrNonStaticReference = errors.New("non-static reference cannot be made static")

	// ErrRawPointer is reported in strict mode for a field whose type contains
	// a raw pointer.
	ErrRawPointer = errors.New("raw pointer cannot be made static")

	// ErrNonStaticTraitObject is reported in strict mode for a field whose type
	// contains a trait object bounded by a lifetime other than 'static.
	ErrNonStaticTraitObject = errors.New("non-static trait object cannot be made static")
)

// Wrap attributes err to path. It returns nil if err is nil.
//
// If err is itself a wrapped error, the first segment of its path is replaced
// by path. So Wrap("Baz.Qux", Wrap("Foo.Bar", err)) is attributed to
// "Baz.Qux.Bar".
func Wrap(path string, err error) error {
	if err == nil {
		return nil
	}

	var inner *wrapError
	if errors.As(err, &inner) && inner == err {
		return &wrapError{path: path + tail(inner.path), err: inner.err}
	}
	return &wrapError{path: path, err: err}
}

// Path returns the path which err is attributed to, or false if err is not
// attributed.
func Path(err error) (string, bool) {
	var w *wrapError
	if errors.As(err, &w) {
		return w.path, true
	}
	return "", false
}

// tail returns path from its first dot, or nothing if there is no dot.
func tail(path string) string {
	if i := strings.IndexByte(path, '.'); i != -1 {
		return path[i:]
	}
	return ""
}

type wrapError struct {
	path string
	err  error
}

func (e *wrapError) Error() string {
	if e.path == "" {
		return "deriving: " + e.err.Error()
	}
	return "deriving " + e.path + ": " + e.err.Error()
}

func (e *wrapError) Unwrap() error { return e.err }
