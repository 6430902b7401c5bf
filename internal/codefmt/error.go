package codefmt

import (
	"fmt"
	"go/token"
)

// Poser has a position in a declaration description file.
type Poser interface{ Pos() token.Position }

// CodeError indicates where the error occurred in user's declaration file.
type CodeError struct {
	err error
	pos token.Position
}

// Unwrap returns the underlying error.
func (e CodeError) Unwrap() error { return e.err }

// Pos returns the position where the error occurred. It may be invalid.
func (e CodeError) Pos() token.Position { return e.pos }

// Error implements the error interface. If pos is valid, the position is
// prepended to the error message.
func (e CodeError) Error() string {
	if e.err == nil {
		return ""
	}

	if !e.pos.IsValid() {
		return e.err.Error()
	}

	return fmt.Sprintf("%s: %s", FormatPosition(e.pos), e.err.Error())
}

// Errorf formats an error message. The error will indicate the position in the
// declaration file if the position is valid.
func Errorf(poser Poser, format string, args ...any) error {
	// Prevent wrapping error in args
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			panic("CodeError cannot wrap error")
		}
	}

	args = wrapPrintfArgs(args)
	return At(poser, fmt.Errorf(format, args...))
}

// At attaches the position of poser to err. Use it instead of [Errorf] to keep
// err inspectable by errors.Is and errors.As.
func At(poser Poser, err error) error {
	if err == nil {
		return nil
	}
	var pos token.Position
	if poser != nil {
		pos = poser.Pos()
	}
	return &CodeError{err, pos}
}
