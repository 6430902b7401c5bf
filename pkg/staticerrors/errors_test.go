package staticerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sublee/staticgen/pkg/staticerrors"
)

func TestNil(t *testing.T) {
	err := staticerrors.Wrap("", nil)
	assert.Nil(t, err)
}

func TestPrefix0(t *testing.T) {
	err := staticerrors.Wrap("", errors.New("original error"))
	assert.Equal(t, "deriving: original error", err.Error())
}

func TestPrefix1(t *testing.T) {
	err := staticerrors.Wrap("Foo", errors.New("original error"))
	assert.Equal(t, "deriving Foo: original error", err.Error())
}

func TestPrefix2(t *testing.T) {
	err := staticerrors.Wrap("Foo.bar", errors.New("original error"))
	assert.Equal(t, "deriving Foo.bar: original error", err.Error())
}

func TestPrefixFold(t *testing.T) {
	err := staticerrors.Wrap("Foo.bar", errors.New("original error"))
	err = staticerrors.Wrap("Baz::Qux", err)
	assert.Equal(t, "deriving Baz::Qux.bar: original error", err.Error())
}

func TestPrefixFoldNoDot(t *testing.T) {
	err := staticerrors.Wrap("Foo.bar", errors.New("original error"))
	err = staticerrors.Wrap("Baz", err)
	err = staticerrors.Wrap("Qux", err)
	assert.Equal(t, "deriving Qux.bar: original error", err.Error())
}

func TestPrefixFoldLeadingDot(t *testing.T) {
	err := staticerrors.Wrap(".0", staticerrors.ErrNonStaticReference)
	err = staticerrors.Wrap("Foo::First", err)
	assert.Equal(t, "deriving Foo::First.0: non-static reference cannot be made static", err.Error())

	path, ok := staticerrors.Path(err)
	assert.True(t, ok)
	assert.Equal(t, "Foo::First.0", path)
}

func TestPrefixChainSplit(t *testing.T) {
	err := staticerrors.Wrap("Foo.bar", errors.New("original error"))
	err = fmt.Errorf("additional context: %w", err)
	err = staticerrors.Wrap("Baz.qux", err)
	assert.Equal(t, "deriving Baz.qux: additional context: deriving Foo.bar: original error", err.Error())
}

func TestErrorIs(t *testing.T) {
	err := staticerrors.Wrap("Foo.bar", staticerrors.ErrRawPointer)
	err = staticerrors.Wrap("Foo", err)
	assert.ErrorIs(t, err, staticerrors.ErrRawPointer)
	assert.NotErrorIs(t, err, staticerrors.ErrNonStaticReference)
}

type MyError struct{}

func (MyError) Error() string { return "my error" }

func TestErrorAs(t *testing.T) {
	err := staticerrors.Wrap("Foo.bar", MyError{})
	assert.ErrorAs(t, err, &MyError{})
}

func TestPathUnattributed(t *testing.T) {
	_, ok := staticerrors.Path(errors.New("plain"))
	assert.False(t, ok)
}
