package codefmt

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisambiguate(t *testing.T) {
	pull, stop := iter.Pull(DisambiguateName("example"))
	defer stop()

	var name string
	var more bool

	name, more = pull()
	assert.Equal(t, "example", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "example2", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "example3", name)
	assert.True(t, more)
}

func TestDisambiguateNumSuffix(t *testing.T) {
	pull, stop := iter.Pull(DisambiguateName("field_0"))
	defer stop()

	var name string
	var more bool

	name, more = pull()
	assert.Equal(t, "field_0", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "field_0_2", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "field_0_3", name)
	assert.True(t, more)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "field_", NormalizeName("field_"))
	assert.Equal(t, "field_name", NormalizeName("Field Name"))
	assert.Equal(t, "elem", NormalizeName("Elem-"))
	assert.Equal(t, "_0x", NormalizeName("0x"))
	assert.Equal(t, "_", NormalizeName("$"))
	assert.Panics(t, func() { NormalizeName("") })
}

func TestNSName(t *testing.T) {
	ns := NewNS("field_0")
	assert.Equal(t, "field_0_2", ns.Name("field_0"))
	assert.Equal(t, "field_0_3", ns.Name("field_0"))
	assert.Equal(t, "field_1", ns.Name("field_1"))
}

func TestNSKeywords(t *testing.T) {
	ns := NewNS()
	assert.Equal(t, "type2", ns.Name("type"))
	assert.False(t, ns.Reserve("match"))
	assert.True(t, ns.Reserve("matches"))
}

func TestNilNS(t *testing.T) {
	var ns NS
	assert.Equal(t, "field_0", ns.Name("field_0"))
}
