package lcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sublee/staticgen/internal/lcs"
)

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "pre", lcs.CommonPrefix([]string{"prefix", "prefill", "present"}))
	assert.Equal(t, "hel", lcs.CommonPrefix([]string{"hello", "hell", "hel"}))
	assert.Equal(t, "", lcs.CommonPrefix([]string{"dependency", "feel", "extend"}))
	assert.Equal(t, "", lcs.CommonPrefix(nil))
}

func TestCommonPrefixKeepsInput(t *testing.T) {
	ss := []string{"b", "a"}
	lcs.CommonPrefix(ss)
	assert.Equal(t, []string{"b", "a"}, ss)
}

func TestCommonPrefixUnicode(t *testing.T) {
	assert.Equal(t, "안", lcs.CommonPrefix([]string{"안경", "안돼", "안녕"}))
}

func TestClosest(t *testing.T) {
	keys := []string{"name", "generics", "where", "fields", "variants"}

	got, ok := lcs.Closest("field", keys, 3)
	assert.True(t, ok)
	assert.Equal(t, "fields", got)

	got, ok = lcs.Closest("variant_list", keys, 3)
	assert.True(t, ok)
	assert.Equal(t, "variants", got)

	_, ok = lcs.Closest("color", keys, 3)
	assert.False(t, ok)

	// "ge" is too short.
	_, ok = lcs.Closest("gerund", keys, 3)
	assert.False(t, ok)

	// "wh" covers half of "whom" but is shorter than 3 bytes.
	_, ok = lcs.Closest("whom", keys, 3)
	assert.False(t, ok)
}

func TestClosestTie(t *testing.T) {
	got, ok := lcs.Closest("outlives", []string{"outlives_a", "outlives_b"}, 3)
	assert.True(t, ok)
	assert.Equal(t, "outlives_a", got)
}

func TestClosestIgnoresItself(t *testing.T) {
	_, ok := lcs.Closest("name", []string{"name"}, 1)
	assert.False(t, ok)
}
