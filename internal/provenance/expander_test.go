package provenance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"base-resolver/internal/schema"
)

func TestMemoExpanderOnce(t *testing.T) {
	calls := map[string]int{}

	e := NewMemoExpander(func(def *schema.Definition) error {
		calls[def.ID]++
		return nil
	}, 0, nil)

	a := def("a", "")
	require.NoError(t, e.EnsureExpanded(a))
	require.NoError(t, e.EnsureExpanded(a))

	assert.Equal(t, map[string]int{"a": 1}, calls)
	assert.True(t, e.IsExpanded("a"))
	assert.False(t, e.IsExpanded("b"))
	assert.Equal(t, 1, e.Expansions())
}

func TestMemoExpanderFailureNotMemoized(t *testing.T) {
	boom := errors.New("boom")
	fail := true

	e := NewMemoExpander(func(*schema.Definition) error {
		if fail {
			return boom
		}

		return nil
	}, 0, nil)

	a := def("a", "")
	err := e.EnsureExpanded(a)
	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "expanding a: boom")
	assert.False(t, e.IsExpanded("a"))

	fail = false
	require.NoError(t, e.EnsureExpanded(a))
	assert.True(t, e.IsExpanded("a"))
}

func TestMemoExpanderCycle(t *testing.T) {
	defs := map[string]*schema.Definition{
		"a": def("a", "b"),
		"b": def("b", "c"),
		"c": def("c", "b"),
	}

	var e *MemoExpander
	e = NewMemoExpander(func(d *schema.Definition) error {
		return e.EnsureExpanded(defs[d.Ancestor])
	}, 0, nil)

	err := e.EnsureExpanded(defs["a"])

	var cyc *CyclicAncestryError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"b", "c", "b"}, cyc.Chain)
	assert.Zero(t, e.Expansions())
}

func TestMemoExpanderDepth(t *testing.T) {
	var e *MemoExpander
	e = NewMemoExpander(func(d *schema.Definition) error {
		if d.Ancestor == "" {
			return nil
		}

		return e.EnsureExpanded(def(d.Ancestor, ""))
	}, 1, nil)

	require.NoError(t, e.EnsureExpanded(def("leaf", "")))

	err := e.EnsureExpanded(def("child", "parent"))
	require.ErrorIs(t, err, ErrDepthExceeded)
	assert.Contains(t, err.Error(), "expanding parent below child")
}
