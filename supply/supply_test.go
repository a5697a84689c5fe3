package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireCachesAndRefcounts(t *testing.T) {
	m := NewManager()
	key := Key{Kind: "inverse", VariableName: "nextVisit"}

	built := 0
	factory := func() *SingletonInverse[int, string] {
		built++
		return NewSingletonInverse[int, string]()
	}

	a := Acquire[*SingletonInverse[int, string]](m, key, factory)
	b := Acquire[*SingletonInverse[int, string]](m, key, factory)

	assert.Same(t, a, b)
	assert.Equal(t, 1, built)
	assert.Equal(t, 1, m.Len())

	m.Release(key)
	_, ok := Get[*SingletonInverse[int, string]](m, key)
	assert.True(t, ok, "still referenced once")

	m.Release(key)
	_, ok = Get[*SingletonInverse[int, string]](m, key)
	assert.False(t, ok, "evicted once refcount hits zero")
}

func TestAcquireTypeMismatchPanics(t *testing.T) {
	m := NewManager()
	key := Key{Kind: "anchor", VariableName: "vehicle"}

	_ = Acquire[*Anchor[int, string]](m, key, func() *Anchor[int, string] { return NewAnchor[int, string]() })

	assert.Panics(t, func() {
		Acquire[*SingletonInverse[int, string]](m, key, func() *SingletonInverse[int, string] {
			return NewSingletonInverse[int, string]()
		})
	})
}

func TestSingletonInverseUpdateMovesPointer(t *testing.T) {
	s := NewSingletonInverse[int, string]()
	s.Insert(1, "entityA")

	old := 1
	s.Update(&old, 2, "entityA")

	_, ok := s.Get(1)
	assert.False(t, ok)
	v, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "entityA", v)
}

func TestAnchorCascadeUpdatesWholeChain(t *testing.T) {
	a := NewAnchor[string, string]()
	a.Set("e1", "depotA")
	a.Set("e2", "depotA")
	a.Set("e3", "depotA")

	a.Cascade([]string{"e2", "e3"}, "depotB")

	v1, _ := a.Get("e1")
	v2, _ := a.Get("e2")
	v3, _ := a.Get("e3")
	assert.Equal(t, "depotA", v1)
	assert.Equal(t, "depotB", v2)
	assert.Equal(t, "depotB", v3)
}
