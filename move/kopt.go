package move

import (
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/model"
)

// KOpt reassembles Entity's list variable into a new ordering: Permutation
// is a list of the same length as the current list where position i of the
// new list holds the element currently at position Permutation[i] of the
// old list. A classic k-opt cuts the cycle at k points and reconnects the
// resulting segments in a different order, possibly reversing some of
// them; any such reconnection is expressible as one Permutation.
type KOpt[Sol any, V any] struct {
	Descriptor  *model.ListDescriptor[Sol, V]
	Entity      int
	Permutation []int
}

func (m KOpt[Sol, V]) IsDoable(sol *Sol) bool {
	n := m.Descriptor.Len(sol, m.Entity)
	if len(m.Permutation) != n {
		return false
	}
	for i, p := range m.Permutation {
		if p != i {
			return true
		}
	}
	return false
}

func (m KOpt[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	n := m.Descriptor.Len(sol, m.Entity)

	d.BeforeVariableChanged(m.Descriptor.Index, m.Entity)

	old := make([]V, n)
	for i := 0; i < n; i++ {
		old[i] = m.Descriptor.Get(sol, m.Entity, i)
	}
	for i := n - 1; i >= 0; i-- {
		m.Descriptor.Remove(sol, m.Entity, i)
	}
	for i, p := range m.Permutation {
		m.Descriptor.Insert(sol, m.Entity, i, old[p])
	}

	d.AfterVariableChanged(m.Descriptor.Index, m.Entity)

	desc, entity := m.Descriptor, m.Entity
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     entity,
		Apply: func(sol *Sol) {
			for i := n - 1; i >= 0; i-- {
				desc.Remove(sol, entity, i)
			}
			for i := range old {
				desc.Insert(sol, entity, i, old[i])
			}
		},
	})
}

func (m KOpt[Sol, V]) EntityIndices() []int { return []int{m.Entity} }
func (m KOpt[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m KOpt[Sol, V]) VariableName() string { return m.Descriptor.Name }
