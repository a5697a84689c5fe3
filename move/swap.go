package move

import (
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/model"
)

// Swap exchanges the values currently assigned to two entities.
type Swap[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	EntityA    int
	EntityB    int
}

func (m Swap[Sol, V]) IsDoable(sol *Sol) bool {
	if m.EntityA == m.EntityB {
		return false
	}
	a, aok := m.Descriptor.Get(sol, m.EntityA)
	b, bok := m.Descriptor.Get(sol, m.EntityB)
	return aok != bok || a != b
}

func (m Swap[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	oldA, aok := m.Descriptor.Get(sol, m.EntityA)
	oldB, bok := m.Descriptor.Get(sol, m.EntityB)

	d.BeforeVariableChanged(m.Descriptor.Index, m.EntityA)
	d.BeforeVariableChanged(m.Descriptor.Index, m.EntityB)
	m.Descriptor.Set(sol, m.EntityA, oldB, bok)
	m.Descriptor.Set(sol, m.EntityB, oldA, aok)
	d.AfterVariableChanged(m.Descriptor.Index, m.EntityA)
	d.AfterVariableChanged(m.Descriptor.Index, m.EntityB)

	desc, a, b := m.Descriptor, m.EntityA, m.EntityB
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     b,
		Apply:           func(sol *Sol) { desc.Set(sol, b, oldB, bok) },
	})
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     a,
		Apply:           func(sol *Sol) { desc.Set(sol, a, oldA, aok) },
	})
}

func (m Swap[Sol, V]) EntityIndices() []int { return []int{m.EntityA, m.EntityB} }
func (m Swap[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m Swap[Sol, V]) VariableName() string { return m.Descriptor.Name }
