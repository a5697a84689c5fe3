package move

import (
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/model"
)

// Change assigns a single entity's planning variable to a new value.
type Change[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	Entity     int
	Value      V
}

func (m Change[Sol, V]) IsDoable(sol *Sol) bool {
	cur, ok := m.Descriptor.Get(sol, m.Entity)
	return !ok || cur != m.Value
}

func (m Change[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	oldValue, hadOld := m.Descriptor.Get(sol, m.Entity)

	d.BeforeVariableChanged(m.Descriptor.Index, m.Entity)
	m.Descriptor.Set(sol, m.Entity, m.Value, true)
	d.AfterVariableChanged(m.Descriptor.Index, m.Entity)

	desc, entity := m.Descriptor, m.Entity
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     entity,
		Apply:           func(sol *Sol) { desc.Set(sol, entity, oldValue, hadOld) },
	})
}

func (m Change[Sol, V]) EntityIndices() []int { return []int{m.Entity} }
func (m Change[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m Change[Sol, V]) VariableName() string { return m.Descriptor.Name }
