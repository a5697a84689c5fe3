package move

import (
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/model"
)

// Ruin unassigns every entity in Entities (large-neighborhood search's
// destroy step): each entity's variable becomes unassigned, to be
// reassigned by a subsequent construction/repair move.
type Ruin[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	Entities   []int
}

func (m Ruin[Sol, V]) IsDoable(sol *Sol) bool {
	for _, e := range m.Entities {
		if _, ok := m.Descriptor.Get(sol, e); ok {
			return true
		}
	}
	return false
}

func (m Ruin[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	var zero V
	for _, e := range m.Entities {
		oldValue, hadOld := m.Descriptor.Get(sol, e)
		if !hadOld {
			continue
		}
		d.BeforeVariableChanged(m.Descriptor.Index, e)
		m.Descriptor.Set(sol, e, zero, false)
		d.AfterVariableChanged(m.Descriptor.Index, e)

		desc, entity := m.Descriptor, e
		d.RegisterUndo(director.UndoEntry[Sol]{
			DescriptorIndex: desc.Index,
			EntityIndex:     entity,
			Apply:           func(sol *Sol) { desc.Set(sol, entity, oldValue, hadOld) },
		})
	}
}

func (m Ruin[Sol, V]) EntityIndices() []int { return append([]int{}, m.Entities...) }
func (m Ruin[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m Ruin[Sol, V]) VariableName() string { return m.Descriptor.Name }
