package move

import (
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/model"
)

// PillarChange reassigns every entity in a pillar (an equivalence class of
// entities currently sharing one value) to a new value together, so the
// class moves as a unit.
type PillarChange[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	Entities   []int
	Value      V
}

func (m PillarChange[Sol, V]) IsDoable(sol *Sol) bool {
	if len(m.Entities) == 0 {
		return false
	}
	for _, e := range m.Entities {
		if cur, ok := m.Descriptor.Get(sol, e); !ok || cur != m.Value {
			return true
		}
	}
	return false
}

func (m PillarChange[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	for _, e := range m.Entities {
		oldValue, hadOld := m.Descriptor.Get(sol, e)
		d.BeforeVariableChanged(m.Descriptor.Index, e)
		m.Descriptor.Set(sol, e, m.Value, true)
		d.AfterVariableChanged(m.Descriptor.Index, e)

		desc, entity := m.Descriptor, e
		d.RegisterUndo(director.UndoEntry[Sol]{
			DescriptorIndex: desc.Index,
			EntityIndex:     entity,
			Apply:           func(sol *Sol) { desc.Set(sol, entity, oldValue, hadOld) },
		})
	}
}

func (m PillarChange[Sol, V]) EntityIndices() []int { return append([]int{}, m.Entities...) }
func (m PillarChange[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m PillarChange[Sol, V]) VariableName() string { return m.Descriptor.Name }

// PillarSwap exchanges the common value of pillar A with the common value
// of pillar B, moving both equivalence classes at once.
type PillarSwap[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	PillarA    []int
	PillarB    []int
}

func (m PillarSwap[Sol, V]) IsDoable(sol *Sol) bool {
	if len(m.PillarA) == 0 || len(m.PillarB) == 0 {
		return false
	}
	a, aok := m.Descriptor.Get(sol, m.PillarA[0])
	b, bok := m.Descriptor.Get(sol, m.PillarB[0])
	return aok != bok || a != b
}

func (m PillarSwap[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	valueA, aok := m.Descriptor.Get(sol, m.PillarA[0])
	valueB, bok := m.Descriptor.Get(sol, m.PillarB[0])

	apply := func(entities []int, newValue V, newOk bool) {
		for _, e := range entities {
			oldValue, hadOld := m.Descriptor.Get(sol, e)
			d.BeforeVariableChanged(m.Descriptor.Index, e)
			m.Descriptor.Set(sol, e, newValue, newOk)
			d.AfterVariableChanged(m.Descriptor.Index, e)

			desc, entity := m.Descriptor, e
			d.RegisterUndo(director.UndoEntry[Sol]{
				DescriptorIndex: desc.Index,
				EntityIndex:     entity,
				Apply:           func(sol *Sol) { desc.Set(sol, entity, oldValue, hadOld) },
			})
		}
	}
	apply(m.PillarA, valueB, bok)
	apply(m.PillarB, valueA, aok)
}

func (m PillarSwap[Sol, V]) EntityIndices() []int {
	return append(append([]int{}, m.PillarA...), m.PillarB...)
}
func (m PillarSwap[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m PillarSwap[Sol, V]) VariableName() string { return m.Descriptor.Name }
