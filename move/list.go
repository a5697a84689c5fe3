package move

import (
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/model"
)

// ListInsert inserts Value at Position in Entity's list variable.
type ListInsert[Sol any, V any] struct {
	Descriptor *model.ListDescriptor[Sol, V]
	Entity     int
	Position   int
	Value      V
}

func (m ListInsert[Sol, V]) IsDoable(sol *Sol) bool {
	return m.Position >= 0 && m.Position <= m.Descriptor.Len(sol, m.Entity)
}

func (m ListInsert[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	d.BeforeVariableChanged(m.Descriptor.Index, m.Entity)
	m.Descriptor.Insert(sol, m.Entity, m.Position, m.Value)
	d.AfterVariableChanged(m.Descriptor.Index, m.Entity)

	desc, entity, pos := m.Descriptor, m.Entity, m.Position
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     entity,
		Apply:           func(sol *Sol) { desc.Remove(sol, entity, pos) },
	})
}

func (m ListInsert[Sol, V]) EntityIndices() []int { return []int{m.Entity} }
func (m ListInsert[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m ListInsert[Sol, V]) VariableName() string { return m.Descriptor.Name }

// ListRemove removes the element at Position from Entity's list variable.
type ListRemove[Sol any, V any] struct {
	Descriptor *model.ListDescriptor[Sol, V]
	Entity     int
	Position   int
}

func (m ListRemove[Sol, V]) IsDoable(sol *Sol) bool {
	return m.Position >= 0 && m.Position < m.Descriptor.Len(sol, m.Entity)
}

func (m ListRemove[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	d.BeforeVariableChanged(m.Descriptor.Index, m.Entity)
	removed := m.Descriptor.Remove(sol, m.Entity, m.Position)
	d.AfterVariableChanged(m.Descriptor.Index, m.Entity)

	desc, entity, pos := m.Descriptor, m.Entity, m.Position
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     entity,
		Apply:           func(sol *Sol) { desc.Insert(sol, entity, pos, removed) },
	})
}

func (m ListRemove[Sol, V]) EntityIndices() []int { return []int{m.Entity} }
func (m ListRemove[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m ListRemove[Sol, V]) VariableName() string { return m.Descriptor.Name }

// ListMove relocates the element at SourcePosition in SourceEntity's list to
// DestPosition in DestEntity's list, possibly crossing entities (e.g. a VRP
// customer moving from one vehicle's route to another's).
type ListMove[Sol any, V any] struct {
	Descriptor    *model.ListDescriptor[Sol, V]
	SourceEntity  int
	SourcePos     int
	DestEntity    int
	DestPos       int
}

func (m ListMove[Sol, V]) IsDoable(sol *Sol) bool {
	if m.SourcePos < 0 || m.SourcePos >= m.Descriptor.Len(sol, m.SourceEntity) {
		return false
	}
	destLen := m.Descriptor.Len(sol, m.DestEntity)
	if m.SourceEntity == m.DestEntity {
		destLen--
	}
	return m.DestPos >= 0 && m.DestPos <= destLen
}

func (m ListMove[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	d.BeforeVariableChanged(m.Descriptor.Index, m.SourceEntity)
	if m.DestEntity != m.SourceEntity {
		d.BeforeVariableChanged(m.Descriptor.Index, m.DestEntity)
	}

	value := m.Descriptor.Remove(sol, m.SourceEntity, m.SourcePos)
	m.Descriptor.Insert(sol, m.DestEntity, m.DestPos, value)

	d.AfterVariableChanged(m.Descriptor.Index, m.SourceEntity)
	if m.DestEntity != m.SourceEntity {
		d.AfterVariableChanged(m.Descriptor.Index, m.DestEntity)
	}

	desc, srcEntity, srcPos, dstEntity, dstPos := m.Descriptor, m.SourceEntity, m.SourcePos, m.DestEntity, m.DestPos
	// One entry per entity, so undo notifies the source entity as well as
	// the destination; LIFO order removes from the destination first.
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     srcEntity,
		Apply:           func(sol *Sol) { desc.Insert(sol, srcEntity, srcPos, value) },
	})
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     dstEntity,
		Apply:           func(sol *Sol) { desc.Remove(sol, dstEntity, dstPos) },
	})
}

func (m ListMove[Sol, V]) EntityIndices() []int { return []int{m.SourceEntity, m.DestEntity} }
func (m ListMove[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m ListMove[Sol, V]) VariableName() string { return m.Descriptor.Name }

// ListSwap exchanges the elements at two positions, possibly in two
// different entities' lists.
type ListSwap[Sol any, V any] struct {
	Descriptor *model.ListDescriptor[Sol, V]
	EntityA    int
	PosA       int
	EntityB    int
	PosB       int
}

func (m ListSwap[Sol, V]) IsDoable(sol *Sol) bool {
	if m.EntityA == m.EntityB && m.PosA == m.PosB {
		return false
	}
	return m.PosA >= 0 && m.PosA < m.Descriptor.Len(sol, m.EntityA) &&
		m.PosB >= 0 && m.PosB < m.Descriptor.Len(sol, m.EntityB)
}

func (m ListSwap[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	d.BeforeVariableChanged(m.Descriptor.Index, m.EntityA)
	if m.EntityB != m.EntityA {
		d.BeforeVariableChanged(m.Descriptor.Index, m.EntityB)
	}

	valueA := m.Descriptor.Get(sol, m.EntityA, m.PosA)
	valueB := m.Descriptor.Get(sol, m.EntityB, m.PosB)
	m.Descriptor.Remove(sol, m.EntityA, m.PosA)
	m.Descriptor.Insert(sol, m.EntityA, m.PosA, valueB)
	m.Descriptor.Remove(sol, m.EntityB, m.PosB)
	m.Descriptor.Insert(sol, m.EntityB, m.PosB, valueA)

	d.AfterVariableChanged(m.Descriptor.Index, m.EntityA)
	if m.EntityB != m.EntityA {
		d.AfterVariableChanged(m.Descriptor.Index, m.EntityB)
	}

	desc, entityA, posA, entityB, posB := m.Descriptor, m.EntityA, m.PosA, m.EntityB, m.PosB
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     entityA,
		Apply: func(sol *Sol) {
			desc.Remove(sol, entityA, posA)
			desc.Insert(sol, entityA, posA, valueA)
		},
	})
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     entityB,
		Apply: func(sol *Sol) {
			desc.Remove(sol, entityB, posB)
			desc.Insert(sol, entityB, posB, valueB)
		},
	})
}

func (m ListSwap[Sol, V]) EntityIndices() []int { return []int{m.EntityA, m.EntityB} }
func (m ListSwap[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m ListSwap[Sol, V]) VariableName() string { return m.Descriptor.Name }

// ListReverse reverses the sub-range [Start, End) of Entity's list.
type ListReverse[Sol any, V any] struct {
	Descriptor *model.ListDescriptor[Sol, V]
	Entity     int
	Start      int
	End        int
}

func (m ListReverse[Sol, V]) IsDoable(sol *Sol) bool {
	return m.Start >= 0 && m.End > m.Start+1 && m.End <= m.Descriptor.Len(sol, m.Entity)
}

func (m ListReverse[Sol, V]) Do(d Director[Sol]) {
	sol := d.WorkingSolution()
	d.BeforeVariableChanged(m.Descriptor.Index, m.Entity)
	m.Descriptor.Reverse(sol, m.Entity, m.Start, m.End)
	d.AfterVariableChanged(m.Descriptor.Index, m.Entity)

	desc, entity, start, end := m.Descriptor, m.Entity, m.Start, m.End
	d.RegisterUndo(director.UndoEntry[Sol]{
		DescriptorIndex: desc.Index,
		EntityIndex:     entity,
		Apply:           func(sol *Sol) { desc.Reverse(sol, entity, start, end) },
	})
}

func (m ListReverse[Sol, V]) EntityIndices() []int { return []int{m.Entity} }
func (m ListReverse[Sol, V]) DescriptorIndex() int { return m.Descriptor.Index }
func (m ListReverse[Sol, V]) VariableName() string { return m.Descriptor.Name }
