package selector

import (
	"github.com/brightforge/concord/model"
	"github.com/brightforge/concord/move"
)

// Change iterates the (entity, value) product, yielding a move.Change per
// pair — spec.md §4.4's change selector.
type Change[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	Count      func(sol *Sol) int
	Values     func(sol *Sol) []V
}

func (s Change[Sol, V]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	n := s.Count(sol)
	values := s.Values(sol)
	entity, valueIdx := 0, 0
	return &funcIterator[move.Move[Sol]]{pull: func() (move.Move[Sol], bool) {
		for entity < n {
			if valueIdx >= len(values) {
				entity++
				valueIdx = 0
				continue
			}
			m := move.Change[Sol, V]{Descriptor: s.Descriptor, Entity: entity, Value: values[valueIdx]}
			valueIdx++
			return m, true
		}
		var zero move.Move[Sol]
		return zero, false
	}}
}

func (s Change[Sol, V]) Size(sol *Sol) int {
	return s.Count(sol) * len(s.Values(sol))
}

func (s Change[Sol, V]) IsNeverEnding() bool { return false }

// Swap iterates entity pairs (i, j) with i < j, yielding a move.Swap per
// pair.
type Swap[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	Count      func(sol *Sol) int
}

func (s Swap[Sol, V]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	n := s.Count(sol)
	i, j := 0, 1
	return &funcIterator[move.Move[Sol]]{pull: func() (move.Move[Sol], bool) {
		for i < n {
			if j >= n {
				i++
				j = i + 1
				continue
			}
			m := move.Swap[Sol, V]{Descriptor: s.Descriptor, EntityA: i, EntityB: j}
			j++
			return m, true
		}
		var zero move.Move[Sol]
		return zero, false
	}}
}

func (s Swap[Sol, V]) Size(sol *Sol) int {
	n := s.Count(sol)
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

func (s Swap[Sol, V]) IsNeverEnding() bool { return false }
