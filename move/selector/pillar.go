package selector

import (
	"github.com/brightforge/concord/model"
	"github.com/brightforge/concord/move"
)

// Pillar groups entities by their current value and yields one
// move.PillarChange per group, reassigning the whole equivalence class to
// each candidate value in turn.
type Pillar[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	Count      func(sol *Sol) int
	Values     func(sol *Sol) []V
}

func (s Pillar[Sol, V]) groups(sol *Sol) [][]int {
	byValue := make(map[V][]int)
	order := make([]V, 0)
	for i, n := 0, s.Count(sol); i < n; i++ {
		v, ok := s.Descriptor.Get(sol, i)
		if !ok {
			continue
		}
		if _, seen := byValue[v]; !seen {
			order = append(order, v)
		}
		byValue[v] = append(byValue[v], i)
	}
	groups := make([][]int, 0, len(order))
	for _, v := range order {
		groups = append(groups, byValue[v])
	}
	return groups
}

func (s Pillar[Sol, V]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	groups := s.groups(sol)
	values := s.Values(sol)
	gi, vi := 0, 0
	return &funcIterator[move.Move[Sol]]{pull: func() (move.Move[Sol], bool) {
		for gi < len(groups) {
			if vi >= len(values) {
				gi++
				vi = 0
				continue
			}
			m := move.PillarChange[Sol, V]{Descriptor: s.Descriptor, Entities: groups[gi], Value: values[vi]}
			vi++
			return m, true
		}
		var zero move.Move[Sol]
		return zero, false
	}}
}

func (s Pillar[Sol, V]) Size(sol *Sol) int {
	return len(s.groups(sol)) * len(s.Values(sol))
}

func (s Pillar[Sol, V]) IsNeverEnding() bool { return false }
