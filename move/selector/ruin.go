package selector

import (
	"math/rand"

	"github.com/brightforge/concord/model"
	"github.com/brightforge/concord/move"
)

// Ruin draws random subsets of entities sized within [Min, Max] and yields
// a move.Ruin per subset, bounded by PerStep draws — spec.md §4.4's ruin
// selector for large-neighborhood search's destroy step. It never
// exhausts on its own.
type Ruin[Sol any, V comparable] struct {
	Descriptor *model.Descriptor[Sol, V]
	Count      func(sol *Sol) int
	Min, Max   int
	PerStep    int
	Rand       *rand.Rand
}

func (s Ruin[Sol, V]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	n := s.Count(sol)
	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	drawn := 0
	return &funcIterator[move.Move[Sol]]{pull: func() (move.Move[Sol], bool) {
		if drawn >= s.PerStep || n == 0 {
			var zero move.Move[Sol]
			return zero, false
		}
		drawn++
		size := s.Min
		if s.Max > s.Min {
			size += rng.Intn(s.Max - s.Min + 1)
		}
		if size > n {
			size = n
		}
		perm := rng.Perm(n)
		entities := append([]int{}, perm[:size]...)
		return move.Ruin[Sol, V]{Descriptor: s.Descriptor, Entities: entities}, true
	}}
}

func (s Ruin[Sol, V]) Size(sol *Sol) int { return s.PerStep }

func (s Ruin[Sol, V]) IsNeverEnding() bool { return false }
