package selector

import (
	"math/rand"
	"sort"

	"github.com/brightforge/concord/move"
)

// Caching materializes Inner's iterator once per step and replays the same
// slice until Reset is called, avoiding recomputation when a phase (e.g.
// VND) re-scans the same neighborhood more than once in a step.
type Caching[Sol any] struct {
	Inner   Selector[Sol, move.Move[Sol]]
	cached  []move.Move[Sol]
	primed  bool
}

func NewCaching[Sol any](inner Selector[Sol, move.Move[Sol]]) *Caching[Sol] {
	return &Caching[Sol]{Inner: inner}
}

func (s *Caching[Sol]) materialize(sol *Sol) []move.Move[Sol] {
	if s.primed {
		return s.cached
	}
	it := s.Inner.Iterator(sol)
	var items []move.Move[Sol]
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		items = append(items, m)
	}
	s.cached = items
	s.primed = true
	return items
}

func (s *Caching[Sol]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	return newSliceIterator(s.materialize(sol))
}

func (s *Caching[Sol]) Size(sol *Sol) int { return len(s.materialize(sol)) }

func (s *Caching[Sol]) IsNeverEnding() bool { return false }

// Reset invalidates the cache, forcing the next Iterator/Size call to
// re-pull from Inner.
func (s *Caching[Sol]) Reset() {
	s.cached = nil
	s.primed = false
}

// Shuffling draws a Fisher-Yates permutation of Inner's materialized
// sequence using a seedable RNG, re-shuffled on every Iterator call.
type Shuffling[Sol any] struct {
	Inner Selector[Sol, move.Move[Sol]]
	Rand  *rand.Rand
}

func (s Shuffling[Sol]) materialize(sol *Sol) []move.Move[Sol] {
	it := s.Inner.Iterator(sol)
	var items []move.Move[Sol]
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		items = append(items, m)
	}
	return items
}

func (s Shuffling[Sol]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	items := s.materialize(sol)
	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
	return newSliceIterator(items)
}

func (s Shuffling[Sol]) Size(sol *Sol) int { return s.Inner.Size(sol) }

func (s Shuffling[Sol]) IsNeverEnding() bool { return false }

// Sorting stably sorts Inner's materialized sequence by Less.
type Sorting[Sol any] struct {
	Inner Selector[Sol, move.Move[Sol]]
	Less  func(a, b move.Move[Sol]) bool
}

func (s Sorting[Sol]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	it := s.Inner.Iterator(sol)
	var items []move.Move[Sol]
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		items = append(items, m)
	}
	sort.SliceStable(items, func(i, j int) bool { return s.Less(items[i], items[j]) })
	return newSliceIterator(items)
}

func (s Sorting[Sol]) Size(sol *Sol) int { return s.Inner.Size(sol) }

func (s Sorting[Sol]) IsNeverEnding() bool { return false }

// Union concatenates A then B, both yielding the same move type.
type Union[Sol any] struct {
	A, B Selector[Sol, move.Move[Sol]]
}

func (s Union[Sol]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	itA := s.A.Iterator(sol)
	itB := s.B.Iterator(sol)
	onA := true
	return &funcIterator[move.Move[Sol]]{pull: func() (move.Move[Sol], bool) {
		if onA {
			if m, ok := itA.Next(); ok {
				return m, true
			}
			onA = false
		}
		return itB.Next()
	}}
}

func (s Union[Sol]) Size(sol *Sol) int {
	a, b := s.A.Size(sol), s.B.Size(sol)
	if a < 0 || b < 0 {
		return -1
	}
	return a + b
}

func (s Union[Sol]) IsNeverEnding() bool { return s.A.IsNeverEnding() || s.B.IsNeverEnding() }
