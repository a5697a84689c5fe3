package selector

import (
	"github.com/brightforge/concord/model"
	"github.com/brightforge/concord/move"
)

// TwoOpt iterates (start, end) segment-reversal pairs within one entity's
// list with end > start+1, yielding a move.ListReverse per pair — spec.md
// §4.4's 2-opt case of the list selector.
type TwoOpt[Sol any, V any] struct {
	Descriptor *model.ListDescriptor[Sol, V]
	Entity     int
}

func (s TwoOpt[Sol, V]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	n := s.Descriptor.Len(sol, s.Entity)
	start, end := 0, 2
	return &funcIterator[move.Move[Sol]]{pull: func() (move.Move[Sol], bool) {
		for start < n {
			if end > n {
				start++
				end = start + 2
				continue
			}
			m := move.ListReverse[Sol, V]{Descriptor: s.Descriptor, Entity: s.Entity, Start: start, End: end}
			end++
			return m, true
		}
		var zero move.Move[Sol]
		return zero, false
	}}
}

func (s TwoOpt[Sol, V]) Size(sol *Sol) int {
	n := s.Descriptor.Len(sol, s.Entity)
	count := 0
	for start := 0; start < n; start++ {
		for end := start + 2; end <= n; end++ {
			count++
		}
	}
	return count
}

func (s TwoOpt[Sol, V]) IsNeverEnding() bool { return false }

// KOpt enumerates, for a fixed arity k (2..5), every non-identity way to
// cut Entity's list into k segments at evenly-discovered positions and
// reconnect them — spec.md §4.4's k-opt case, yielding a move.KOpt per
// reconnection pattern.
//
// The enumeration fixes the first segment's orientation as forward (this
// alone kills the "reverse the whole tour" symmetry) and keeps only
// permutations that are lexicographically no greater than their own
// reversal (removing the remaining "traverse the cycle backward"
// symmetry) before discarding the identity pattern. No permutation of
// k >= 2 distinct segments equals its own reversal, so this yields exactly
// k!/2 · 2^(k-1) − 1 patterns (11 for k = 3).
type KOpt[Sol any, V any] struct {
	Descriptor *model.ListDescriptor[Sol, V]
	Entity     int
	Arity      int
}

type koptPattern struct {
	perm        []int
	reversed    []bool
}

func reconnectionPatterns(k int) []koptPattern {
	perms := permutations(k)
	var kept []koptPattern
	for _, perm := range perms {
		if lexCompare(perm, reverseInts(perm)) > 0 {
			continue
		}
		for mask := 0; mask < (1 << uint(k-1)); mask++ {
			reversed := make([]bool, k)
			for b := 0; b < k-1; b++ {
				reversed[b+1] = mask&(1<<uint(b)) != 0
			}
			if isIdentity(perm) && mask == 0 {
				continue
			}
			kept = append(kept, koptPattern{perm: perm, reversed: reversed})
		}
	}
	return kept
}

func isIdentity(perm []int) bool {
	for i, p := range perm {
		if i != p {
			return false
		}
	}
	return true
}

func reverseInts(xs []int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

func lexCompare(a, b []int) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func permutations(k int) [][]int {
	base := make([]int, k)
	for i := range base {
		base[i] = i
	}
	var out [][]int
	var rec func(prefix []int, remaining []int)
	rec = func(prefix []int, remaining []int) {
		if len(remaining) == 0 {
			out = append(out, append([]int{}, prefix...))
			return
		}
		for i, v := range remaining {
			next := append(append([]int{}, remaining[:i]...), remaining[i+1:]...)
			newPrefix := append(append([]int{}, prefix...), v)
			rec(newPrefix, next)
		}
	}
	rec(nil, base)
	return out
}

// segmentBounds splits [0, n) into k contiguous segments of near-equal
// size, the cut points a k-opt move reconnects.
func segmentBounds(n, k int) [][2]int {
	bounds := make([][2]int, k)
	base, extra := n/k, n%k
	pos := 0
	for i := 0; i < k; i++ {
		size := base
		if i < extra {
			size++
		}
		bounds[i] = [2]int{pos, pos + size}
		pos += size
	}
	return bounds
}

func (s KOpt[Sol, V]) buildMove(sol *Sol, p koptPattern) move.KOpt[Sol, V] {
	n := s.Descriptor.Len(sol, s.Entity)
	bounds := segmentBounds(n, s.Arity)
	permutation := make([]int, 0, n)
	for _, segIdx := range p.perm {
		b := bounds[segIdx]
		if p.reversed[segIdx] {
			for i := b[1] - 1; i >= b[0]; i-- {
				permutation = append(permutation, i)
			}
		} else {
			for i := b[0]; i < b[1]; i++ {
				permutation = append(permutation, i)
			}
		}
	}
	return move.KOpt[Sol, V]{Descriptor: s.Descriptor, Entity: s.Entity, Permutation: permutation}
}

func (s KOpt[Sol, V]) Iterator(sol *Sol) Iterator[move.Move[Sol]] {
	patterns := reconnectionPatterns(s.Arity)
	i := 0
	return &funcIterator[move.Move[Sol]]{pull: func() (move.Move[Sol], bool) {
		if i >= len(patterns) {
			var zero move.Move[Sol]
			return zero, false
		}
		m := s.buildMove(sol, patterns[i])
		i++
		return m, true
	}}
}

func (s KOpt[Sol, V]) Size(sol *Sol) int { return len(reconnectionPatterns(s.Arity)) }

func (s KOpt[Sol, V]) IsNeverEnding() bool { return false }
