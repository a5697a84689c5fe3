package constraint

import "github.com/brightforge/concord/score"

// CrossJoinConstraint scores pairs of entities drawn from two distinct
// entity collections, hash-joined on a key — spec.md §4.2's cross-join
// variant. descriptorA/descriptorB identify which planning variable's
// change notifications belong to which side, since entityIndex alone is
// collection-relative and ambiguous across two different entity classes.
type CrossJoinConstraint[Sol any, S score.Score[S], K comparable] struct {
	ref    Ref
	hard   bool
	countA func(sol *Sol) int
	countB func(sol *Sol) int
	keyA   func(sol *Sol, entityIndex int) (K, bool)
	keyB   func(sol *Sol, entityIndex int) (K, bool)
	weight func(sol *Sol, a, b int) S

	descriptorA int
	descriptorB int

	indexA map[K][]int
	indexB map[K][]int
}

// NewCrossJoinConstraint builds a cross-join constraint. descriptorA and
// descriptorB are the descriptor indices of the planning variables whose
// OnInsert/OnRetract notifications belong to collection A and B
// respectively.
func NewCrossJoinConstraint[Sol any, S score.Score[S], K comparable](
	ref Ref,
	hard bool,
	descriptorA, descriptorB int,
	countA, countB func(sol *Sol) int,
	keyA, keyB func(sol *Sol, entityIndex int) (K, bool),
	weight func(sol *Sol, a, b int) S,
) *CrossJoinConstraint[Sol, S, K] {
	return &CrossJoinConstraint[Sol, S, K]{
		ref: ref, hard: hard,
		countA: countA, countB: countB, keyA: keyA, keyB: keyB, weight: weight,
		descriptorA: descriptorA, descriptorB: descriptorB,
		indexA: make(map[K][]int), indexB: make(map[K][]int),
	}
}

func (c *CrossJoinConstraint[Sol, S, K]) Ref() Ref    { return c.ref }
func (c *CrossJoinConstraint[Sol, S, K]) IsHard() bool { return c.hard }

func (c *CrossJoinConstraint[Sol, S, K]) buildIndexes(sol *Sol) (map[K][]int, map[K][]int) {
	a := make(map[K][]int)
	for i, n := 0, c.countA(sol); i < n; i++ {
		if k, ok := c.keyA(sol, i); ok {
			a[k] = append(a[k], i)
		}
	}
	b := make(map[K][]int)
	for i, n := 0, c.countB(sol); i < n; i++ {
		if k, ok := c.keyB(sol, i); ok {
			b[k] = append(b[k], i)
		}
	}
	return a, b
}

func (c *CrossJoinConstraint[Sol, S, K]) Evaluate(sol *Sol) S {
	a, b := c.buildIndexes(sol)
	var total S
	for k, as := range a {
		for _, x := range as {
			for _, y := range b[k] {
				total = total.Add(c.weight(sol, x, y))
			}
		}
	}
	return total
}

func (c *CrossJoinConstraint[Sol, S, K]) MatchCount(sol *Sol) int {
	a, b := c.buildIndexes(sol)
	n := 0
	for k, as := range a {
		n += len(as) * len(b[k])
	}
	return n
}

func (c *CrossJoinConstraint[Sol, S, K]) Initialize(sol *Sol) S {
	c.indexA, c.indexB = c.buildIndexes(sol)
	var total S
	for k, as := range c.indexA {
		for _, x := range as {
			for _, y := range c.indexB[k] {
				total = total.Add(c.weight(sol, x, y))
			}
		}
	}
	return total
}

func remove(slice []int, v int) []int {
	out := make([]int, 0, len(slice))
	for _, e := range slice {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}

func (c *CrossJoinConstraint[Sol, S, K]) OnInsert(sol *Sol, entityIndex, descriptorIndex int) S {
	var zero S
	switch descriptorIndex {
	case c.descriptorA:
		k, ok := c.keyA(sol, entityIndex)
		if !ok {
			return zero
		}
		var total S
		for _, y := range c.indexB[k] {
			total = total.Add(c.weight(sol, entityIndex, y))
		}
		c.indexA[k] = append(c.indexA[k], entityIndex)
		return total
	case c.descriptorB:
		k, ok := c.keyB(sol, entityIndex)
		if !ok {
			return zero
		}
		var total S
		for _, x := range c.indexA[k] {
			total = total.Add(c.weight(sol, x, entityIndex))
		}
		c.indexB[k] = append(c.indexB[k], entityIndex)
		return total
	default:
		return zero
	}
}

func (c *CrossJoinConstraint[Sol, S, K]) OnRetract(sol *Sol, entityIndex, descriptorIndex int) S {
	var zero S
	switch descriptorIndex {
	case c.descriptorA:
		k, ok := c.keyA(sol, entityIndex)
		if !ok {
			return zero
		}
		var total S
		for _, y := range c.indexB[k] {
			total = total.Add(c.weight(sol, entityIndex, y).Negate())
		}
		c.indexA[k] = remove(c.indexA[k], entityIndex)
		return total
	case c.descriptorB:
		k, ok := c.keyB(sol, entityIndex)
		if !ok {
			return zero
		}
		var total S
		for _, x := range c.indexA[k] {
			total = total.Add(c.weight(sol, x, entityIndex).Negate())
		}
		c.indexB[k] = remove(c.indexB[k], entityIndex)
		return total
	default:
		return zero
	}
}

func (c *CrossJoinConstraint[Sol, S, K]) Reset() {
	c.indexA = make(map[K][]int)
	c.indexB = make(map[K][]int)
}

func (c *CrossJoinConstraint[Sol, S, K]) Matches(sol *Sol) []Match[S] {
	a, b := c.buildIndexes(sol)
	var out []Match[S]
	for k, as := range a {
		for _, x := range as {
			for _, y := range b[k] {
				out = append(out, Match[S]{EntityIndices: []int{x, y}, Score: c.weight(sol, x, y)})
			}
		}
	}
	return out
}
