package constraint

import "github.com/brightforge/concord/score"

// IfExistsConstraint scores an A-entity according to whether at least one
// B-entity shares its join key — spec.md §4.2's if-exists / if-not-exists
// variant. Negate=true turns it into if-not-exists.
//
// Maintained state is the B-side per-key presence count; an A-entity's
// contribution only needs to be touched when a key's count crosses the
// 0/1 boundary (existence flips), not on every B-side change.
type IfExistsConstraint[Sol any, S score.Score[S], K comparable] struct {
	ref    Ref
	hard   bool
	negate bool

	descriptorA, descriptorB int
	countA                   func(sol *Sol) int
	countBFunc               func(sol *Sol) int
	keyA                     func(sol *Sol, a int) (K, bool)
	keyB                     func(sol *Sol, b int) (K, bool)
	weight                   func(sol *Sol, a int) S

	indexA map[K][]int
	countB map[K]int
}

// NewIfExistsConstraint builds an if-exists (negate=false) or
// if-not-exists (negate=true) constraint.
func NewIfExistsConstraint[Sol any, S score.Score[S], K comparable](
	ref Ref,
	hard bool,
	negate bool,
	descriptorA, descriptorB int,
	countA, countB func(sol *Sol) int,
	keyA, keyB func(sol *Sol, entityIndex int) (K, bool),
	weight func(sol *Sol, a int) S,
) *IfExistsConstraint[Sol, S, K] {
	return &IfExistsConstraint[Sol, S, K]{
		ref: ref, hard: hard, negate: negate,
		descriptorA: descriptorA, descriptorB: descriptorB,
		countA: countA, countBFunc: countB, keyA: keyA, keyB: keyB, weight: weight,
		indexA: make(map[K][]int), countB: make(map[K]int),
	}
}

func (c *IfExistsConstraint[Sol, S, K]) Ref() Ref    { return c.ref }
func (c *IfExistsConstraint[Sol, S, K]) IsHard() bool { return c.hard }

func (c *IfExistsConstraint[Sol, S, K]) applies(exists bool) bool {
	if c.negate {
		return !exists
	}
	return exists
}

func (c *IfExistsConstraint[Sol, S, K]) buildState(sol *Sol, countB func(sol *Sol) int) (map[K][]int, map[K]int) {
	a := make(map[K][]int)
	for i, n := 0, c.countA(sol); i < n; i++ {
		if k, ok := c.keyA(sol, i); ok {
			a[k] = append(a[k], i)
		}
	}
	b := make(map[K]int)
	for i, n := 0, countB(sol); i < n; i++ {
		if k, ok := c.keyB(sol, i); ok {
			b[k]++
		}
	}
	return a, b
}

func (c *IfExistsConstraint[Sol, S, K]) evaluateWith(sol *Sol, countB func(sol *Sol) int) S {
	a, b := c.buildState(sol, countB)
	var total S
	for k, as := range a {
		applies := c.applies(b[k] > 0)
		if !applies {
			continue
		}
		for _, x := range as {
			total = total.Add(c.weight(sol, x))
		}
	}
	return total
}

func (c *IfExistsConstraint[Sol, S, K]) Evaluate(sol *Sol) S {
	return c.evaluateWith(sol, c.countBFunc)
}

func (c *IfExistsConstraint[Sol, S, K]) MatchCount(sol *Sol) int {
	a, b := c.buildState(sol, c.countBFunc)
	n := 0
	for k, as := range a {
		if c.applies(b[k] > 0) {
			n += len(as)
		}
	}
	return n
}

func (c *IfExistsConstraint[Sol, S, K]) Initialize(sol *Sol) S {
	c.indexA, c.countB = c.buildState(sol, c.countBFunc)
	var total S
	for k, as := range c.indexA {
		if !c.applies(c.countB[k] > 0) {
			continue
		}
		for _, x := range as {
			total = total.Add(c.weight(sol, x))
		}
	}
	return total
}

func (c *IfExistsConstraint[Sol, S, K]) OnInsert(sol *Sol, entityIndex, descriptorIndex int) S {
	var zero S
	switch descriptorIndex {
	case c.descriptorA:
		k, ok := c.keyA(sol, entityIndex)
		if !ok {
			return zero
		}
		c.indexA[k] = append(c.indexA[k], entityIndex)
		if c.applies(c.countB[k] > 0) {
			return c.weight(sol, entityIndex)
		}
		return zero
	case c.descriptorB:
		k, ok := c.keyB(sol, entityIndex)
		if !ok {
			return zero
		}
		before := c.countB[k]
		c.countB[k] = before + 1
		if before != 0 {
			return zero
		}
		var total S
		for _, a := range c.indexA[k] {
			if c.negate {
				total = total.Add(c.weight(sol, a).Negate())
			} else {
				total = total.Add(c.weight(sol, a))
			}
		}
		return total
	default:
		return zero
	}
}

func (c *IfExistsConstraint[Sol, S, K]) OnRetract(sol *Sol, entityIndex, descriptorIndex int) S {
	var zero S
	switch descriptorIndex {
	case c.descriptorA:
		k, ok := c.keyA(sol, entityIndex)
		if !ok {
			return zero
		}
		c.indexA[k] = remove(c.indexA[k], entityIndex)
		if c.applies(c.countB[k] > 0) {
			return c.weight(sol, entityIndex).Negate()
		}
		return zero
	case c.descriptorB:
		k, ok := c.keyB(sol, entityIndex)
		if !ok {
			return zero
		}
		before := c.countB[k]
		c.countB[k] = before - 1
		if before != 1 {
			return zero
		}
		var total S
		for _, a := range c.indexA[k] {
			if c.negate {
				total = total.Add(c.weight(sol, a))
			} else {
				total = total.Add(c.weight(sol, a).Negate())
			}
		}
		return total
	default:
		return zero
	}
}

func (c *IfExistsConstraint[Sol, S, K]) Reset() {
	c.indexA = make(map[K][]int)
	c.countB = make(map[K]int)
}

func (c *IfExistsConstraint[Sol, S, K]) Matches(sol *Sol) []Match[S] {
	a, b := c.buildState(sol, c.countBFunc)
	var out []Match[S]
	for k, as := range a {
		if !c.applies(b[k] > 0) {
			continue
		}
		for _, x := range as {
			out = append(out, Match[S]{EntityIndices: []int{x}, Score: c.weight(sol, x)})
		}
	}
	return out
}
