package constraint

import "github.com/brightforge/concord/score"

// GroupedConstraint scores entities aggregated per group key — the spec's
// grouped-with-complement variant: aggregate is invoked once per key
// returned by allKeys even when no entity currently belongs to that group,
// so a key's default (e.g. zero count) still contributes its own score
// (typically a penalty for an under-used group).
type GroupedConstraint[Sol any, S score.Score[S], K comparable] struct {
	ref       Ref
	hard      bool
	count     func(sol *Sol) int
	key       func(sol *Sol, entityIndex int) (K, bool)
	allKeys   func(sol *Sol) []K
	aggregate func(sol *Sol, groupKey K, members []int) S

	index map[K][]int
}

// NewGroupedConstraint builds a grouped-with-complement constraint.
func NewGroupedConstraint[Sol any, S score.Score[S], K comparable](
	ref Ref,
	hard bool,
	count func(sol *Sol) int,
	key func(sol *Sol, entityIndex int) (K, bool),
	allKeys func(sol *Sol) []K,
	aggregate func(sol *Sol, groupKey K, members []int) S,
) *GroupedConstraint[Sol, S, K] {
	return &GroupedConstraint[Sol, S, K]{
		ref: ref, hard: hard, count: count, key: key, allKeys: allKeys, aggregate: aggregate,
		index: make(map[K][]int),
	}
}

func (c *GroupedConstraint[Sol, S, K]) Ref() Ref    { return c.ref }
func (c *GroupedConstraint[Sol, S, K]) IsHard() bool { return c.hard }

func (c *GroupedConstraint[Sol, S, K]) buildGroups(sol *Sol) map[K][]int {
	groups := make(map[K][]int)
	for i, n := 0, c.count(sol); i < n; i++ {
		if k, ok := c.key(sol, i); ok {
			groups[k] = append(groups[k], i)
		}
	}
	return groups
}

func (c *GroupedConstraint[Sol, S, K]) Evaluate(sol *Sol) S {
	groups := c.buildGroups(sol)
	var total S
	for _, k := range c.allKeys(sol) {
		total = total.Add(c.aggregate(sol, k, groups[k]))
	}
	return total
}

func (c *GroupedConstraint[Sol, S, K]) MatchCount(sol *Sol) int {
	// One match per key, empty groups included: the same set Evaluate
	// sums and Matches lists.
	return len(c.allKeys(sol))
}

func (c *GroupedConstraint[Sol, S, K]) Initialize(sol *Sol) S {
	c.index = c.buildGroups(sol)
	var total S
	for _, k := range c.allKeys(sol) {
		total = total.Add(c.aggregate(sol, k, c.index[k]))
	}
	return total
}

func (c *GroupedConstraint[Sol, S, K]) OnInsert(sol *Sol, entityIndex, _ int) S {
	var zero S
	k, ok := c.key(sol, entityIndex)
	if !ok {
		return zero
	}
	before := c.aggregate(sol, k, c.index[k])
	c.index[k] = append(c.index[k], entityIndex)
	after := c.aggregate(sol, k, c.index[k])
	return after.Add(before.Negate())
}

func (c *GroupedConstraint[Sol, S, K]) OnRetract(sol *Sol, entityIndex, _ int) S {
	var zero S
	k, ok := c.key(sol, entityIndex)
	if !ok {
		return zero
	}
	before := c.aggregate(sol, k, c.index[k])
	c.index[k] = remove(c.index[k], entityIndex)
	after := c.aggregate(sol, k, c.index[k])
	return after.Add(before.Negate())
}

func (c *GroupedConstraint[Sol, S, K]) Reset() {
	c.index = make(map[K][]int)
}

func (c *GroupedConstraint[Sol, S, K]) Matches(sol *Sol) []Match[S] {
	groups := c.buildGroups(sol)
	var out []Match[S]
	for _, k := range c.allKeys(sol) {
		members := groups[k]
		out = append(out, Match[S]{EntityIndices: append([]int{}, members...), Score: c.aggregate(sol, k, members)})
	}
	return out
}
