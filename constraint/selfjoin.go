package constraint

import "github.com/brightforge/concord/score"

// SelfJoinConstraint generalizes the spec's bi self-join, tri/quad/penta
// self-join variants under one arity parameter: it scores every distinct
// arity-sized subset of entities within a single collection that share a
// common join key. Bi-join is SelfJoinConstraint with arity 2, tri-join
// arity 3, and so on through penta-join at arity 5.
//
// Internal state is a key -> currently-present-entity-indices index,
// mutated in lock-step with OnInsert/OnRetract so a retract-then-insert
// mutation observes a consistent intermediate state, per spec.md §4.2.
type SelfJoinConstraint[Sol any, S score.Score[S], K comparable] struct {
	ref    Ref
	hard   bool
	arity  int
	count  func(sol *Sol) int
	key    func(sol *Sol, entityIndex int) (K, bool)
	weight func(sol *Sol, tuple []int) S

	index map[K][]int
}

// NewSelfJoinConstraint builds a self-join constraint of the given arity
// (2..5). key reports the join key of entityIndex, or ok=false if the
// entity is not eligible to participate (e.g. unassigned). weight computes
// the score contribution of one arity-sized matching tuple.
func NewSelfJoinConstraint[Sol any, S score.Score[S], K comparable](
	ref Ref,
	hard bool,
	arity int,
	count func(sol *Sol) int,
	key func(sol *Sol, entityIndex int) (K, bool),
	weight func(sol *Sol, tuple []int) S,
) *SelfJoinConstraint[Sol, S, K] {
	return &SelfJoinConstraint[Sol, S, K]{
		ref: ref, hard: hard, arity: arity, count: count, key: key, weight: weight,
		index: make(map[K][]int),
	}
}

func (c *SelfJoinConstraint[Sol, S, K]) Ref() Ref    { return c.ref }
func (c *SelfJoinConstraint[Sol, S, K]) IsHard() bool { return c.hard }

func (c *SelfJoinConstraint[Sol, S, K]) groups(sol *Sol) map[K][]int {
	groups := make(map[K][]int)
	n := c.count(sol)
	for i := 0; i < n; i++ {
		k, ok := c.key(sol, i)
		if !ok {
			continue
		}
		groups[k] = append(groups[k], i)
	}
	return groups
}

func (c *SelfJoinConstraint[Sol, S, K]) Evaluate(sol *Sol) S {
	var total S
	for _, members := range c.groups(sol) {
		for _, tuple := range combinations(members, c.arity) {
			total = total.Add(c.weight(sol, tuple))
		}
	}
	return total
}

func (c *SelfJoinConstraint[Sol, S, K]) MatchCount(sol *Sol) int {
	n := 0
	for _, members := range c.groups(sol) {
		n += len(combinations(members, c.arity))
	}
	return n
}

func (c *SelfJoinConstraint[Sol, S, K]) Initialize(sol *Sol) S {
	c.index = c.groups(sol)
	var total S
	for _, members := range c.index {
		for _, tuple := range combinations(members, c.arity) {
			total = total.Add(c.weight(sol, tuple))
		}
	}
	return total
}

func (c *SelfJoinConstraint[Sol, S, K]) OnInsert(sol *Sol, entityIndex, _ int) S {
	var zero S
	k, ok := c.key(sol, entityIndex)
	if !ok {
		return zero
	}
	existing := c.index[k]
	var total S
	for _, combo := range combinations(existing, c.arity-1) {
		tuple := append(append([]int{}, combo...), entityIndex)
		total = total.Add(c.weight(sol, tuple))
	}
	c.index[k] = append(existing, entityIndex)
	return total
}

func (c *SelfJoinConstraint[Sol, S, K]) OnRetract(sol *Sol, entityIndex, _ int) S {
	var zero S
	k, ok := c.key(sol, entityIndex)
	if !ok {
		return zero
	}
	group := c.index[k]
	rest := make([]int, 0, len(group))
	for _, e := range group {
		if e != entityIndex {
			rest = append(rest, e)
		}
	}
	var total S
	for _, combo := range combinations(rest, c.arity-1) {
		tuple := append(append([]int{}, combo...), entityIndex)
		total = total.Add(c.weight(sol, tuple).Negate())
	}
	c.index[k] = rest
	return total
}

func (c *SelfJoinConstraint[Sol, S, K]) Reset() {
	c.index = make(map[K][]int)
}

func (c *SelfJoinConstraint[Sol, S, K]) Matches(sol *Sol) []Match[S] {
	var out []Match[S]
	for _, members := range c.groups(sol) {
		for _, tuple := range combinations(members, c.arity) {
			out = append(out, Match[S]{EntityIndices: tuple, Score: c.weight(sol, tuple)})
		}
	}
	return out
}
