package constraint

import "github.com/brightforge/concord/score"

// UniConstraint scores each entity in a single collection independently:
// the spec's simplest "for_each" variant. Because a match never spans more
// than one entity, OnInsert/OnRetract are O(1) — they evaluate the single
// changed entity, no maintained index required.
type UniConstraint[Sol any, S score.Score[S]] struct {
	ref    Ref
	hard   bool
	count  func(sol *Sol) int
	filter func(sol *Sol, entityIndex int) bool
	weight func(sol *Sol, entityIndex int) S
}

// NewUniConstraint builds a uni constraint: count returns how many entities
// the collection currently holds, filter reports whether entityIndex
// matches, and weight computes the score contribution of a match.
func NewUniConstraint[Sol any, S score.Score[S]](
	ref Ref,
	hard bool,
	count func(sol *Sol) int,
	filter func(sol *Sol, entityIndex int) bool,
	weight func(sol *Sol, entityIndex int) S,
) *UniConstraint[Sol, S] {
	return &UniConstraint[Sol, S]{ref: ref, hard: hard, count: count, filter: filter, weight: weight}
}

var _ Constraint[struct{}, score.Simple] = (*UniConstraint[struct{}, score.Simple])(nil)

func (c *UniConstraint[Sol, S]) Ref() Ref    { return c.ref }
func (c *UniConstraint[Sol, S]) IsHard() bool { return c.hard }

func (c *UniConstraint[Sol, S]) Evaluate(sol *Sol) S {
	var total S
	n := c.count(sol)
	for i := 0; i < n; i++ {
		if c.filter(sol, i) {
			total = total.Add(c.weight(sol, i))
		}
	}
	return total
}

func (c *UniConstraint[Sol, S]) MatchCount(sol *Sol) int {
	n, matches := c.count(sol), 0
	for i := 0; i < n; i++ {
		if c.filter(sol, i) {
			matches++
		}
	}
	return matches
}

func (c *UniConstraint[Sol, S]) Initialize(sol *Sol) S { return c.Evaluate(sol) }

func (c *UniConstraint[Sol, S]) OnInsert(sol *Sol, entityIndex, _ int) S {
	var zero S
	if c.filter(sol, entityIndex) {
		return c.weight(sol, entityIndex)
	}
	return zero
}

func (c *UniConstraint[Sol, S]) OnRetract(sol *Sol, entityIndex, _ int) S {
	var zero S
	if c.filter(sol, entityIndex) {
		return c.weight(sol, entityIndex).Negate()
	}
	return zero
}

func (c *UniConstraint[Sol, S]) Reset() {}

func (c *UniConstraint[Sol, S]) Matches(sol *Sol) []Match[S] {
	var out []Match[S]
	n := c.count(sol)
	for i := 0; i < n; i++ {
		if c.filter(sol, i) {
			out = append(out, Match[S]{EntityIndices: []int{i}, Score: c.weight(sol, i)})
		}
	}
	return out
}
