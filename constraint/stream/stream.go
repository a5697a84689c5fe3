// Package stream implements the fluent constraint-builder pipeline named in
// spec.md §6 item 3 (for_each, filter, join, if_exists, group_by,
// flatten_last, penalize/reward). Each pipeline lowers, on its terminal
// call, to one of the monomorphic constraint variants in package
// constraint.
package stream

import (
	"github.com/brightforge/concord/constraint"
	"github.com/brightforge/concord/score"
)

// Uni is a single-collection constraint stream: for_each(...).filter(...).
type Uni[Sol any] struct {
	count  func(sol *Sol) int
	filter func(sol *Sol, entityIndex int) bool
}

// ForEach starts a stream over every entity the caller's count function
// reports.
func ForEach[Sol any](count func(sol *Sol) int) *Uni[Sol] {
	return &Uni[Sol]{count: count, filter: func(*Sol, int) bool { return true }}
}

// Filter narrows the stream to entities matching pred, composing with any
// filter already applied.
func (u *Uni[Sol]) Filter(pred func(sol *Sol, entityIndex int) bool) *Uni[Sol] {
	prev := u.filter
	return &Uni[Sol]{count: u.count, filter: func(sol *Sol, i int) bool { return prev(sol, i) && pred(sol, i) }}
}

// Penalize is a terminal call: weight computes a non-negative cost per
// match, stored as a negative contribution.
func (u *Uni[Sol]) Penalize(ref constraint.Ref, hard bool, weight func(sol *Sol, entityIndex int) score.Simple) constraint.Constraint[Sol, score.Simple] {
	return constraint.NewUniConstraint[Sol, score.Simple](ref, hard, u.count, u.filter,
		func(sol *Sol, i int) score.Simple { return weight(sol, i).Negate() })
}

// Reward is a terminal call: weight computes a non-negative bonus per
// match, stored as a positive contribution.
func (u *Uni[Sol]) Reward(ref constraint.Ref, hard bool, weight func(sol *Sol, entityIndex int) score.Simple) constraint.Constraint[Sol, score.Simple] {
	return constraint.NewUniConstraint[Sol, score.Simple](ref, hard, u.count, u.filter, weight)
}

// Join pairs this stream's entities with themselves (arity 2) on a join
// key, the terminal call building a SelfJoinConstraint. Use arity > 2 via
// JoinArity for tri/quad/penta-join.
func Join[Sol any, K comparable](u *Uni[Sol], key func(sol *Sol, entityIndex int) (K, bool)) *SelfJoin[Sol, K] {
	return &SelfJoin[Sol, K]{count: u.count, filterKey: composeKey(u.filter, key), arity: 2}
}

// JoinArity is Join generalized to an arbitrary tuple arity (2..5),
// lowering to the same SelfJoinConstraint generalization as Join.
func JoinArity[Sol any, K comparable](u *Uni[Sol], arity int, key func(sol *Sol, entityIndex int) (K, bool)) *SelfJoin[Sol, K] {
	return &SelfJoin[Sol, K]{count: u.count, filterKey: composeKey(u.filter, key), arity: arity}
}

func composeKey[Sol any, K comparable](filter func(sol *Sol, i int) bool, key func(sol *Sol, i int) (K, bool)) func(sol *Sol, i int) (K, bool) {
	return func(sol *Sol, i int) (K, bool) {
		if !filter(sol, i) {
			var zero K
			return zero, false
		}
		return key(sol, i)
	}
}

// SelfJoin is the terminal-pending state of a Join/JoinArity pipeline.
type SelfJoin[Sol any, K comparable] struct {
	count     func(sol *Sol) int
	filterKey func(sol *Sol, entityIndex int) (K, bool)
	arity     int
}

// Penalize is a terminal call producing a SelfJoinConstraint whose weight
// is stored negated.
func (j *SelfJoin[Sol, K]) Penalize(ref constraint.Ref, hard bool, weight func(sol *Sol, tuple []int) score.Simple) constraint.Constraint[Sol, score.Simple] {
	return constraint.NewSelfJoinConstraint[Sol, score.Simple, K](ref, hard, j.arity, j.count, j.filterKey,
		func(sol *Sol, tuple []int) score.Simple { return weight(sol, tuple).Negate() })
}

// Reward is a terminal call producing a SelfJoinConstraint whose weight is
// stored as-is.
func (j *SelfJoin[Sol, K]) Reward(ref constraint.Ref, hard bool, weight func(sol *Sol, tuple []int) score.Simple) constraint.Constraint[Sol, score.Simple] {
	return constraint.NewSelfJoinConstraint[Sol, score.Simple, K](ref, hard, j.arity, j.count, j.filterKey, weight)
}

// GroupBy is a terminal call producing a GroupedConstraint: aggregate is
// invoked once per key in allKeys, even for keys with zero current members
// (the "with complement" default).
func GroupBy[Sol any, K comparable](
	u *Uni[Sol],
	key func(sol *Sol, entityIndex int) (K, bool),
	allKeys func(sol *Sol) []K,
	aggregate func(sol *Sol, groupKey K, members []int) score.Simple,
) func(ref constraint.Ref, hard bool) constraint.Constraint[Sol, score.Simple] {
	filterKey := composeKey(u.filter, key)
	return func(ref constraint.Ref, hard bool) constraint.Constraint[Sol, score.Simple] {
		return constraint.NewGroupedConstraint[Sol, score.Simple, K](ref, hard, u.count, filterKey, allKeys, aggregate)
	}
}

// IfExists is a terminal call producing an IfExistsConstraint (or, with
// negate=true, if-not-exists) joining a onto b by key.
func IfExists[Sol any, K comparable](
	a, b *Uni[Sol],
	descriptorA, descriptorB int,
	negate bool,
	keyA, keyB func(sol *Sol, entityIndex int) (K, bool),
	weight func(sol *Sol, entityIndex int) score.Simple,
) func(ref constraint.Ref, hard bool) constraint.Constraint[Sol, score.Simple] {
	filterKeyA := composeKey(a.filter, keyA)
	filterKeyB := composeKey(b.filter, keyB)
	return func(ref constraint.Ref, hard bool) constraint.Constraint[Sol, score.Simple] {
		return constraint.NewIfExistsConstraint[Sol, score.Simple, K](
			ref, hard, negate, descriptorA, descriptorB, a.count, b.count, filterKeyA, filterKeyB, weight)
	}
}

// CrossJoin is a terminal call producing a CrossJoinConstraint between two
// distinct collections a and b.
func CrossJoin[Sol any, K comparable](
	a, b *Uni[Sol],
	descriptorA, descriptorB int,
	keyA, keyB func(sol *Sol, entityIndex int) (K, bool),
	weight func(sol *Sol, x, y int) score.Simple,
) func(ref constraint.Ref, hard bool) constraint.Constraint[Sol, score.Simple] {
	filterKeyA := composeKey(a.filter, keyA)
	filterKeyB := composeKey(b.filter, keyB)
	return func(ref constraint.Ref, hard bool) constraint.Constraint[Sol, score.Simple] {
		return constraint.NewCrossJoinConstraint[Sol, score.Simple, K](
			ref, hard, descriptorA, descriptorB, a.count, b.count, filterKeyA, filterKeyB, weight)
	}
}

// FlattenLast is a terminal call producing a FlattenedBiConstraint: a is
// joined against every element flattened out of b's list variable.
func FlattenLast[Sol any, K comparable](
	a *Uni[Sol],
	descriptorA, descriptorB int,
	keyA func(sol *Sol, entityIndex int) (K, bool),
	flattenB func(sol *Sol) []constraint.FlattenedElement[K],
	weight func(sol *Sol, a int, elem constraint.FlattenedElement[K]) score.Simple,
) func(ref constraint.Ref, hard bool) constraint.Constraint[Sol, score.Simple] {
	filterKeyA := composeKey(a.filter, keyA)
	return func(ref constraint.Ref, hard bool) constraint.Constraint[Sol, score.Simple] {
		return constraint.NewFlattenedBiConstraint[Sol, score.Simple, K](
			ref, hard, descriptorA, descriptorB, a.count, filterKeyA, flattenB, weight)
	}
}
