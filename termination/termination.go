// Package termination implements the stop predicates of spec.md §4.6: each
// is a check over the shared scope.Scope, combinable with And/Or, and
// usable both between phases and inside a phase's own step loop.
package termination

import (
	"time"

	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
)

// Termination reports whether the solver (or the current phase) should
// stop, given the current scope.
type Termination[Sol any, S score.Score[S]] interface {
	IsTerminated(sc *scope.Scope[Sol, S]) bool
}

// Func adapts a plain function to Termination.
type Func[Sol any, S score.Score[S]] func(sc *scope.Scope[Sol, S]) bool

func (f Func[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool { return f(sc) }

// TimeLimit terminates once Duration has elapsed since the scope's
// StartTime.
type TimeLimit[Sol any, S score.Score[S]] struct {
	Duration time.Duration
}

func (t TimeLimit[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	return time.Since(sc.StartTime) >= t.Duration
}

// StepCount terminates once Stats.StepCount reaches Limit.
type StepCount[Sol any, S score.Score[S]] struct {
	Limit int
}

func (t StepCount[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	return sc.Stats.StepCount >= t.Limit
}

// MoveCount terminates once Stats.MovesEvaluated reaches Limit.
type MoveCount[Sol any, S score.Score[S]] struct {
	Limit int
}

func (t MoveCount[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	return sc.Stats.MovesEvaluated >= t.Limit
}

// ScoreCalculationCount terminates once Stats.ScoreCalculationCount
// reaches Limit.
type ScoreCalculationCount[Sol any, S score.Score[S]] struct {
	Limit int
}

func (t ScoreCalculationCount[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	return sc.Stats.ScoreCalculationCount >= t.Limit
}

// BestScoreReached terminates once BestScore is at least Target.
type BestScoreReached[Sol any, S score.Score[S]] struct {
	Target S
}

func (t BestScoreReached[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	return sc.BestScore.CompareTo(t.Target) >= 0
}

// BestScoreFeasible terminates once a caller-supplied predicate over the
// best score is satisfied; the default predicate (IsFeasible, via
// NewBestScoreFeasible) checks every hard level is non-negative.
type BestScoreFeasible[Sol any, S score.Score[S]] struct {
	Predicate func(best S) bool
}

func NewBestScoreFeasible[Sol any, S score.Score[S]]() BestScoreFeasible[Sol, S] {
	return BestScoreFeasible[Sol, S]{Predicate: func(best S) bool { return best.IsFeasible() }}
}

func (t BestScoreFeasible[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	return t.Predicate(sc.BestScore)
}

// UnimprovedStepCount terminates once Limit steps have passed since the
// last best-score improvement.
type UnimprovedStepCount[Sol any, S score.Score[S]] struct {
	Limit int
}

func (t UnimprovedStepCount[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	return sc.Stats.StepCount-sc.LastImprovementStep >= t.Limit
}

// UnimprovedTime terminates once Duration has elapsed since the last
// best-score improvement.
type UnimprovedTime[Sol any, S score.Score[S]] struct {
	Duration time.Duration
}

func (t UnimprovedTime[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	return time.Since(sc.LastImprovementTime) >= t.Duration
}

// And terminates once every member terminates.
type And[Sol any, S score.Score[S]] []Termination[Sol, S]

func (a And[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	for _, t := range a {
		if !t.IsTerminated(sc) {
			return false
		}
	}
	return len(a) > 0
}

// Or terminates once any member terminates.
type Or[Sol any, S score.Score[S]] []Termination[Sol, S]

func (o Or[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	for _, t := range o {
		if t.IsTerminated(sc) {
			return true
		}
	}
	return false
}

func isStepBased[Sol any, S score.Score[S]](t Termination[Sol, S]) bool {
	switch t.(type) {
	case StepCount[Sol, S], MoveCount[Sol, S], UnimprovedStepCount[Sol, S]:
		return true
	default:
		return false
	}
}

// WithoutStepLimits strips any StepCount/MoveCount/UnimprovedStepCount
// member out of t, recursing into And/Or, and leaves everything else
// (TimeLimit, UnimprovedTime, BestScoreReached, external Func checks, ...)
// untouched. Construction heuristics place each entity exactly once and
// have no notion of a mid-placement "step" to bound — spec.md §4.5 has
// them honor only time limits and external termination, ignoring any
// step-count or move-count limit the caller's overall termination
// carries for the rest of the solve.
func WithoutStepLimits[Sol any, S score.Score[S]](t Termination[Sol, S]) Termination[Sol, S] {
	if t == nil || isStepBased[Sol, S](t) {
		return Or[Sol, S]{}
	}
	switch v := t.(type) {
	case And[Sol, S]:
		kept := make(And[Sol, S], 0, len(v))
		for _, m := range v {
			if !isStepBased[Sol, S](m) {
				kept = append(kept, WithoutStepLimits[Sol, S](m))
			}
		}
		return kept
	case Or[Sol, S]:
		kept := make(Or[Sol, S], 0, len(v))
		for _, m := range v {
			if !isStepBased[Sol, S](m) {
				kept = append(kept, WithoutStepLimits[Sol, S](m))
			}
		}
		return kept
	default:
		return t
	}
}
