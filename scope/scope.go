// Package scope defines the SolverScope a phase and a termination predicate
// both operate on: the director, the best solution found so far, and the
// run's statistics — spec.md §4.5/§4.6. It is a leaf package so that
// termination and phase can both depend on it without a cycle through
// package solver.
package scope

import (
	"time"

	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/forager"
	"github.com/brightforge/concord/score"
)

// ImprovementRecord timestamps one improvement of the best score, for the
// benchmark/report surface of spec.md §6 item 4.
type ImprovementRecord[S any] struct {
	Score     S
	Step      int
	Timestamp time.Time
}

// Statistics accumulates per-run counters: moves evaluated/accepted (via
// the embedded forager.Statistics, incremented by the foragers and by
// phase.ExhaustiveSearch), steps,
// score calculations, and the best-score improvement history.
type Statistics[S any] struct {
	forager.Statistics
	StepCount             int
	ScoreCalculationCount int
	Improvements          []ImprovementRecord[S]
}

// RecordImprovement appends a new best-score entry to the improvement
// history.
func (st *Statistics[S]) RecordImprovement(s S, step int, at time.Time) {
	st.Improvements = append(st.Improvements, ImprovementRecord[S]{Score: s, Step: step, Timestamp: at})
}

// Scope is the shared context a phase threads through its step loop and a
// termination predicate reads from.
type Scope[Sol any, S score.Score[S]] struct {
	Director *director.RecordingScoreDirector[Sol, S]
	Stats    *Statistics[S]

	BestScore    S
	BestSolution *Sol

	// Clone returns an independent copy of the working solution. RecordStep
	// calls it whenever a candidate score beats BestScore, so BestSolution
	// is always a snapshot rather than an alias into the director's live
	// working solution — spec.md §5: "best solution is published by copy
	// under a plain replace operation." Without this, a non-monotonic
	// acceptor (simulated annealing, late acceptance, tabu) that later
	// moves the working solution away from its best would drag
	// BestSolution along with it.
	Clone func(sol *Sol) *Sol

	StartTime             time.Time
	LastImprovementTime   time.Time
	LastImprovementStep   int

	// CancelRequested is polled by the step loop between moves and at
	// every termination check, per spec.md §5's cancellation model. It
	// is set from any thread via a shared atomic flag owned by the
	// solver handle; the phase never mutates it.
	CancelRequested func() bool

	// DrainChanges, when set by a solver.Solver driving this scope,
	// applies any problem changes queued on its Handle since the last
	// call. Step-loop phases call DrainPendingChanges once per step so
	// real-time problem changes land at step boundaries rather than
	// only between phases, per spec.md §5 item 2. Left nil outside a
	// Solver-driven run (e.g. in tests), where draining is a no-op.
	DrainChanges func()
}

// DrainPendingChanges applies any problem changes queued since the last
// call, if a solver.Solver set DrainChanges on this scope; otherwise it is
// a no-op.
func (s *Scope[Sol, S]) DrainPendingChanges() {
	if s.DrainChanges != nil {
		s.DrainChanges()
	}
}

// NewScope builds a scope with its clock fields set to now. clone must
// return an independent copy of its argument; NewScope uses it immediately
// to snapshot initialSolution into BestSolution rather than alias it.
func NewScope[Sol any, S score.Score[S]](d *director.RecordingScoreDirector[Sol, S], initialScore S, initialSolution *Sol, clone func(sol *Sol) *Sol) *Scope[Sol, S] {
	now := time.Now()
	return &Scope[Sol, S]{
		Director:            d,
		Stats:               &Statistics[S]{},
		BestScore:           initialScore,
		BestSolution:        clone(initialSolution),
		Clone:               clone,
		StartTime:           now,
		LastImprovementTime: now,
	}
}

// RecordStep increments the step counter and, if candidateScore improves on
// BestScore, snapshots solutionSnapshot via Clone into BestSolution and
// updates the improvement clock and history.
func (s *Scope[Sol, S]) RecordStep(candidateScore S, solutionSnapshot *Sol) {
	s.Stats.StepCount++
	if candidateScore.CompareTo(s.BestScore) > 0 {
		s.BestScore = candidateScore
		s.BestSolution = s.Clone(solutionSnapshot)
		s.LastImprovementStep = s.Stats.StepCount
		s.LastImprovementTime = time.Now()
		s.Stats.RecordImprovement(candidateScore, s.Stats.StepCount, s.LastImprovementTime)
	}
}

// Cancelled reports whether the solver's shared cancellation flag is set.
func (s *Scope[Sol, S]) Cancelled() bool {
	return s.CancelRequested != nil && s.CancelRequested()
}
