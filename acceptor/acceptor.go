// Package acceptor implements the local-search move-acceptance criteria of
// spec.md §4.5: hill climbing, simulated annealing, late acceptance and its
// diversified variant, step-counting hill climbing, and the tabu family.
package acceptor

import (
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/score"
)

// StepInfo carries the context an acceptor's step_ended hook needs to
// update its internal state (tabu lists, late-acceptance buffers, the
// annealing temperature).
type StepInfo[Sol any, S score.Score[S]] struct {
	BestScore     S
	LastStepScore S
	WinningScore  S
	WinningMove   move.Move[Sol]
}

// Acceptor decides whether a candidate move's resulting score should be
// accepted, given the score the working solution held before the step.
// Every variant shares this signature plus four lifecycle hooks a phase
// calls around its search loop.
type Acceptor[Sol any, S score.Score[S]] interface {
	IsAccepted(lastStepScore, moveScore S) bool
	PhaseStarted(initialScore S)
	StepStarted()
	StepEnded(info StepInfo[Sol, S])
	PhaseEnded()
}

// MoveAware is implemented by acceptors whose decision depends on the move
// itself rather than only the scores either side of it — the tabu family
// keys its list by the move's subject, so a plain IsAccepted(score, score)
// can't express it. A Forager checks for this interface and prefers Check
// over IsAccepted when present, so configuring a Tabu acceptor on any
// LocalSearch-style phase drives real tabu rejection without the phase or
// forager needing to special-case it.
type MoveAware[Sol any, S score.Score[S]] interface {
	Check(m move.Move[Sol], lastStepScore, moveScore S) bool
}
