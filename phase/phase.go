// Package phase implements the spec.md §4.5 phase catalogue: construction
// heuristic, local search, variable neighborhood descent, k-opt phase,
// partitioned search, and exhaustive search. Every phase receives the
// shared scope.Scope and a termination checked inside its own step loop,
// not only between phases.
package phase

import (
	"github.com/brightforge/concord/acceptor"
	"github.com/brightforge/concord/forager"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
	"github.com/brightforge/concord/termination"
)

// Phase runs one stage of a solve against sc, stopping when term or the
// scope's cancellation flag fires.
type Phase[Sol any, S score.Score[S]] interface {
	Run(sc *scope.Scope[Sol, S], term termination.Termination[Sol, S])
}

// alwaysAccept accepts every candidate unconditionally — used where a
// forager's accept argument is structural (BestFit's "pick the highest
// score among evaluated candidates") rather than a real acceptance
// criterion, e.g. construction heuristics per spec.md §4.5.
type alwaysAccept[Sol any, S score.Score[S]] struct{}

func (alwaysAccept[Sol, S]) IsAccepted(lastStepScore, moveScore S) bool { return true }
func (alwaysAccept[Sol, S]) PhaseStarted(initialScore S)                {}
func (alwaysAccept[Sol, S]) StepStarted()                               {}
func (alwaysAccept[Sol, S]) StepEnded(info acceptor.StepInfo[Sol, S])   {}
func (alwaysAccept[Sol, S]) PhaseEnded()                                {}

// commitWinner applies winner's move if the forager left it rolled back
// (forager.BestFit), or leaves it as-is if the forager already applied and
// committed it (forager.FirstFit), then discards any remaining undo
// bookkeeping. This lets every phase treat any forager.Forager uniformly.
func commitWinner[Sol any, S score.Score[S]](sc *scope.Scope[Sol, S], winner forager.Candidate[Sol, S]) {
	if !winner.Applied {
		winner.Move.Do(sc.Director)
	}
	sc.Director.Commit()
}
