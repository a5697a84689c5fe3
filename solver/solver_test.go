package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightforge/concord/acceptor"
	"github.com/brightforge/concord/constraint"
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/forager"
	"github.com/brightforge/concord/model"
	"github.com/brightforge/concord/move/selector"
	"github.com/brightforge/concord/phase"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
	"github.com/brightforge/concord/termination"
)

type queenSol struct {
	rows []int
}

func rowOf(sol *queenSol, col int) (int, bool) {
	if sol.rows[col] < 0 {
		return 0, false
	}
	return sol.rows[col], true
}

func setRow(sol *queenSol, col, row int, ok bool) {
	if !ok {
		sol.rows[col] = -1
		return
	}
	sol.rows[col] = row
}

func rowConflicts() constraint.Set[queenSol, score.Simple] {
	c := constraint.NewSelfJoinConstraint[queenSol, score.Simple, int](
		constraint.Ref{Package: "test", Name: "same-row"},
		true, 2,
		func(s *queenSol) int { return len(s.rows) },
		rowOf,
		func(s *queenSol, tuple []int) score.Simple { return score.Simple{Soft: -1} },
	)
	return constraint.NewSet1[queenSol, score.Simple](c)
}

func newQueenScope(sol *queenSol) *scope.Scope[queenSol, score.Simple] {
	base := director.New[queenSol, score.Simple](sol, rowConflicts(), nil)
	initial := base.CalculateScore()
	rd := director.NewRecording[queenSol, score.Simple](base)
	return scope.NewScope[queenSol, score.Simple](rd, initial, sol, cloneQueenSol)
}

func cloneQueenSol(s *queenSol) *queenSol {
	rows := append([]int(nil), s.rows...)
	return &queenSol{rows: rows}
}

func TestSolverRunsLocalSearchToLocalOptimum(t *testing.T) {
	sol := &queenSol{rows: []int{0, 0, 0, 0}}
	sc := newQueenScope(sol)
	desc := &model.Descriptor[queenSol, int]{Index: 0, Name: "row", Get: rowOf, Set: setRow}

	ls := phase.LocalSearch[queenSol, score.Simple]{
		Selector: selector.Change[queenSol, int]{
			Descriptor: desc,
			Count:      func(s *queenSol) int { return len(s.rows) },
			Values:     func(*queenSol) []int { return []int{0, 1, 2, 3} },
		},
		Acceptor: acceptor.HillClimbing[queenSol, score.Simple]{},
		Forager:  forager.BestFit[queenSol, score.Simple]{},
	}

	var callbackScore score.Simple
	var called int
	b := NewBuilder[queenSol, score.Simple]().
		AddPhase(ls).
		WithTermination(termination.StepCount[queenSol, score.Simple]{Limit: 1000}).
		WithBestSolutionCallback(func(_ *queenSol, best score.Simple, _ RunID) {
			called++
			callbackScore = best
		})
	s, h := b.Build()

	require.False(t, h.IsSolving())
	best := s.Solve(sc)
	require.False(t, h.IsSolving())

	assert.Equal(t, sol, best)
	assert.Equal(t, 1, called)
	assert.Equal(t, sc.BestScore, callbackScore)
	assert.GreaterOrEqual(t, sc.Director.CalculateScore().Soft, int64(-2))
}

func TestHandleRejectsChangesWhileNotSolving(t *testing.T) {
	h := NewHandle[queenSol](1)
	assert.Equal(t, SolverNotRunning, h.AddProblemChange(nil))
}

func TestHandleQueueFullOnceCapacityExceeded(t *testing.T) {
	h := NewHandle[queenSol](1)
	h.solving.Store(true)

	change := fakeChange{}
	assert.Equal(t, Queued, h.AddProblemChange(change))
	assert.Equal(t, QueueFull, h.AddProblemChange(change))
}

// phaseFunc adapts a plain function to phase.Phase for test wiring.
type phaseFunc func(sc *scope.Scope[queenSol, score.Simple], term termination.Termination[queenSol, score.Simple])

func (f phaseFunc) Run(sc *scope.Scope[queenSol, score.Simple], term termination.Termination[queenSol, score.Simple]) {
	f(sc, term)
}

func TestTerminateEarlyStopsSolveBeforeLaterPhasesRun(t *testing.T) {
	sol := &queenSol{rows: []int{0, 0, 0, 0}}
	sc := newQueenScope(sol)
	desc := &model.Descriptor[queenSol, int]{Index: 0, Name: "row", Get: rowOf, Set: setRow}

	ls := phase.LocalSearch[queenSol, score.Simple]{
		Selector: selector.Change[queenSol, int]{
			Descriptor: desc,
			Count:      func(s *queenSol) int { return len(s.rows) },
			Values:     func(*queenSol) []int { return []int{0, 1, 2, 3} },
		},
		Acceptor: acceptor.HillClimbing[queenSol, score.Simple]{},
		Forager:  forager.BestFit[queenSol, score.Simple]{},
	}

	var h *Handle[queenSol]
	cancelFirst := phaseFunc(func(_ *scope.Scope[queenSol, score.Simple], _ termination.Termination[queenSol, score.Simple]) {
		h.TerminateEarly()
	})

	s, handle := NewBuilder[queenSol, score.Simple]().
		AddPhase(cancelFirst).
		AddPhase(ls).
		WithTimeLimit(time.Hour).
		Build()
	h = handle

	s.Solve(sc)
	// cancelFirst ran (Solve clears the flag before the first phase) and
	// the solver checks the flag again before starting ls, so ls never got
	// a chance to take a step.
	assert.Equal(t, 0, sc.Stats.StepCount)
}

type fakeChange struct{}

func (fakeChange) DescriptorIndex() int    { return 0 }
func (fakeChange) EntityIndex() int        { return 0 }
func (fakeChange) Apply(sol *queenSol)     {}
