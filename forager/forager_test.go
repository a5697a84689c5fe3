package forager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightforge/concord/acceptor"
	"github.com/brightforge/concord/constraint"
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/model"
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/move/selector"
	"github.com/brightforge/concord/score"
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

func TestBestFitPicksBestAcceptedCandidate(t *testing.T) {
	sol := &queenSol{rows: []int{0, 2, 0, 1}}
	desc := &model.Descriptor[queenSol, int]{Index: 0, Name: "row", Get: rowOf, Set: setRow}
	base := director.New[queenSol, score.Simple](sol, rowConflicts(), nil)
	last := base.CalculateScore()
	require.Equal(t, score.Simple{Soft: -1}, last)

	rd := director.NewRecording[queenSol, score.Simple](base)
	cs := selector.Change[queenSol, int]{
		Descriptor: desc,
		Count:      func(s *queenSol) int { return len(s.rows) },
		Values:     func(*queenSol) []int { return []int{0, 1, 2, 3} },
	}

	var hc acceptor.HillClimbing[queenSol, score.Simple]
	bf := BestFit[queenSol, score.Simple]{}
	var stats Statistics

	winner, ok := bf.Forage(rd, cs.Iterator(sol), last, hc, &stats)
	require.True(t, ok)
	assert.Equal(t, score.Simple{Soft: 0}, winner.Score)
	assert.Greater(t, stats.MovesEvaluated, 0)

	winner.Move.Do(rd)
	rd.Commit()
	assert.Equal(t, score.Simple{Soft: 0}, rd.CalculateScore())
}

func TestFirstFitCommitsImmediately(t *testing.T) {
	sol := &queenSol{rows: []int{0, 2, 0, 1}}
	desc := &model.Descriptor[queenSol, int]{Index: 0, Name: "row", Get: rowOf, Set: setRow}
	base := director.New[queenSol, score.Simple](sol, rowConflicts(), nil)
	last := base.CalculateScore()

	rd := director.NewRecording[queenSol, score.Simple](base)
	cs := selector.Change[queenSol, int]{
		Descriptor: desc,
		Count:      func(s *queenSol) int { return len(s.rows) },
		Values:     func(*queenSol) []int { return []int{3} },
	}

	var alwaysAccept acceptor.HillClimbing[queenSol, score.Simple]
	_ = alwaysAccept
	ff := FirstFit[queenSol, score.Simple]{}
	var stats Statistics

	acceptAll := acceptAllAcceptor[queenSol]{}
	winner, ok := ff.Forage(rd, cs.Iterator(sol), last, acceptAll, &stats)
	require.True(t, ok)
	assert.Equal(t, 0, rd.PendingUndoCount())
	assert.Equal(t, move.Change[queenSol, int]{Descriptor: desc, Entity: 0, Value: 3}, winner.Move)
}

type acceptAllAcceptor[Sol any] struct{}

func (acceptAllAcceptor[Sol]) IsAccepted(last, candidate score.Simple) bool { return true }
func (acceptAllAcceptor[Sol]) PhaseStarted(score.Simple)                    {}
func (acceptAllAcceptor[Sol]) StepStarted()                                 {}
func (acceptAllAcceptor[Sol]) StepEnded(acceptor.StepInfo[Sol, score.Simple]) {}
func (acceptAllAcceptor[Sol]) PhaseEnded()                                 {}
