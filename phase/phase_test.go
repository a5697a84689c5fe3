package phase

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightforge/concord/acceptor"
	"github.com/brightforge/concord/constraint"
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/forager"
	"github.com/brightforge/concord/model"
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/move/selector"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
	"github.com/brightforge/concord/termination"
)

// queenSol is the four-queens fixture: rows[col] is the row of the queen
// in column col, or -1 if unplaced.
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

func rowDescriptor() *model.Descriptor[queenSol, int] {
	return &model.Descriptor[queenSol, int]{Index: 0, Name: "row", Get: rowOf, Set: setRow}
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

// valueIterator yields a move.Change for entity across a fixed candidate
// value set, used to target the construction heuristic's "one entity at a
// time" contract without pulling in a full selector over every entity.
type valueIterator struct {
	desc   *model.Descriptor[queenSol, int]
	entity int
	values []int
	pos    int
}

func (it *valueIterator) Next() (move.Move[queenSol], bool) {
	if it.pos >= len(it.values) {
		return nil, false
	}
	v := it.values[it.pos]
	it.pos++
	return move.Change[queenSol, int]{Descriptor: it.desc, Entity: it.entity, Value: v}, true
}

func TestConstructionHeuristicPlacesEveryEntity(t *testing.T) {
	sol := &queenSol{rows: []int{-1, -1, -1, -1}}
	sc := newQueenScope(sol)
	desc := rowDescriptor()

	ch := ConstructionHeuristic[queenSol, score.Simple]{
		Placer: func(s *queenSol) []int { return []int{0, 1, 2, 3} },
		CandidatesFor: func(s *queenSol, entity int) selector.Iterator[move.Move[queenSol]] {
			return &valueIterator{desc: desc, entity: entity, values: []int{0, 1, 2, 3}}
		},
		Forager: forager.BestFit[queenSol, score.Simple]{},
	}
	ch.Run(sc, termination.StepCount[queenSol, score.Simple]{Limit: 1 << 30})

	for _, r := range sol.rows {
		assert.GreaterOrEqual(t, r, 0)
	}
	assert.Equal(t, 4, sc.Stats.StepCount)
}

func TestLocalSearchStopsAtLocalOptimum(t *testing.T) {
	sol := &queenSol{rows: []int{0, 0, 0, 0}}
	sc := newQueenScope(sol)
	desc := rowDescriptor()

	ls := LocalSearch[queenSol, score.Simple]{
		Selector: selector.Change[queenSol, int]{
			Descriptor: desc,
			Count:      func(s *queenSol) int { return len(s.rows) },
			Values:     func(*queenSol) []int { return []int{0, 1, 2, 3} },
		},
		Acceptor: acceptor.HillClimbing[queenSol, score.Simple]{},
		Forager:  forager.BestFit[queenSol, score.Simple]{},
	}
	ls.Run(sc, termination.StepCount[queenSol, score.Simple]{Limit: 1000})

	final := sc.Director.CalculateScore()
	assert.GreaterOrEqual(t, final.Soft, int64(-2))
	assert.Equal(t, final, sc.BestScore)
}

func TestLocalSearchRejectsNonAspiringTabuMove(t *testing.T) {
	sol := &queenSol{rows: []int{0, 0}}
	sc := newQueenScope(sol)
	desc := rowDescriptor()

	tabu := &acceptor.Tabu[queenSol, score.Simple]{
		Capacity: 1,
		Subject: func(m move.Move[queenSol], _ score.Simple) string {
			return strconv.Itoa(m.EntityIndices()[0])
		},
	}
	ls := LocalSearch[queenSol, score.Simple]{
		Selector: selector.Change[queenSol, int]{
			Descriptor: desc,
			Count:      func(s *queenSol) int { return len(s.rows) },
			Values:     func(*queenSol) []int { return []int{0, 1} },
		},
		Acceptor: tabu,
		Forager:  forager.BestFit[queenSol, score.Simple]{},
	}

	// Both Run calls must share one tabu history, so drive both steps
	// through a single Run (PhaseStarted resets the tabu list).
	//
	// Step 1: both entities have a single doable, score-improving move
	// (0->1); BestFit keeps the first seen on a tie, so entity 0's move
	// wins, committing rows to [1,0] (score 0, optimal) and making
	// entity 0 tabu.
	//
	// Step 2: entity 0's only remaining move (1->0) would flip the
	// board back to a conflict, so it can't aspire (it never beats the
	// best score ever seen), and its subject is still tabu — Check must
	// reject it. Entity 1's move (0->1) is not tabu, so the forager is
	// left with only that worsening candidate and commits it anyway.
	ls.Run(sc, termination.StepCount[queenSol, score.Simple]{Limit: 2})

	assert.Equal(t, []int{1, 1}, sol.rows)
	assert.Equal(t, score.Simple{Soft: -1}, sc.Director.CalculateScore())
}

func TestVariableNeighborhoodDescentRestartsOnImprovement(t *testing.T) {
	sol := &queenSol{rows: []int{0, 0, 2, 3}}
	sc := newQueenScope(sol)
	desc := rowDescriptor()

	vnd := VariableNeighborhoodDescent[queenSol, score.Simple]{
		Selectors: []selector.Selector[queenSol, move.Move[queenSol]]{
			selector.Swap[queenSol, int]{Descriptor: desc, Count: func(s *queenSol) int { return len(s.rows) }},
			selector.Change[queenSol, int]{
				Descriptor: desc,
				Count:      func(s *queenSol) int { return len(s.rows) },
				Values:     func(*queenSol) []int { return []int{0, 1, 2, 3} },
			},
		},
		Forager: forager.BestFit[queenSol, score.Simple]{},
	}
	vnd.Run(sc, termination.StepCount[queenSol, score.Simple]{Limit: 1000})

	require.True(t, sc.Director.CalculateScore().CompareTo(score.Simple{Soft: -1}) >= 0)
}
