package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightforge/concord/constraint"
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/score"
)

type counter struct{ n int }

func cloneCounter(c *counter) *counter {
	cp := *c
	return &cp
}

func newCounterScope(t *testing.T, c *counter) *Scope[counter, score.Simple] {
	set := constraint.NewBoxedSet[counter, score.Simple]()
	d := director.New[counter, score.Simple](c, set, nil)
	initial := d.CalculateScore()
	rd := director.NewRecording[counter, score.Simple](d)
	return NewScope[counter, score.Simple](rd, initial, c, cloneCounter)
}

func TestRecordStepSnapshotsBestSolutionIndependentlyOfWorkingSolution(t *testing.T) {
	c := &counter{n: 1}
	sc := newCounterScope(t, c)

	sc.RecordStep(score.Simple{Soft: 10}, c)
	assert.Equal(t, 1, sc.BestSolution.n)

	// A non-monotonic acceptor (simulated annealing, late acceptance,
	// tabu) can move the live working solution away from the best it
	// already recorded. BestSolution must not follow it.
	c.n = 99
	assert.Equal(t, 1, sc.BestSolution.n)
	assert.NotSame(t, c, sc.BestSolution)
}

func TestRecordStepIgnoresNonImprovingCandidates(t *testing.T) {
	c := &counter{n: 1}
	sc := newCounterScope(t, c)
	sc.BestScore = score.Simple{Soft: 10}

	sc.RecordStep(score.Simple{Soft: 5}, c)
	assert.Equal(t, score.Simple{Soft: 10}, sc.BestScore)
	assert.Equal(t, 1, sc.Stats.StepCount)
}
