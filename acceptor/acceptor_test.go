package acceptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/score"
)

func TestHillClimbingAcceptsOnlyStrictImprovement(t *testing.T) {
	var a HillClimbing[struct{}, score.Simple]
	assert.True(t, a.IsAccepted(score.Simple{Soft: -5}, score.Simple{Soft: -3}))
	assert.False(t, a.IsAccepted(score.Simple{Soft: -5}, score.Simple{Soft: -5}))
	assert.False(t, a.IsAccepted(score.Simple{Soft: -5}, score.Simple{Soft: -7}))
}

func TestLateAcceptanceComparesAgainstBufferedScore(t *testing.T) {
	a := &LateAcceptance[struct{}, score.Simple]{Size: 2}
	a.PhaseStarted(score.Simple{Soft: -10})

	assert.True(t, a.IsAccepted(score.Simple{Soft: -10}, score.Simple{Soft: -10}))

	a.StepEnded(StepInfo[struct{}, score.Simple]{WinningScore: score.Simple{Soft: -8}})
	a.StepEnded(StepInfo[struct{}, score.Simple]{WinningScore: score.Simple{Soft: -6}})

	assert.True(t, a.IsAccepted(score.Simple{}, score.Simple{Soft: -8}))
	assert.False(t, a.IsAccepted(score.Simple{}, score.Simple{Soft: -9}))
}

func TestStepCountingHillClimbingResetsOnNewBest(t *testing.T) {
	a := &StepCountingHillClimbing[struct{}, score.Simple]{Limit: 1}
	a.PhaseStarted(score.Simple{Soft: -10})

	assert.True(t, a.IsAccepted(score.Simple{Soft: -10}, score.Simple{Soft: -10}))
	a.StepEnded(StepInfo[struct{}, score.Simple]{WinningScore: score.Simple{Soft: -10}})

	assert.False(t, a.IsAccepted(score.Simple{Soft: -10}, score.Simple{Soft: -10}))

	a.StepEnded(StepInfo[struct{}, score.Simple]{WinningScore: score.Simple{Soft: -5}})
	assert.True(t, a.IsAccepted(score.Simple{Soft: -5}, score.Simple{Soft: -5}))
}

func TestSimulatedAnnealingSeedsItsRandOnceOnPhaseStarted(t *testing.T) {
	a := &SimulatedAnnealing[struct{}, score.Simple]{
		StartingTemperature: 10,
		CoolingRate:         1,
		SoftLevel:           func(s score.Simple) float64 { return float64(s.Soft) },
	}
	a.PhaseStarted(score.Simple{})
	seeded := a.Rand
	require.NotNil(t, seeded)

	last, worse := score.Simple{Soft: 0}, score.Simple{Soft: -1}
	var draws []bool
	for i := 0; i < 20; i++ {
		draws = append(draws, a.IsAccepted(last, worse))
	}
	assert.Same(t, seeded, a.Rand, "PhaseStarted must not reseed mid-phase")

	allSame := true
	for _, d := range draws[1:] {
		if d != draws[0] {
			allSame = false
			break
		}
	}
	assert.False(t, allSame, "a single shared Rand should not produce the same draw on every call")
}

type fingerprintMove struct {
	id string
}

func (m fingerprintMove) IsDoable(sol *struct{}) bool       { return true }
func (m fingerprintMove) Do(d move.Director[struct{}])      {}
func (m fingerprintMove) EntityIndices() []int              { return nil }
func (m fingerprintMove) DescriptorIndex() int               { return 0 }
func (m fingerprintMove) VariableName() string               { return m.id }

func TestTabuRejectsRecentSubjectUnlessAspiring(t *testing.T) {
	a := &Tabu[struct{}, score.Simple]{
		Capacity: 1,
		Subject:  func(m move.Move[struct{}], s score.Simple) string { return m.VariableName() },
	}
	a.PhaseStarted(score.Simple{Soft: -10})

	m1 := fingerprintMove{id: "a"}
	assert.True(t, a.Check(m1, score.Simple{Soft: -10}, score.Simple{Soft: -10}))
	a.StepEnded(StepInfo[struct{}, score.Simple]{BestScore: score.Simple{Soft: -10}, WinningMove: m1, WinningScore: score.Simple{Soft: -10}})

	assert.False(t, a.Check(m1, score.Simple{Soft: -10}, score.Simple{Soft: -10}))
	assert.True(t, a.Check(m1, score.Simple{Soft: -10}, score.Simple{Soft: -5}))
}
