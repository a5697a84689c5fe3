package acceptor

import (
	"math"
	"math/rand"

	"github.com/brightforge/concord/score"
)

// SimulatedAnnealing accepts an improving move outright, and a worsening
// move with probability exp((move-last)/T), where T decays geometrically
// (T *= CoolingRate) on every step.
type SimulatedAnnealing[Sol any, S score.Score[S]] struct {
	StartingTemperature float64
	CoolingRate         float64
	// SoftLevel extracts the single scalar level used to drive the
	// Boltzmann comparison (e.g. a HardSoft score's Soft component once
	// the candidate is already known feasible). Acceptors only ever see
	// two scores of the same type, so the caller supplies how to reduce
	// S to one float64.
	SoftLevel func(s S) float64
	Rand      *rand.Rand

	temperature float64
}

func (a *SimulatedAnnealing[Sol, S]) PhaseStarted(S) {
	a.temperature = a.StartingTemperature
	// Seeded only when the caller supplied no Rand, and then kept for
	// every later phase — constructing a fresh rand.New(rand.NewSource(1)) on every
	// IsAccepted call would hand back the same first draw every time,
	// turning worsening-move acceptance into a fixed threshold.
	if a.Rand == nil {
		a.Rand = rand.New(rand.NewSource(1))
	}
}

func (a *SimulatedAnnealing[Sol, S]) StepStarted() {}

func (a *SimulatedAnnealing[Sol, S]) IsAccepted(lastStepScore, moveScore S) bool {
	if moveScore.CompareTo(lastStepScore) > 0 {
		return true
	}
	delta := a.SoftLevel(moveScore) - a.SoftLevel(lastStepScore)
	return a.Rand.Float64() < math.Exp(delta/a.temperature)
}

func (a *SimulatedAnnealing[Sol, S]) StepEnded(StepInfo[Sol, S]) {
	a.temperature *= a.CoolingRate
}

func (a *SimulatedAnnealing[Sol, S]) PhaseEnded() {}
