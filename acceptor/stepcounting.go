package acceptor

import "github.com/brightforge/concord/score"

// StepCountingHillClimbing accepts a strictly better candidate outright;
// otherwise accepts while an internal counter is below Limit. The counter
// resets to zero whenever the winning move improves on the best-ever
// score, and increments on every step otherwise.
type StepCountingHillClimbing[Sol any, S score.Score[S]] struct {
	Limit int

	counter  int
	bestEver S
}

func (a *StepCountingHillClimbing[Sol, S]) PhaseStarted(initialScore S) {
	a.counter = 0
	a.bestEver = initialScore
}

func (a *StepCountingHillClimbing[Sol, S]) StepStarted() {}

func (a *StepCountingHillClimbing[Sol, S]) IsAccepted(lastStepScore, moveScore S) bool {
	if moveScore.CompareTo(lastStepScore) > 0 {
		return true
	}
	return a.counter < a.Limit
}

func (a *StepCountingHillClimbing[Sol, S]) StepEnded(info StepInfo[Sol, S]) {
	if info.WinningScore.CompareTo(a.bestEver) > 0 {
		a.bestEver = info.WinningScore
		a.counter = 0
		return
	}
	a.counter++
}

func (a *StepCountingHillClimbing[Sol, S]) PhaseEnded() {}
