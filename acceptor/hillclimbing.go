package acceptor

import "github.com/brightforge/concord/score"

// HillClimbing accepts iff the candidate's score is strictly better than
// the score the working solution held at the start of the step.
type HillClimbing[Sol any, S score.Score[S]] struct{}

func (HillClimbing[Sol, S]) IsAccepted(lastStepScore, moveScore S) bool {
	return moveScore.CompareTo(lastStepScore) > 0
}

func (HillClimbing[Sol, S]) PhaseStarted(S)             {}
func (HillClimbing[Sol, S]) StepStarted()                {}
func (HillClimbing[Sol, S]) StepEnded(StepInfo[Sol, S]) {}
func (HillClimbing[Sol, S]) PhaseEnded()                 {}
