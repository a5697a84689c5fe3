package acceptor

import (
	"math"

	"github.com/brightforge/concord/score"
)

// LateAcceptance accepts a candidate whose score is at least as good as
// the score recorded Size steps ago, using a circular buffer seeded with
// the phase's initial score.
type LateAcceptance[Sol any, S score.Score[S]] struct {
	Size int

	buffer []S
	cursor int
}

func (a *LateAcceptance[Sol, S]) PhaseStarted(initialScore S) {
	a.buffer = make([]S, a.Size)
	for i := range a.buffer {
		a.buffer[i] = initialScore
	}
	a.cursor = 0
}

func (a *LateAcceptance[Sol, S]) StepStarted() {}

func (a *LateAcceptance[Sol, S]) IsAccepted(lastStepScore, moveScore S) bool {
	return moveScore.CompareTo(a.buffer[a.cursor]) >= 0
}

func (a *LateAcceptance[Sol, S]) StepEnded(info StepInfo[Sol, S]) {
	a.buffer[a.cursor] = info.WinningScore
	a.cursor = (a.cursor + 1) % len(a.buffer)
}

func (a *LateAcceptance[Sol, S]) PhaseEnded() {}

// Diversified accepts whenever the wrapped LateAcceptance would, or when
// the candidate is within Tolerance * |best| of the best score ever seen —
// spec.md §4.5's diversified late acceptance. Level reduces a score to the
// single scalar the tolerance comparison runs against (e.g. a HardSoft
// score's Soft level, once feasibility is otherwise guaranteed).
type Diversified[Sol any, S score.Score[S]] struct {
	Late      *LateAcceptance[Sol, S]
	Tolerance float64
	Level     func(s S) float64

	bestEver S
}

func (a *Diversified[Sol, S]) PhaseStarted(initialScore S) {
	a.Late.PhaseStarted(initialScore)
	a.bestEver = initialScore
}
func (a *Diversified[Sol, S]) StepStarted() { a.Late.StepStarted() }

func (a *Diversified[Sol, S]) IsAccepted(lastStepScore, moveScore S) bool {
	if a.Late.IsAccepted(lastStepScore, moveScore) {
		return true
	}
	margin := a.Tolerance * math.Abs(a.Level(a.bestEver))
	return math.Abs(a.Level(a.bestEver)-a.Level(moveScore)) <= margin
}

func (a *Diversified[Sol, S]) StepEnded(info StepInfo[Sol, S]) {
	a.Late.StepEnded(info)
	if info.BestScore.CompareTo(a.bestEver) > 0 {
		a.bestEver = info.BestScore
	}
}
func (a *Diversified[Sol, S]) PhaseEnded() { a.Late.PhaseEnded() }
