package acceptor

import (
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/score"
)

// Tabu rejects a candidate whose Subject is currently in a fixed-capacity
// FIFO tabu list, unless the candidate is a new best (aspiration). Subject
// extracts the tabu key: score-tabu keys by the candidate score's string
// form, entity-tabu and value-tabu key by whatever the caller derives from
// the winning move's entity indices or assigned value, and move-tabu keys
// by the move's own fingerprint — spec.md §4.5 names all four as one
// family distinguished only by this key function.
type Tabu[Sol any, S score.Score[S]] struct {
	Capacity int
	Subject  func(m move.Move[Sol], moveScore S) string
	// Aspiration reports whether a tabu candidate should be accepted
	// anyway. Per this repo's recorded open-question decision, the
	// default (nil) aspiration policy is "candidate score is a strict
	// improvement over the best score ever seen" — a plateau (equal)
	// score does not trigger aspiration.
	Aspiration func(candidateScore, bestEver S) bool

	queue    []string
	inQueue  map[string]int
	bestEver S
	pending  string
}

func (a *Tabu[Sol, S]) PhaseStarted(initialScore S) {
	a.queue = nil
	a.inQueue = make(map[string]int)
	a.bestEver = initialScore
}

func (a *Tabu[Sol, S]) StepStarted() {}

func (a *Tabu[Sol, S]) aspires(candidateScore S) bool {
	if a.Aspiration != nil {
		return a.Aspiration(candidateScore, a.bestEver)
	}
	return candidateScore.CompareTo(a.bestEver) > 0
}

// Check reports whether moveScore/m would be accepted, recording the
// subject so a subsequent StepEnded call (for the move the phase actually
// commits) knows what to enqueue. Acceptor.IsAccepted's narrower signature
// (last/move score only) can't see the move itself, so tabu acceptors are
// used via Check rather than through the plain Acceptor interface when a
// phase needs move-aware tabu bookkeeping.
func (a *Tabu[Sol, S]) Check(m move.Move[Sol], lastStepScore, moveScore S) bool {
	subject := a.Subject(m, moveScore)
	if _, tabu := a.inQueue[subject]; tabu && !a.aspires(moveScore) {
		return false
	}
	a.pending = subject
	return true
}

func (a *Tabu[Sol, S]) IsAccepted(lastStepScore, moveScore S) bool {
	return moveScore.CompareTo(lastStepScore) >= 0
}

func (a *Tabu[Sol, S]) StepEnded(info StepInfo[Sol, S]) {
	if info.BestScore.CompareTo(a.bestEver) > 0 {
		a.bestEver = info.BestScore
	}
	subject := a.pending
	if info.WinningMove != nil {
		subject = a.Subject(info.WinningMove, info.WinningScore)
	}
	if subject == "" {
		return
	}
	a.queue = append(a.queue, subject)
	a.inQueue[subject]++
	if len(a.queue) > a.Capacity {
		oldest := a.queue[0]
		a.queue = a.queue[1:]
		a.inQueue[oldest]--
		if a.inQueue[oldest] <= 0 {
			delete(a.inQueue, oldest)
		}
	}
}

func (a *Tabu[Sol, S]) PhaseEnded() {}
