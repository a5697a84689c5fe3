// Package forager implements the spec.md §4.5 forager step: given a stream
// of candidate moves, speculatively apply each through a recording score
// director, consult an acceptor, and pick a winner.
package forager

import (
	"github.com/brightforge/concord/acceptor"
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/move/selector"
	"github.com/brightforge/concord/score"
)

// Statistics holds the moves-evaluated and moves-accepted counters. Both
// foragers increment them inside their forage loop, so — per this repo's
// recorded open-question decision — phases that delegate to a Forager must
// not also increment them, to avoid double-counting a move. A phase that
// evaluates moves without a Forager (phase.ExhaustiveSearch) increments
// them itself.
type Statistics struct {
	MovesEvaluated int
	MovesAccepted  int
}

// Candidate pairs a move with the score it produced when speculatively
// applied. Applied reports whether that application is still live on the
// director (true — the caller need only Commit) or was rolled back before
// Forage returned (false — the caller must redo the move before
// committing it), so a phase can treat any Forager uniformly.
type Candidate[Sol any, S any] struct {
	Move    move.Move[Sol]
	Score   S
	Applied bool
}

// Forager drives a stream of candidate moves to a winner, or reports none
// were accepted.
type Forager[Sol any, S score.Score[S]] interface {
	Forage(
		d *director.RecordingScoreDirector[Sol, S],
		candidates selector.Iterator[move.Move[Sol]],
		lastStepScore S,
		accept acceptor.Acceptor[Sol, S],
		stats *Statistics,
	) (Candidate[Sol, S], bool)
}

// decide consults accept for a candidate, preferring its Check method when
// it implements acceptor.MoveAware (the tabu family) so the move's own
// subject can veto it, falling back to the plain score-only IsAccepted.
func decide[Sol any, S score.Score[S]](accept acceptor.Acceptor[Sol, S], m move.Move[Sol], lastStepScore, moveScore S) bool {
	if ma, ok := accept.(acceptor.MoveAware[Sol, S]); ok {
		return ma.Check(m, lastStepScore, moveScore)
	}
	return accept.IsAccepted(lastStepScore, moveScore)
}

// FirstFit accepts the first doable candidate without scoring it against
// competitors — spec.md §4.5's construction-heuristic forager. The
// candidate is applied and committed (not rolled back); acceptor is
// consulted for API symmetry with BestFit but first-fit construction
// conventionally uses an always-accept acceptor.
type FirstFit[Sol any, S score.Score[S]] struct{}

func (FirstFit[Sol, S]) Forage(
	d *director.RecordingScoreDirector[Sol, S],
	candidates selector.Iterator[move.Move[Sol]],
	lastStepScore S,
	accept acceptor.Acceptor[Sol, S],
	stats *Statistics,
) (Candidate[Sol, S], bool) {
	for {
		m, ok := candidates.Next()
		if !ok {
			var zero Candidate[Sol, S]
			return zero, false
		}
		if !m.IsDoable(d.WorkingSolution()) {
			continue
		}
		stats.MovesEvaluated++
		m.Do(d)
		sc := d.CalculateScore()
		if !decide(accept, m, lastStepScore, sc) {
			d.UndoChanges()
			continue
		}
		d.Commit()
		stats.MovesAccepted++
		return Candidate[Sol, S]{Move: m, Score: sc, Applied: true}, true
	}
}

// BestFit samples candidates (up to Limit, or exhaustively if Limit <= 0),
// speculatively applying and rolling back each one, keeping the best
// accepted candidate; QuitOnFirstAccepted stops sampling as soon as one
// accepted candidate is found rather than searching for the best. The
// winning candidate is left rolled back — the caller (a phase) re-applies
// and commits it, per spec.md §4.5 step 4.
type BestFit[Sol any, S score.Score[S]] struct {
	Limit               int
	QuitOnFirstAccepted bool
	// TieBreak reports whether candidate a should replace the current
	// best b when their scores compare equal, grounded on the teacher's
	// Priorities pattern (solver/priorities.go) for breaking ties among
	// equally-scored alternatives via a secondary criterion.
	TieBreak func(a, b Candidate[Sol, S]) bool
}

func (f BestFit[Sol, S]) Forage(
	d *director.RecordingScoreDirector[Sol, S],
	candidates selector.Iterator[move.Move[Sol]],
	lastStepScore S,
	accept acceptor.Acceptor[Sol, S],
	stats *Statistics,
) (Candidate[Sol, S], bool) {
	var best Candidate[Sol, S]
	haveBest := false
	sampled := 0

	for {
		if f.Limit > 0 && sampled >= f.Limit {
			break
		}
		m, ok := candidates.Next()
		if !ok {
			break
		}
		if !m.IsDoable(d.WorkingSolution()) {
			continue
		}
		sampled++
		stats.MovesEvaluated++

		m.Do(d)
		sc := d.CalculateScore()
		d.UndoChanges()

		if !decide(accept, m, lastStepScore, sc) {
			continue
		}
		stats.MovesAccepted++
		candidate := Candidate[Sol, S]{Move: m, Score: sc}

		switch {
		case !haveBest:
			best, haveBest = candidate, true
		case sc.CompareTo(best.Score) > 0:
			best = candidate
		case sc.CompareTo(best.Score) == 0 && f.TieBreak != nil && f.TieBreak(candidate, best):
			best = candidate
		}

		if f.QuitOnFirstAccepted {
			break
		}
	}
	return best, haveBest
}
