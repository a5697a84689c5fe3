package phase

import (
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/move/selector"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
	"github.com/brightforge/concord/termination"
)

// ExhaustiveSearch is the optional DFS-with-bound-pruning phase of
// spec.md §4.5: at each node it tries every candidate Selector move,
// estimates OptimisticBound for the subtree that move roots, prunes when
// that bound is no better than the best score found so far, and otherwise
// recurses before backtracking (undoing the move) to try the next
// sibling. It backtracks past every leaf it records, including the best
// one found so far, which is exactly what sc.Clone/RecordStep already
// guards against for every other phase.
type ExhaustiveSearch[Sol any, S score.Score[S]] struct {
	Selector        selector.Selector[Sol, move.Move[Sol]]
	MaxDepth        int
	OptimisticBound func(sc *scope.Scope[Sol, S]) S
}

func (p ExhaustiveSearch[Sol, S]) Run(sc *scope.Scope[Sol, S], term termination.Termination[Sol, S]) {
	p.dfs(sc, term, 0)
}

func (p ExhaustiveSearch[Sol, S]) dfs(sc *scope.Scope[Sol, S], term termination.Termination[Sol, S], depth int) {
	if sc.Cancelled() || term.IsTerminated(sc) {
		return
	}
	if p.MaxDepth > 0 && depth >= p.MaxDepth {
		return
	}

	candidates := p.Selector.Iterator(sc.Director.WorkingSolution())
	for {
		m, ok := candidates.Next()
		if !ok {
			return
		}
		if !m.IsDoable(sc.Director.WorkingSolution()) {
			continue
		}
		sc.Stats.MovesEvaluated++
		m.Do(sc.Director)
		sc.Stats.ScoreCalculationCount++
		candidateScore := sc.Director.CalculateScore()
		bound := p.OptimisticBound(sc)

		if bound.CompareTo(sc.BestScore) <= 0 {
			sc.Director.UndoChanges()
			continue
		}
		sc.Stats.MovesAccepted++
		sc.RecordStep(candidateScore, sc.Director.WorkingSolution())

		p.dfs(sc, term, depth+1)
		sc.Director.UndoChanges()
	}
}
