package phase

import (
	"github.com/brightforge/concord/forager"
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/move/selector"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
	"github.com/brightforge/concord/termination"
)

// EntityPlacer returns the order in which a construction heuristic visits
// still-uninitialized entities for one planning variable.
type EntityPlacer[Sol any] func(sol *Sol) []int

// ConstructionHeuristic assigns every entity Placer names, one at a time,
// via CandidatesFor and Forager — spec.md §4.5's first-fit/best-fit
// construction. It never backtracks and ignores step-count and move-count
// terminations; only cancellation and the caller-supplied termination
// (normally a time limit or "all entities placed") stop it early.
type ConstructionHeuristic[Sol any, S score.Score[S]] struct {
	Placer EntityPlacer[Sol]
	// CandidatesFor produces the candidate assignment moves for one
	// entity, freshly evaluated against the solution's current state.
	CandidatesFor func(sol *Sol, entity int) selector.Iterator[move.Move[Sol]]
	Forager       forager.Forager[Sol, S]
}

func (p ConstructionHeuristic[Sol, S]) Run(sc *scope.Scope[Sol, S], term termination.Termination[Sol, S]) {
	var accept alwaysAccept[Sol, S]
	term = termination.WithoutStepLimits[Sol, S](term)
	for _, entity := range p.Placer(sc.Director.WorkingSolution()) {
		sc.DrainPendingChanges()
		if sc.Cancelled() || term.IsTerminated(sc) {
			return
		}
		last := sc.Director.CalculateScore()
		candidates := p.CandidatesFor(sc.Director.WorkingSolution(), entity)
		winner, ok := p.Forager.Forage(sc.Director, candidates, last, accept, &sc.Stats.Statistics)
		if !ok {
			continue
		}
		commitWinner(sc, winner)
		sc.Stats.ScoreCalculationCount++
		sc.RecordStep(sc.Director.CalculateScore(), sc.Director.WorkingSolution())
	}
}
