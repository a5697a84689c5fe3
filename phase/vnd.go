package phase

import (
	"github.com/brightforge/concord/acceptor"
	"github.com/brightforge/concord/forager"
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/move/selector"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
	"github.com/brightforge/concord/termination"
)

// VariableNeighborhoodDescent holds an ordered tuple of selectors
// ("neighborhoods"). It exhaustively searches neighborhood i for an
// improving move via Forager; finding one commits it and restarts at
// neighborhood 0, finding none advances to i+1. It terminates once i
// reaches the neighborhood count — spec.md §4.5.
type VariableNeighborhoodDescent[Sol any, S score.Score[S]] struct {
	Selectors []selector.Selector[Sol, move.Move[Sol]]
	// Forager searches one neighborhood for its best candidate; BestFit
	// with no Limit (exhaustive) is the conventional choice.
	Forager forager.Forager[Sol, S]
}

func (p VariableNeighborhoodDescent[Sol, S]) Run(sc *scope.Scope[Sol, S], term termination.Termination[Sol, S]) {
	var improving acceptor.HillClimbing[Sol, S]
	i := 0
	for i < len(p.Selectors) {
		sc.DrainPendingChanges()
		if sc.Cancelled() || term.IsTerminated(sc) {
			return
		}
		last := sc.Director.CalculateScore()
		candidates := p.Selectors[i].Iterator(sc.Director.WorkingSolution())
		winner, ok := p.Forager.Forage(sc.Director, candidates, last, improving, &sc.Stats.Statistics)
		if !ok {
			i++
			continue
		}
		commitWinner(sc, winner)
		sc.Stats.ScoreCalculationCount++
		sc.RecordStep(winner.Score, sc.Director.WorkingSolution())
		i = 0
	}
}
