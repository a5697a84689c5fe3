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

// LocalSearch repeats the select/evaluate/accept/commit loop of spec.md
// §4.5 until termination: Selector proposes candidates, each is
// speculatively applied and scored, Acceptor judges it, and Forager picks
// the step's winner. A step with no accepted candidate ends the phase —
// the conventional hill-climbing definition of a local optimum; acceptors
// that never reject (simulated annealing at high temperature) simply never
// hit this exit.
type LocalSearch[Sol any, S score.Score[S]] struct {
	Selector selector.Selector[Sol, move.Move[Sol]]
	Acceptor acceptor.Acceptor[Sol, S]
	Forager  forager.Forager[Sol, S]
}

func (p LocalSearch[Sol, S]) Run(sc *scope.Scope[Sol, S], term termination.Termination[Sol, S]) {
	p.Acceptor.PhaseStarted(sc.Director.CalculateScore())
	defer p.Acceptor.PhaseEnded()

	for !sc.Cancelled() && !term.IsTerminated(sc) {
		sc.DrainPendingChanges()
		p.Acceptor.StepStarted()
		last := sc.Director.CalculateScore()
		candidates := p.Selector.Iterator(sc.Director.WorkingSolution())
		winner, ok := p.Forager.Forage(sc.Director, candidates, last, p.Acceptor, &sc.Stats.Statistics)
		if !ok {
			return
		}
		commitWinner(sc, winner)
		sc.Stats.ScoreCalculationCount++
		sc.RecordStep(winner.Score, sc.Director.WorkingSolution())
		p.Acceptor.StepEnded(acceptor.StepInfo[Sol, S]{
			BestScore:     sc.BestScore,
			LastStepScore: last,
			WinningScore:  winner.Score,
			WinningMove:   winner.Move,
		})
	}
}
