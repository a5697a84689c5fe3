package phase

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/brightforge/concord/constraint"
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
	"github.com/brightforge/concord/termination"
)

// PartitionedPhase splits the working solution into independent
// sub-solutions via Partitioner, runs a fresh child phase (NewChildPhase
// is called once per partition, since a phase's selectors/acceptors carry
// step-local state) against each under its own private director, merges
// the results back via Merger, and recomputes the full score —
// spec.md §4.5/§5. Workers bounds how many partitions run concurrently;
// Workers<=1 runs them sequentially, one worker goroutine at a time,
// matching the "or sequentially if one thread" clause.
type PartitionedPhase[Sol any, S score.Score[S]] struct {
	Partitioner      func(sol *Sol) []*Sol
	Merger           func(sol *Sol, parts []*Sol)
	Constraints      func() constraint.Set[Sol, S]
	NewChildPhase    func() Phase[Sol, S]
	ChildTermination termination.Termination[Sol, S]
	Workers          int
}

func (p PartitionedPhase[Sol, S]) Run(sc *scope.Scope[Sol, S], term termination.Termination[Sol, S]) {
	if sc.Cancelled() || term.IsTerminated(sc) {
		return
	}
	parts := p.Partitioner(sc.Director.WorkingSolution())

	g := new(errgroup.Group)
	if p.Workers > 1 {
		g.SetLimit(p.Workers)
	} else {
		g.SetLimit(1)
	}
	for _, part := range parts {
		part := part
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("partition worker panicked: %v", r)
				}
			}()
			base := director.New[Sol, S](part, p.Constraints(), nil)
			base.CalculateScore()
			rd := director.NewRecording[Sol, S](base)
			childScope := scope.NewScope[Sol, S](rd, base.CalculateScore(), part, sc.Clone)
			childScope.CancelRequested = sc.CancelRequested
			p.NewChildPhase().Run(childScope, p.ChildTermination)
			return nil
		})
	}
	// Partition worker failure is surfaced to the caller as a panic —
	// the solver that owns this phase aborts and re-reports it, per
	// spec.md §7's "propagated to the merge step" error kind.
	if err := g.Wait(); err != nil {
		panic(errors.Wrap(err, "partitioned phase"))
	}

	p.Merger(sc.Director.WorkingSolution(), parts)
	sc.Director.Reset(sc.Director.WorkingSolution())
	sc.Stats.ScoreCalculationCount++
	sc.RecordStep(sc.Director.CalculateScore(), sc.Director.WorkingSolution())
}
