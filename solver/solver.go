// Package solver assembles phases, a termination, and a director into one
// solve — spec.md §5/§6's outermost surface: Builder configures a Solver,
// Solver.Solve drives the phase list to completion while draining
// real-time problem changes from a Handle, and RunID/Tracer/Metrics give a
// caller visibility into the run.
package solver

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brightforge/concord/phase"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
	"github.com/brightforge/concord/termination"
)

// RunID uniquely identifies one Solve call, stamped into log fields and
// available to a best-solution callback for correlating runs.
type RunID uuid.UUID

func newRunID() RunID { return RunID(uuid.New()) }

func (id RunID) String() string { return uuid.UUID(id).String() }

type named interface{ Name() string }

func phaseName[Sol any, S score.Score[S]](p phase.Phase[Sol, S]) string {
	if n, ok := p.(named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

// Builder assembles a Solver: an ordered phase list, the termination
// checked between phases, an optional time limit folded into that
// termination via Or, a best-solution callback, and the ambient logging
// and tracing hooks. Matches the teacher's functional-option-less
// struct-builder style (solver/priorities.go's NewPriorities).
type Builder[Sol any, S score.Score[S]] struct {
	phases       []phase.Phase[Sol, S]
	term         termination.Termination[Sol, S]
	bestCallback func(sol *Sol, best S, run RunID)
	timeLimit    time.Duration
	log          *logrus.Entry
	tracer       Tracer[S]
	metrics      *Metrics
	queueCap     int
}

// NewBuilder returns an empty builder; termination defaults to
// termination.Or[Sol,S]{} (never terminates) until WithTermination is
// called, so a caller that forgets it gets an infinite loop rather than a
// silent no-op — callers are expected to always set one.
func NewBuilder[Sol any, S score.Score[S]]() *Builder[Sol, S] {
	return &Builder[Sol, S]{queueCap: 64}
}

func (b *Builder[Sol, S]) AddPhase(p phase.Phase[Sol, S]) *Builder[Sol, S] {
	b.phases = append(b.phases, p)
	return b
}

func (b *Builder[Sol, S]) WithTermination(t termination.Termination[Sol, S]) *Builder[Sol, S] {
	b.term = t
	return b
}

func (b *Builder[Sol, S]) WithTimeLimit(d time.Duration) *Builder[Sol, S] {
	b.timeLimit = d
	return b
}

func (b *Builder[Sol, S]) WithBestSolutionCallback(f func(sol *Sol, best S, run RunID)) *Builder[Sol, S] {
	b.bestCallback = f
	return b
}

func (b *Builder[Sol, S]) WithLogger(log *logrus.Entry) *Builder[Sol, S] {
	b.log = log
	return b
}

func (b *Builder[Sol, S]) WithTracer(t Tracer[S]) *Builder[Sol, S] {
	b.tracer = t
	return b
}

func (b *Builder[Sol, S]) WithMetrics(m *Metrics) *Builder[Sol, S] {
	b.metrics = m
	return b
}

// WithProblemChangeQueueCapacity sets the Handle's queue capacity (default
// 64).
func (b *Builder[Sol, S]) WithProblemChangeQueueCapacity(n int) *Builder[Sol, S] {
	b.queueCap = n
	return b
}

// Build returns a ready Solver and the Handle a caller uses to submit
// real-time problem changes and request early termination while it runs.
func (b *Builder[Sol, S]) Build() (*Solver[Sol, S], *Handle[Sol]) {
	term := b.term
	if term == nil {
		term = termination.Or[Sol, S]{}
	}
	if b.timeLimit > 0 {
		term = termination.Or[Sol, S]{term, termination.TimeLimit[Sol, S]{Duration: b.timeLimit}}
	}
	log := b.log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	tracer := b.tracer
	if tracer == nil {
		tracer = DefaultTracer[S]{}
	}
	h := NewHandle[Sol](b.queueCap)
	s := &Solver[Sol, S]{
		phases:       append([]phase.Phase[Sol, S]{}, b.phases...),
		term:         term,
		bestCallback: b.bestCallback,
		log:          log,
		tracer:       tracer,
		metrics:      b.metrics,
		handle:       h,
	}
	return s, h
}

// Solver drives its phase list over a scope.Scope to completion, applying
// queued problem changes at each phase boundary.
type Solver[Sol any, S score.Score[S]] struct {
	phases       []phase.Phase[Sol, S]
	term         termination.Termination[Sol, S]
	bestCallback func(sol *Sol, best S, run RunID)
	log          *logrus.Entry
	tracer       Tracer[S]
	metrics      *Metrics
	handle       *Handle[Sol]

	prevStats struct{ evaluated, accepted int }
}

// Solve runs every phase in order against sc until the solver's
// termination fires, the shared cancellation flag is set, or the phase
// list is exhausted, draining queued problem changes between phases. It
// returns the best solution found.
func (s *Solver[Sol, S]) Solve(sc *scope.Scope[Sol, S]) *Sol {
	run := newRunID()
	log := s.log.WithField("run_id", run.String())

	s.handle.solving.Store(true)
	s.handle.cancel.Store(false)
	sc.CancelRequested = func() bool { return s.handle.cancel.Load() }
	sc.DrainChanges = func() { s.drainProblemChanges(sc) }
	defer func() {
		s.handle.solving.Store(false)
		sc.DrainChanges = nil
	}()

	log.Debug("solve started")
	for i, p := range s.phases {
		if s.handle.cancel.Load() || s.term.IsTerminated(sc) {
			break
		}
		stepsBefore := sc.Stats.StepCount
		p.Run(sc, s.term)
		s.drainProblemChanges(sc)

		name := phaseName[Sol, S](p)
		log.WithFields(logrus.Fields{
			"phase":      name,
			"best_score": sc.BestScore.String(),
			"steps":      sc.Stats.StepCount - stepsBefore,
		}).Debug("phase completed")
		s.tracer.Trace(PhaseTransition[S]{PhaseIndex: i, PhaseName: name, Steps: sc.Stats.StepCount - stepsBefore, BestScore: sc.BestScore})
		s.publishMetrics(sc)

		if s.bestCallback != nil {
			s.bestCallback(sc.BestSolution, sc.BestScore, run)
		}
	}
	log.Debug("solve finished")
	return sc.BestSolution
}

// drainProblemChanges applies every problem change queued on the handle
// since the last call, bracketing each with the director's
// before/after-variable-changed notifications — the "variable listeners"
// spec.md §5 describes are the constraint set's incremental evaluation.
// Bound to sc.DrainChanges for the duration of Solve, so step-loop phases
// (LocalSearch, VariableNeighborhoodDescent, ConstructionHeuristic) drain
// at step boundaries via sc.DrainPendingChanges; the call here after each
// p.Run is a phase-boundary backstop, the only draining point for phases
// that don't have a per-step loop of their own (PartitionedPhase runs its
// partitions to completion before merging; ExhaustiveSearch's bound
// pruning assumes a frozen problem for the duration of its DFS).
func (s *Solver[Sol, S]) drainProblemChanges(sc *scope.Scope[Sol, S]) {
	for {
		select {
		case change := <-s.handle.changes:
			sc.Director.BeforeVariableChanged(change.DescriptorIndex(), change.EntityIndex())
			change.Apply(sc.Director.WorkingSolution())
			sc.Director.AfterVariableChanged(change.DescriptorIndex(), change.EntityIndex())
			sc.Stats.ScoreCalculationCount++
		default:
			return
		}
	}
}

func (s *Solver[Sol, S]) publishMetrics(sc *scope.Scope[Sol, S]) {
	if s.metrics == nil {
		return
	}
	s.metrics.MovesEvaluated.Add(float64(sc.Stats.MovesEvaluated - s.prevStats.evaluated))
	s.metrics.MovesAccepted.Add(float64(sc.Stats.MovesAccepted - s.prevStats.accepted))
	s.prevStats.evaluated = sc.Stats.MovesEvaluated
	s.prevStats.accepted = sc.Stats.MovesAccepted
}
