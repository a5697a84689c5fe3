package solver

import (
	"fmt"
	"io"

	"github.com/brightforge/concord/score"
)

// PhaseTransition is what a Tracer observes: the phase that just finished
// running, its index in the solver's phase list, and the scope's state
// immediately afterward. Tracing fires between phases rather than per
// step — threading an observer into every Forager/Acceptor combination a
// caller might wire up would couple those interfaces to logging, so this
// mirrors the teacher's Tracer at the granularity the solver itself
// controls.
type PhaseTransition[S any] struct {
	PhaseIndex int
	PhaseName  string
	Steps      int
	BestScore  S
}

// Tracer observes phase transitions during a solve, grounded verbatim in
// shape on the teacher's Tracer/DefaultTracer/LoggingTracer trio
// (solver/tracer.go) — there it traces SAT search positions, here it
// traces scored phase transitions.
type Tracer[S score.Score[S]] interface {
	Trace(t PhaseTransition[S])
}

// DefaultTracer discards every transition.
type DefaultTracer[S score.Score[S]] struct{}

func (DefaultTracer[S]) Trace(PhaseTransition[S]) {}

// LoggingTracer writes a line per phase transition to Writer.
type LoggingTracer[S score.Score[S]] struct {
	Writer io.Writer
}

func (t LoggingTracer[S]) Trace(p PhaseTransition[S]) {
	fmt.Fprintf(t.Writer, "phase %d (%s): %d steps, best score %s\n", p.PhaseIndex, p.PhaseName, p.Steps, p.BestScore.String())
}
