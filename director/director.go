// Package director implements the score director and the move-undo
// protocol of spec.md §4.3: a director owns the working solution and a
// constraint set, keeps a cached score in lock-step with every mutation via
// before/after-variable-changed notifications, and offers a recording
// variant that lets a phase speculatively apply a move and roll it back
// with the cached score returning to its exact pre-move value.
package director

import (
	"github.com/sirupsen/logrus"

	"github.com/brightforge/concord/constraint"
	"github.com/brightforge/concord/score"
)

// ScoreDirector owns the working solution and drives its constraint set's
// incremental evaluation. It is the sole place a score is computed or
// cached; moves and phases never call a constraint directly.
type ScoreDirector[Sol any, S score.Score[S]] struct {
	workingSolution *Sol
	constraints     constraint.Set[Sol, S]
	cached          S
	hasCached       bool

	// assertionInterval, when > 0, makes AfterVariableChanged recompute
	// the full score from scratch every N calls and panic if it
	// disagrees with the incrementally maintained cache — spec.md §7's
	// debug-mode assertion against score corruption in a constraint
	// implementation.
	assertionInterval int
	changeCount       int

	log *logrus.Entry
}

// New builds a score director over workingSolution and constraints. log may
// be nil, in which case a disabled logrus entry is used.
func New[Sol any, S score.Score[S]](workingSolution *Sol, constraints constraint.Set[Sol, S], log *logrus.Entry) *ScoreDirector[Sol, S] {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &ScoreDirector[Sol, S]{workingSolution: workingSolution, constraints: constraints, log: log}
}

// WithAssertionInterval enables the debug-mode score assertion described on
// the ScoreDirector type, checking every n variable changes. n <= 0
// disables it (the default).
func (d *ScoreDirector[Sol, S]) WithAssertionInterval(n int) *ScoreDirector[Sol, S] {
	d.assertionInterval = n
	return d
}

// WorkingSolution returns the solution this director mutates in place.
func (d *ScoreDirector[Sol, S]) WorkingSolution() *Sol {
	return d.workingSolution
}

// CalculateScore returns the cached score, computing it from scratch via
// Initialize on first use.
func (d *ScoreDirector[Sol, S]) CalculateScore() S {
	if !d.hasCached {
		d.cached = d.constraints.InitializeAll(d.workingSolution)
		d.hasCached = true
	}
	return d.cached
}

// BeforeVariableChanged must be called by a move before it mutates the
// variable identified by descriptorIndex on entityIndex. It routes
// OnRetractAll and folds the result into the cached score.
func (d *ScoreDirector[Sol, S]) BeforeVariableChanged(descriptorIndex, entityIndex int) {
	d.CalculateScore()
	delta := d.constraints.OnRetractAll(d.workingSolution, entityIndex, descriptorIndex)
	d.cached = d.cached.Add(delta)
}

// AfterVariableChanged must be called by a move after it mutates the
// variable identified by descriptorIndex on entityIndex. It routes
// OnInsertAll and folds the result into the cached score.
func (d *ScoreDirector[Sol, S]) AfterVariableChanged(descriptorIndex, entityIndex int) {
	delta := d.constraints.OnInsertAll(d.workingSolution, entityIndex, descriptorIndex)
	d.cached = d.cached.Add(delta)
	d.changeCount++
	if d.assertionInterval > 0 && d.changeCount%d.assertionInterval == 0 {
		d.assertScore()
	}
}

// assertScore recomputes the full score from scratch and panics if it
// disagrees with the incrementally maintained cache. It does not reset the
// constraint set's internal indexes — constraints.EvaluateAll computes the
// score from scratch without reading or touching them.
func (d *ScoreDirector[Sol, S]) assertScore() {
	full := d.constraints.EvaluateAll(d.workingSolution)
	if full.CompareTo(d.cached) != 0 {
		d.log.WithFields(logrus.Fields{
			"incremental": d.cached.String(),
			"recomputed":  full.String(),
		}).Panic("score corruption: incremental score diverged from full recompute")
	}
}

// Reset discards the cached score and every constraint's internal indexes,
// forcing the next CalculateScore to rebuild from scratch. Used when the
// working solution is replaced wholesale (e.g. a new solver run).
func (d *ScoreDirector[Sol, S]) Reset(workingSolution *Sol) {
	d.workingSolution = workingSolution
	d.constraints.ResetAll()
	d.hasCached = false
	d.changeCount = 0
}
