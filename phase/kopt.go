package phase

import (
	"github.com/brightforge/concord/acceptor"
	"github.com/brightforge/concord/forager"
	"github.com/brightforge/concord/move"
	"github.com/brightforge/concord/move/selector"
	"github.com/brightforge/concord/score"
)

// NewKOptPhase builds a LocalSearch wired to a k-opt selector and simple
// hill-climbing acceptance, per spec.md §4.5: "like local search but uses
// the k-opt selector and simple hill-climbing acceptance."
func NewKOptPhase[Sol any, S score.Score[S]](sel selector.Selector[Sol, move.Move[Sol]], f forager.Forager[Sol, S]) LocalSearch[Sol, S] {
	return LocalSearch[Sol, S]{
		Selector: sel,
		Acceptor: acceptor.HillClimbing[Sol, S]{},
		Forager:  f,
	}
}
