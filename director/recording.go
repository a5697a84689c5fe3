package director

import "github.com/brightforge/concord/score"

// UndoEntry reverses one before/after-variable-changed edit. Apply performs
// the reversal itself (e.g. restoring a variable's prior value); the
// recording director brackets Apply with the same before/after
// notifications the original edit used, so the cached score returns to its
// pre-edit value via the same delta machinery, not a separate code path.
type UndoEntry[Sol any] struct {
	DescriptorIndex int
	EntityIndex     int
	Apply           func(sol *Sol)
}

// RecordingScoreDirector wraps a ScoreDirector with an undo stack: every
// edit a move performs through it is reversible in LIFO order via
// UndoChanges, per spec.md §4.3's move-undo protocol.
type RecordingScoreDirector[Sol any, S score.Score[S]] struct {
	*ScoreDirector[Sol, S]
	undo []UndoEntry[Sol]
}

// NewRecording wraps base for speculative, undoable editing.
func NewRecording[Sol any, S score.Score[S]](base *ScoreDirector[Sol, S]) *RecordingScoreDirector[Sol, S] {
	return &RecordingScoreDirector[Sol, S]{ScoreDirector: base}
}

// RegisterUndo appends e to the undo stack. Moves call this from do_move
// after issuing BeforeVariableChanged/AfterVariableChanged around their own
// mutation; e.Apply must perform the inverse mutation.
func (d *RecordingScoreDirector[Sol, S]) RegisterUndo(e UndoEntry[Sol]) {
	d.undo = append(d.undo, e)
}

// UndoChanges pops every recorded undo entry in LIFO order, bracketing each
// reversal with before/after-variable-changed so the cached score tracks
// the reversal exactly, and clears the stack. By the delta-correctness
// invariant this returns CalculateScore() to bit-identically the value it
// held before the first entry was recorded.
func (d *RecordingScoreDirector[Sol, S]) UndoChanges() {
	for i := len(d.undo) - 1; i >= 0; i-- {
		e := d.undo[i]
		d.BeforeVariableChanged(e.DescriptorIndex, e.EntityIndex)
		e.Apply(d.workingSolution)
		d.AfterVariableChanged(e.DescriptorIndex, e.EntityIndex)
	}
	d.undo = d.undo[:0]
}

// Commit discards the undo stack without reversing it, keeping the current
// working solution and cached score as-is. Used when a phase accepts a
// move it had speculatively applied through this director.
func (d *RecordingScoreDirector[Sol, S]) Commit() {
	d.undo = d.undo[:0]
}

// PendingUndoCount reports how many undo entries are currently recorded,
// used by phases that peek at a move's score before deciding whether to
// keep or roll it back.
func (d *RecordingScoreDirector[Sol, S]) PendingUndoCount() int {
	return len(d.undo)
}
