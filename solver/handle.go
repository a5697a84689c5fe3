package solver

import (
	"sync/atomic"

	"golang.org/x/time/rate"
)

// ChangeResult reports the outcome of ProblemChange submitted through a
// Handle — spec.md §6 item 5.
type ChangeResult int

const (
	// Queued means the change was accepted onto the problem-change
	// queue and will be applied at the next step boundary.
	Queued ChangeResult = iota
	// SolverNotRunning means no Solve call currently owns this handle;
	// the change was rejected.
	SolverNotRunning
	// QueueFull means the solver is running but its problem-change
	// queue is saturated; the caller should retry.
	QueueFull
)

func (r ChangeResult) String() string {
	switch r {
	case Queued:
		return "Queued"
	case SolverNotRunning:
		return "SolverNotRunning"
	case QueueFull:
		return "QueueFull"
	default:
		return "Unknown"
	}
}

// ProblemChange is a real-time edit to the working solution, applied under
// the director's usual before/after-variable-changed bracket — spec.md
// §5's "applies each change... under the usual move-undo discipline, then
// triggers variable listeners." Unlike a move, a problem change is never
// rolled back: it represents new information (e.g. an order cancellation)
// arriving from outside the solver, not a speculative search step.
type ProblemChange[Sol any] interface {
	DescriptorIndex() int
	EntityIndex() int
	Apply(sol *Sol)
}

// Handle is the thread-safe facade spec.md §6 item 5 describes: cheaply
// cloneable across threads (copy the pointer), it queues problem changes
// while a solve is in progress and lets any goroutine request early
// termination or check whether a solve is active.
type Handle[Sol any] struct {
	changes chan ProblemChange[Sol]
	solving atomic.Bool
	cancel  atomic.Bool
	limiter *rate.Limiter
}

// NewHandle returns a handle whose problem-change queue holds up to
// queueCapacity pending changes before AddProblemChange starts returning
// QueueFull.
func NewHandle[Sol any](queueCapacity int) *Handle[Sol] {
	return &Handle[Sol]{changes: make(chan ProblemChange[Sol], queueCapacity)}
}

// WithRateLimit caps AddProblemChange to rps changes per second with the
// given burst, rejecting anything over that as QueueFull rather than
// blocking the caller. Unset by default — a caller feeding changes from a
// bursty external source (e.g. a stream of order cancellations) opts in.
func (h *Handle[Sol]) WithRateLimit(rps float64, burst int) *Handle[Sol] {
	h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return h
}

// AddProblemChange enqueues change if a solve is in progress, the queue has
// room, and (if a rate limit is set) the caller hasn't exceeded it.
func (h *Handle[Sol]) AddProblemChange(change ProblemChange[Sol]) ChangeResult {
	if !h.solving.Load() {
		return SolverNotRunning
	}
	if h.limiter != nil && !h.limiter.Allow() {
		return QueueFull
	}
	select {
	case h.changes <- change:
		return Queued
	default:
		return QueueFull
	}
}

// TerminateEarly sets the shared cancellation flag the running solve polls
// between moves and at every termination check.
func (h *Handle[Sol]) TerminateEarly() {
	h.cancel.Store(true)
}

// IsSolving reports whether a Solve call currently owns this handle.
func (h *Handle[Sol]) IsSolving() bool {
	return h.solving.Load()
}
