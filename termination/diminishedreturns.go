package termination

import (
	"time"

	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
)

// DiminishedReturns terminates once the best level's improvement rate over
// a sliding time window falls below MinRate (score units per second) —
// spec.md §4.6 and its worked scenario 6, grounded on
// solverforge-solver's DiminishedReturnsTermination. The window starts on
// this termination's own first check, not the phase's StartTime; no
// termination happens until a full window has elapsed, and the rate is the
// difference between the oldest sample still inside the window and the
// latest one, divided by the elapsed wall-clock time between them. Level
// reduces a score to the scalar the rate is computed over (typically the
// least-significant/soft level).
type DiminishedReturns[Sol any, S score.Score[S]] struct {
	Window  time.Duration
	MinRate float64
	Level   func(s S) float64

	start   time.Time
	samples []levelAtTime
}

type levelAtTime struct {
	at    time.Time
	level float64
}

func (t *DiminishedReturns[Sol, S]) IsTerminated(sc *scope.Scope[Sol, S]) bool {
	now := time.Now()
	if t.start.IsZero() {
		t.start = now
	}

	// Grace period: still record the sample so the window is populated,
	// but never terminate before it has fully elapsed.
	if now.Sub(t.start) < t.Window {
		t.samples = append(t.samples, levelAtTime{at: now, level: t.Level(sc.BestScore)})
		return false
	}

	cutoff := now.Add(-t.Window)
	i := 0
	for i < len(t.samples) && t.samples[i].at.Before(cutoff) {
		i++
	}
	t.samples = append(t.samples[i:], levelAtTime{at: now, level: t.Level(sc.BestScore)})

	if len(t.samples) < 2 {
		return false
	}

	oldest := t.samples[0]
	elapsed := now.Sub(oldest.at).Seconds()
	if elapsed < 0.001 {
		return false
	}

	rate := (t.samples[len(t.samples)-1].level - oldest.level) / elapsed
	return rate < t.MinRate
}
