package termination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brightforge/concord/constraint"
	"github.com/brightforge/concord/director"
	"github.com/brightforge/concord/score"
	"github.com/brightforge/concord/scope"
)

func newScope(t *testing.T) *scope.Scope[struct{}, score.Simple] {
	sol := &struct{}{}
	set := constraint.NewBoxedSet[struct{}, score.Simple]()
	d := director.New[struct{}, score.Simple](sol, set, nil)
	d.CalculateScore()
	rd := director.NewRecording[struct{}, score.Simple](d)
	return scope.NewScope[struct{}, score.Simple](rd, score.Simple{}, sol, func(s *struct{}) *struct{} { c := *s; return &c })
}

func TestStepCountTerminates(t *testing.T) {
	sc := newScope(t)
	term := StepCount[struct{}, score.Simple]{Limit: 3}
	sc.Stats.StepCount = 2
	assert.False(t, term.IsTerminated(sc))
	sc.Stats.StepCount = 3
	assert.True(t, term.IsTerminated(sc))
}

func TestUnimprovedStepCount(t *testing.T) {
	sc := newScope(t)
	sc.Stats.StepCount = 5
	sc.LastImprovementStep = 2
	term := UnimprovedStepCount[struct{}, score.Simple]{Limit: 3}
	assert.True(t, term.IsTerminated(sc))
}

func TestAndOrCombinators(t *testing.T) {
	sc := newScope(t)
	sc.Stats.StepCount = 10
	a := StepCount[struct{}, score.Simple]{Limit: 5}
	b := StepCount[struct{}, score.Simple]{Limit: 100}

	assert.True(t, Or[struct{}, score.Simple]{a, b}.IsTerminated(sc))
	assert.False(t, And[struct{}, score.Simple]{a, b}.IsTerminated(sc))
}

func TestTimeLimit(t *testing.T) {
	sc := newScope(t)
	sc.StartTime = time.Now().Add(-2 * time.Second)
	term := TimeLimit[struct{}, score.Simple]{Duration: time.Second}
	assert.True(t, term.IsTerminated(sc))
}

func TestDiminishedReturnsTerminatesOnceWindowElapsedWithNoImprovement(t *testing.T) {
	sc := newScope(t)
	sc.BestScore = score.Simple{Soft: -100}
	term := &DiminishedReturns[struct{}, score.Simple]{
		Window:  200 * time.Millisecond,
		MinRate: 0.1,
		Level:   func(s score.Simple) float64 { return float64(s.Soft) },
	}

	// First call starts the window; still within the grace period.
	assert.False(t, term.IsTerminated(sc))

	// Second call: 120ms in, still inside the 200ms window, score
	// unchanged.
	time.Sleep(120 * time.Millisecond)
	assert.False(t, term.IsTerminated(sc))

	// Third call: 220ms since start, window has elapsed, and the score
	// hasn't moved — rate is ~0, below the 0.1/s minimum.
	time.Sleep(100 * time.Millisecond)
	assert.True(t, term.IsTerminated(sc))
}

func TestDiminishedReturnsDoesNotTerminateWithSufficientImprovement(t *testing.T) {
	sc := newScope(t)
	sc.BestScore = score.Simple{Soft: -100}
	term := &DiminishedReturns[struct{}, score.Simple]{
		Window:  50 * time.Millisecond,
		MinRate: 10,
		Level:   func(s score.Simple) float64 { return float64(s.Soft) },
	}

	assert.False(t, term.IsTerminated(sc))

	// Second call: 30ms in, still inside the 50ms window, so it only
	// records a sample.
	time.Sleep(30 * time.Millisecond)
	assert.False(t, term.IsTerminated(sc))

	time.Sleep(30 * time.Millisecond)
	sc.BestScore = score.Simple{Soft: 0}
	// Third call: the first sample has left the window; +100 over the
	// ~30ms since the second sample is ~3333/s, comfortably above 10/s.
	assert.False(t, term.IsTerminated(sc))
}
