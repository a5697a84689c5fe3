package score

// Simple is a single-level score. There is no hard level, so every Simple
// score is feasible.
type Simple struct {
	Soft int64
}

var _ Score[Simple] = Simple{}

func (s Simple) Add(o Simple) Simple        { return Simple{Soft: s.Soft + o.Soft} }
func (s Simple) Negate() Simple             { return Simple{Soft: -s.Soft} }
func (s Simple) MultiplyBy(f float64) Simple { return Simple{Soft: roundHalfAwayFromZero(float64(s.Soft) * f)} }
func (s Simple) DivideBy(f float64) Simple  { return Simple{Soft: roundHalfAwayFromZero(float64(s.Soft) / f)} }

func (s Simple) Abs() Simple {
	if s.Soft < 0 {
		return Simple{Soft: -s.Soft}
	}
	return s
}

func (s Simple) CompareTo(o Simple) int {
	switch {
	case s.Soft < o.Soft:
		return -1
	case s.Soft > o.Soft:
		return 1
	default:
		return 0
	}
}

func (s Simple) IsFeasible() bool { return true }
func (s Simple) IsZero() bool     { return s.Soft == 0 }

func (s Simple) String() string {
	return formatLevel(s.Soft, "soft")
}

// ParseSimple parses the canonical "Nsoft" form.
func ParseSimple(input string) (Simple, error) {
	s := trimmed(input)
	levels, err := splitLevels(s, input, []string{"soft"})
	if err != nil {
		return Simple{}, err
	}
	return Simple{Soft: levels[0]}, nil
}
