package score

// HardSoft is a two-level score: Hard dominates Soft in comparison. A
// HardSoft score is feasible iff Hard >= 0.
type HardSoft struct {
	Hard int64
	Soft int64
}

var _ Score[HardSoft] = HardSoft{}

func (s HardSoft) Add(o HardSoft) HardSoft {
	return HardSoft{Hard: s.Hard + o.Hard, Soft: s.Soft + o.Soft}
}

func (s HardSoft) Negate() HardSoft {
	return HardSoft{Hard: -s.Hard, Soft: -s.Soft}
}

func (s HardSoft) MultiplyBy(f float64) HardSoft {
	return HardSoft{
		Hard: roundHalfAwayFromZero(float64(s.Hard) * f),
		Soft: roundHalfAwayFromZero(float64(s.Soft) * f),
	}
}

func (s HardSoft) DivideBy(f float64) HardSoft {
	return HardSoft{
		Hard: roundHalfAwayFromZero(float64(s.Hard) / f),
		Soft: roundHalfAwayFromZero(float64(s.Soft) / f),
	}
}

func (s HardSoft) Abs() HardSoft {
	out := s
	if out.Hard < 0 {
		out.Hard = -out.Hard
	}
	if out.Soft < 0 {
		out.Soft = -out.Soft
	}
	return out
}

func (s HardSoft) CompareTo(o HardSoft) int {
	if s.Hard != o.Hard {
		if s.Hard < o.Hard {
			return -1
		}
		return 1
	}
	if s.Soft != o.Soft {
		if s.Soft < o.Soft {
			return -1
		}
		return 1
	}
	return 0
}

func (s HardSoft) IsFeasible() bool { return s.Hard >= 0 }
func (s HardSoft) IsZero() bool     { return s.Hard == 0 && s.Soft == 0 }

func (s HardSoft) String() string {
	return formatLevel(s.Hard, "hard") + "/" + formatLevel(s.Soft, "soft")
}

// ParseHardSoft parses the canonical "Xhard/Ysoft" form.
func ParseHardSoft(input string) (HardSoft, error) {
	s := trimmed(input)
	levels, err := splitLevels(s, input, []string{"hard", "soft"})
	if err != nil {
		return HardSoft{}, err
	}
	return HardSoft{Hard: levels[0], Soft: levels[1]}, nil
}
