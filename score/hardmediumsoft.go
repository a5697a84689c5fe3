package score

// HardMediumSoft is a three-level score: Hard dominates Medium dominates
// Soft. Feasible iff Hard >= 0.
type HardMediumSoft struct {
	Hard   int64
	Medium int64
	Soft   int64
}

var _ Score[HardMediumSoft] = HardMediumSoft{}

func (s HardMediumSoft) Add(o HardMediumSoft) HardMediumSoft {
	return HardMediumSoft{
		Hard:   s.Hard + o.Hard,
		Medium: s.Medium + o.Medium,
		Soft:   s.Soft + o.Soft,
	}
}

func (s HardMediumSoft) Negate() HardMediumSoft {
	return HardMediumSoft{Hard: -s.Hard, Medium: -s.Medium, Soft: -s.Soft}
}

func (s HardMediumSoft) MultiplyBy(f float64) HardMediumSoft {
	return HardMediumSoft{
		Hard:   roundHalfAwayFromZero(float64(s.Hard) * f),
		Medium: roundHalfAwayFromZero(float64(s.Medium) * f),
		Soft:   roundHalfAwayFromZero(float64(s.Soft) * f),
	}
}

func (s HardMediumSoft) DivideBy(f float64) HardMediumSoft {
	return HardMediumSoft{
		Hard:   roundHalfAwayFromZero(float64(s.Hard) / f),
		Medium: roundHalfAwayFromZero(float64(s.Medium) / f),
		Soft:   roundHalfAwayFromZero(float64(s.Soft) / f),
	}
}

func (s HardMediumSoft) Abs() HardMediumSoft {
	out := s
	if out.Hard < 0 {
		out.Hard = -out.Hard
	}
	if out.Medium < 0 {
		out.Medium = -out.Medium
	}
	if out.Soft < 0 {
		out.Soft = -out.Soft
	}
	return out
}

func (s HardMediumSoft) CompareTo(o HardMediumSoft) int {
	if s.Hard != o.Hard {
		if s.Hard < o.Hard {
			return -1
		}
		return 1
	}
	if s.Medium != o.Medium {
		if s.Medium < o.Medium {
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

func (s HardMediumSoft) IsFeasible() bool { return s.Hard >= 0 }
func (s HardMediumSoft) IsZero() bool     { return s.Hard == 0 && s.Medium == 0 && s.Soft == 0 }

func (s HardMediumSoft) String() string {
	return formatLevel(s.Hard, "hard") + "/" + formatLevel(s.Medium, "medium") + "/" + formatLevel(s.Soft, "soft")
}

// ParseHardMediumSoft parses the canonical "Xhard/Ymedium/Zsoft" form.
func ParseHardMediumSoft(input string) (HardMediumSoft, error) {
	s := trimmed(input)
	levels, err := splitLevels(s, input, []string{"hard", "medium", "soft"})
	if err != nil {
		return HardMediumSoft{}, err
	}
	return HardMediumSoft{Hard: levels[0], Medium: levels[1], Soft: levels[2]}, nil
}
