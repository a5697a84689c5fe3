// Package score implements the multi-level, lexicographically-ordered score
// algebra used to rank candidate solutions.
package score

// Score is implemented by every concrete score type (Simple, HardSoft,
// HardMediumSoft and their BigDecimal variants). It is parameterized over
// itself so that arithmetic stays monomorphic: callers never mix score
// kinds, and no interface dispatch is paid on the hot incremental-delta
// path (see director.ScoreDirector, which is generic over S Score[S]).
type Score[S any] interface {
	// Add returns the level-wise sum of the receiver and other.
	Add(other S) S
	// Negate returns the level-wise negation of the receiver.
	Negate() S
	// MultiplyBy scales every level by factor, rounding half away from
	// zero.
	MultiplyBy(factor float64) S
	// DivideBy scales every level by 1/factor, rounding half away from
	// zero.
	DivideBy(factor float64) S
	// Abs returns the level-wise absolute value of the receiver.
	Abs() S
	// CompareTo returns -1, 0 or 1 using lexicographic, most-significant-
	// level-first comparison.
	CompareTo(other S) int
	// IsFeasible reports whether every hard level is non-negative. Types
	// with no hard level are always feasible.
	IsFeasible() bool
	// IsZero reports whether every level is exactly zero.
	IsZero() bool
	// String returns the canonical, round-trippable textual form.
	String() string
}

// Zero returns the additive identity for a score type inferred from a
// sample value of that type (used by generic code that only has a zero
// value of S available, e.g. a freshly declared var).
func Zero[S Score[S]](sample S) S {
	return sample.Negate().Add(sample)
}

// Sum folds Add over scores, starting from zero. For an empty slice it
// returns the zero value of S (every level zero for the score types in
// this package).
func Sum[S Score[S]](scores []S) S {
	var total S
	if len(scores) == 0 {
		return total
	}
	total = Zero(scores[0])
	for _, s := range scores {
		total = total.Add(s)
	}
	return total
}

// Less reports whether a sorts strictly before b.
func Less[S Score[S]](a, b S) bool {
	return a.CompareTo(b) < 0
}

// roundHalfAwayFromZero rounds x to the nearest integer, breaking exact
// .5 ties away from zero (not to even — multiply/divide contracts call
// for this, independent of the language runtime's default rounding mode).
func roundHalfAwayFromZero(x float64) int64 {
	if x >= 0 {
		return int64(x + 0.5)
	}
	return -int64(-x + 0.5)
}
