package model

// ScoredSolution can be implemented by a caller's planning-solution type to
// expose a cached score without the core needing to know the solution's
// layout. S is the score type in use for this solution (score.Simple,
// score.HardSoft, ...). The score director keeps its own cached score and
// does not read or write this one.
type ScoredSolution[S any] interface {
	// Score returns the cached score, or ok=false if none has been
	// computed yet.
	Score() (value S, ok bool)
	// SetScore stores the cached score.
	SetScore(value S)
}

// EntityCount can be implemented by a planning solution to report the size
// of a named entity collection. No entity placer in the core consults it:
// phase.ConstructionHeuristic takes its entity order from its Placer.
type EntityCount interface {
	// EntityCount returns the number of entities in the collection
	// identified by name.
	EntityCount(collection string) int
}
