// Package dice provides the randomness abstraction for the roguelike: map
// generation, enemy kind draws, and placement all pull from a Source.
package dice

// Source is the randomness provider for the game.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// Chance reports whether a Bernoulli draw with probability p succeeds.
//
// Postcondition: Returns false for p <= 0 and true for p >= 1 without consuming a draw.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Pick returns a uniformly random element of items.
//
// Precondition: len(items) > 0.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
