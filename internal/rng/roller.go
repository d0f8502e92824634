package rng

// Roller provides the random draws the game needs.
// Injecting it lets tests force or forbid critical hits and pin
// level-up stat distribution.
type Roller interface {
	// Float64 returns a uniform draw in [0.0, 1.0)
	Float64() float64

	// Intn returns a uniform draw in [0, n)
	Intn(n int) int
}
