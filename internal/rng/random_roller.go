package rng

import (
	"math/rand"
)

// randomRoller implements Roller using math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Float64 implements Roller.Float64
func (r *randomRoller) Float64() float64 {
	return rand.Float64()
}

// Intn implements Roller.Intn
func (r *randomRoller) Intn(n int) int {
	return rand.Intn(n)
}
