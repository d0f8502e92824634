package mockrng

import (
	"sync"
)

// ManualMockRoller implements rng.Roller for testing with predetermined draws
type ManualMockRoller struct {
	mu         sync.Mutex
	floats     []float64
	floatIndex int
	ints       []int
	intIndex   int
}

// NewManualMockRoller creates a new mock roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetFloats sets the sequence of Float64 draws
func (m *ManualMockRoller) SetFloats(draws ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floats = draws
	m.floatIndex = 0
}

// SetInts sets the sequence of Intn draws
func (m *ManualMockRoller) SetInts(draws ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints = draws
	m.intIndex = 0
}

// Float64 implements rng.Roller. Once the predetermined draws are exhausted
// it returns 1.0, which never passes a probability check.
func (m *ManualMockRoller) Float64() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.floatIndex >= len(m.floats) {
		return 1.0
	}
	draw := m.floats[m.floatIndex]
	m.floatIndex++
	return draw
}

// Intn implements rng.Roller. Once the predetermined draws are exhausted it
// returns 0.
func (m *ManualMockRoller) Intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.intIndex >= len(m.ints) {
		return 0
	}
	draw := m.ints[m.intIndex] % n
	m.intIndex++
	return draw
}
