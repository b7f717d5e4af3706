// Package quantum implements a small statevector simulator with exact
// single-qubit and CNOT gate matrices. It backs the quantum consciousness
// engine's coherence figures; it is not connected to any hardware.
package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Gate is a 2x2 unitary in row-major order.
type Gate [2][2]complex128

var (
	// H is the Hadamard gate.
	H = Gate{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}

	// X is the Pauli-X (NOT) gate.
	X = Gate{
		{0, 1},
		{1, 0},
	}

	// Z is the Pauli-Z (phase flip) gate.
	Z = Gate{
		{1, 0},
		{0, -1},
	}
)

// State is a statevector over n qubits. Amplitude index bit i corresponds
// to qubit i (qubit 0 is the least significant bit).
type State struct {
	n    int
	amps []complex128
}

// NewState creates an n-qubit state initialized to |0...0>.
func NewState(n int) (*State, error) {
	if n < 1 || n > 20 {
		return nil, fmt.Errorf("quantum: qubit count %d out of range [1,20]", n)
	}
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &State{n: n, amps: amps}, nil
}

// Qubits returns the number of qubits.
func (s *State) Qubits() int { return s.n }

// Apply applies a single-qubit gate to the given qubit.
func (s *State) Apply(g Gate, qubit int) error {
	if qubit < 0 || qubit >= s.n {
		return fmt.Errorf("quantum: qubit %d out of range [0,%d)", qubit, s.n)
	}

	bit := 1 << qubit
	for i := range s.amps {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := s.amps[i], s.amps[j]
		s.amps[i] = g[0][0]*a0 + g[0][1]*a1
		s.amps[j] = g[1][0]*a0 + g[1][1]*a1
	}
	return nil
}

// ApplyCNOT applies a controlled-NOT with the given control and target qubits.
func (s *State) ApplyCNOT(control, target int) error {
	if control < 0 || control >= s.n || target < 0 || target >= s.n {
		return fmt.Errorf("quantum: qubit index out of range [0,%d)", s.n)
	}
	if control == target {
		return fmt.Errorf("quantum: control and target are both %d", control)
	}

	cbit := 1 << control
	tbit := 1 << target
	for i := range s.amps {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
	return nil
}

// Probabilities returns the measurement distribution over basis states.
func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		m := cmplx.Abs(a)
		probs[i] = m * m
	}
	return probs
}

// Norm returns the statevector norm. It stays within 1e-9 of 1 after any
// sequence of gates.
func (s *State) Norm() float64 {
	var sum float64
	for _, a := range s.amps {
		m := cmplx.Abs(a)
		sum += m * m
	}
	return math.Sqrt(sum)
}

// Measure samples a basis state using u in [0,1) and collapses the
// statevector onto it. It returns the sampled basis index.
func (s *State) Measure(u float64) int {
	probs := s.Probabilities()
	var acc float64
	outcome := len(probs) - 1
	for i, p := range probs {
		acc += p
		if u < acc {
			outcome = i
			break
		}
	}

	for i := range s.amps {
		s.amps[i] = 0
	}
	s.amps[outcome] = 1
	return outcome
}

// Entropy returns the Shannon entropy of the measurement distribution in
// bits, normalized to [0,1] by the maximum for the register size.
func (s *State) Entropy() float64 {
	var h float64
	for _, p := range s.Probabilities() {
		if p > 1e-12 {
			h -= p * math.Log2(p)
		}
	}
	return h / float64(s.n)
}
