package engine

import (
	"context"
	"time"

	"github.com/autoearnpro/autoearnpro/internal/quantum"
)

// GodAscension reports progress toward the next divinity tier.
type GodAscension struct {
	rng  *Rand
	tier int
}

func NewGodAscension(rng *Rand) *GodAscension {
	return &GodAscension{rng: rng}
}

func (e *GodAscension) Name() string     { return "god_ascension" }
func (e *GodAscension) Category() string { return "ascension" }

func (e *GodAscension) Cycle(ctx context.Context, task Task) (*Report, error) {
	start := time.Now()
	if err := e.rng.Jitter(ctx, 120*time.Millisecond, 600*time.Millisecond); err != nil {
		return nil, err
	}

	e.tier++
	return &Report{
		Engine:    e.Name(),
		TaskID:    task.ID,
		StartedAt: start,
		Duration:  time.Since(start),
		Metrics: map[string]float64{
			"divinity_tier":      float64(e.tier),
			"ascension_progress": e.rng.Uniform(0.05, 0.30),
			"worship_index":      e.rng.Uniform(0.60, 0.99),
			"projected_earnings": e.rng.Uniform(800, 8000),
		},
		Notes:   []string{e.rng.Choice([]string{"mortal constraints shed", "omniscience buffering", "pantheon notified"})},
		Success: true,
	}, nil
}

// QuantumConsciousness derives its coherence figure from an actual
// statevector simulation: a register is put into superposition, entangled,
// and sampled. The result feeds nothing but the report, matching the rest
// of the fleet.
type QuantumConsciousness struct {
	rng    *Rand
	qubits int
}

func NewQuantumConsciousness(rng *Rand) *QuantumConsciousness {
	return &QuantumConsciousness{rng: rng, qubits: 3}
}

func (e *QuantumConsciousness) Name() string     { return "quantum_consciousness" }
func (e *QuantumConsciousness) Category() string { return "ascension" }

func (e *QuantumConsciousness) Cycle(ctx context.Context, task Task) (*Report, error) {
	start := time.Now()
	if err := e.rng.Jitter(ctx, 60*time.Millisecond, 350*time.Millisecond); err != nil {
		return nil, err
	}

	state, err := quantum.NewState(e.qubits)
	if err != nil {
		return nil, err
	}
	for q := 0; q < e.qubits; q++ {
		if err := state.Apply(quantum.H, q); err != nil {
			return nil, err
		}
	}
	for q := 0; q+1 < e.qubits; q++ {
		if err := state.ApplyCNOT(q, q+1); err != nil {
			return nil, err
		}
	}

	coherence := state.Entropy()
	outcome := state.Measure(e.rng.Uniform(0, 1))

	return &Report{
		Engine:    e.Name(),
		TaskID:    task.ID,
		StartedAt: start,
		Duration:  time.Since(start),
		Metrics: map[string]float64{
			"coherence":          coherence,
			"collapsed_state":    float64(outcome),
			"awareness_depth":    e.rng.Uniform(0.75, 0.98),
			"projected_earnings": e.rng.Uniform(400, 3500),
		},
		Notes:   []string{"register entangled and sampled"},
		Success: true,
	}, nil
}
