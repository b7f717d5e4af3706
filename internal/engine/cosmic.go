package engine

import (
	"context"
	"time"
)

// The cosmic fleet. These engines simulate their work cycles: each one
// sleeps briefly and reports figures drawn from fixed ranges. None of them
// touches the network or any external system.

// CosmicIntelligence reports universal insight levels for a directive.
type CosmicIntelligence struct {
	rng *Rand
}

func NewCosmicIntelligence(rng *Rand) *CosmicIntelligence {
	return &CosmicIntelligence{rng: rng}
}

func (e *CosmicIntelligence) Name() string     { return "cosmic_intelligence" }
func (e *CosmicIntelligence) Category() string { return "cosmic" }

func (e *CosmicIntelligence) Cycle(ctx context.Context, task Task) (*Report, error) {
	start := time.Now()
	if err := e.rng.Jitter(ctx, 50*time.Millisecond, 300*time.Millisecond); err != nil {
		return nil, err
	}

	insight := e.rng.Choice([]string{
		"galactic market convergence detected",
		"interstellar demand spike projected",
		"universal consciousness aligned with revenue stream",
	})

	return &Report{
		Engine:    e.Name(),
		TaskID:    task.ID,
		StartedAt: start,
		Duration:  time.Since(start),
		Metrics: map[string]float64{
			"cosmic_awareness":   e.rng.Uniform(0.85, 0.99),
			"insight_confidence": e.rng.Uniform(0.70, 0.95),
			"energy_consumed":    e.rng.Uniform(10, 120),
			"projected_earnings": e.rng.Uniform(500, 5000),
		},
		Notes:   []string{insight},
		Success: true,
	}, nil
}

// UniverseCreation reports on freshly minted revenue universes.
type UniverseCreation struct {
	rng *Rand
}

func NewUniverseCreation(rng *Rand) *UniverseCreation {
	return &UniverseCreation{rng: rng}
}

func (e *UniverseCreation) Name() string     { return "universe_creation" }
func (e *UniverseCreation) Category() string { return "cosmic" }

func (e *UniverseCreation) Cycle(ctx context.Context, task Task) (*Report, error) {
	start := time.Now()
	if err := e.rng.Jitter(ctx, 100*time.Millisecond, 500*time.Millisecond); err != nil {
		return nil, err
	}

	universes := float64(1 + e.rng.Intn(7))
	return &Report{
		Engine:    e.Name(),
		TaskID:    task.ID,
		StartedAt: start,
		Duration:  time.Since(start),
		Metrics: map[string]float64{
			"universes_created":  universes,
			"stability_index":    e.rng.Uniform(0.80, 0.98),
			"energy_consumed":    e.rng.Uniform(200, 900),
			"projected_earnings": universes * e.rng.Uniform(1000, 3000),
		},
		Notes:   []string{e.rng.Choice([]string{"big bang nominal", "inflation phase stable", "vacuum energy harvested"})},
		Success: true,
	}, nil
}

// RealityManipulation reports probability adjustments in the local timeline.
type RealityManipulation struct {
	rng *Rand
}

func NewRealityManipulation(rng *Rand) *RealityManipulation {
	return &RealityManipulation{rng: rng}
}

func (e *RealityManipulation) Name() string     { return "reality_manipulation" }
func (e *RealityManipulation) Category() string { return "cosmic" }

func (e *RealityManipulation) Cycle(ctx context.Context, task Task) (*Report, error) {
	start := time.Now()
	if err := e.rng.Jitter(ctx, 80*time.Millisecond, 400*time.Millisecond); err != nil {
		return nil, err
	}

	return &Report{
		Engine:    e.Name(),
		TaskID:    task.ID,
		StartedAt: start,
		Duration:  time.Since(start),
		Metrics: map[string]float64{
			"probability_shift":  e.rng.Uniform(0.01, 0.15),
			"timeline_coherence": e.rng.Uniform(0.90, 0.999),
			"success_rate":       e.rng.Uniform(0.70, 0.95),
			"projected_earnings": e.rng.Uniform(300, 2500),
		},
		Notes:   []string{e.rng.Choice([]string{"causality preserved", "minor paradox absorbed", "branch merged cleanly"})},
		Success: true,
	}, nil
}
