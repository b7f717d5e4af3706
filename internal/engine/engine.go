package engine

import (
	"context"
	"time"
)

// Task is a unit of directed work handed to an engine for one cycle.
type Task struct {
	ID        string
	Directive string
	Params    map[string]string
	IssuedAt  time.Time
}

// Report is the outcome of a single engine cycle. Metrics carries the
// engine's self-reported figures (confidence scores, success rates,
// energy consumed, projected earnings).
type Report struct {
	Engine    string
	TaskID    string
	StartedAt time.Time
	Duration  time.Duration
	Metrics   map[string]float64
	Notes     []string
	Success   bool
}

// Projected returns the projected earnings figure from the report,
// or zero if the engine did not produce one.
func (r *Report) Projected() float64 {
	if r == nil || r.Metrics == nil {
		return 0
	}
	return r.Metrics["projected_earnings"]
}

// Engine is the contract every AutoEarnPro engine satisfies.
type Engine interface {
	// Name returns the unique engine identifier (e.g. "cosmic_intelligence").
	Name() string

	// Category groups engines for policy checks (e.g. "cosmic", "domination").
	Category() string

	// Cycle performs one simulated work cycle for the task.
	// It must honor context cancellation.
	Cycle(ctx context.Context, task Task) (*Report, error)
}
