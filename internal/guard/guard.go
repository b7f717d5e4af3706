package guard

import (
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Policy defines the limits and scopes for an earning session.
type Policy struct {
	MaxCycles         int           `json:"max_cycles" yaml:"max_cycles"`
	MaxConcurrent     int           `json:"max_concurrent" yaml:"max_concurrent"`
	MaxCycleDuration  time.Duration `json:"max_cycle_duration" yaml:"max_cycle_duration"`
	DailyTaskBudget   int           `json:"daily_task_budget" yaml:"daily_task_budget"`
	AllowedEngines    []string      `json:"allowed_engines" yaml:"allowed_engines"`
	BlockedCategories []string      `json:"blocked_categories" yaml:"blocked_categories"`
}

// DefaultPolicy provides safe defaults.
var DefaultPolicy = Policy{
	MaxCycles:        50,
	MaxConcurrent:    4,
	MaxCycleDuration: 30 * time.Second,
	DailyTaskBudget:  1000,
	AllowedEngines:   []string{"*"},
}

// Violation represents a specific breach of policy.
type Violation struct {
	Rule    string
	Message string
	Fatal   bool
}

// Guard enforces the policy.
type Guard struct {
	policy Policy
}

func New(p Policy) *Guard {
	return &Guard{policy: p}
}

// Policy returns the guard's current policy configuration.
func (g *Guard) Policy() Policy {
	return g.policy
}

// CheckBudget verifies if the session usage is within limits.
func (g *Guard) CheckBudget(cycles, tasksToday int) *Violation {
	if g.policy.MaxCycles > 0 && cycles > g.policy.MaxCycles {
		return &Violation{Rule: "max_cycles", Message: "Cycle limit exceeded", Fatal: true}
	}
	if g.policy.DailyTaskBudget > 0 && tasksToday > g.policy.DailyTaskBudget {
		return &Violation{Rule: "daily_task_budget", Message: "Daily task budget exceeded", Fatal: true}
	}
	return nil
}

// CheckEngine verifies if an engine may be dispatched. The allowed list
// is matched with glob patterns, the blocked list by category.
func (g *Guard) CheckEngine(name, category string) *Violation {
	for _, blocked := range g.policy.BlockedCategories {
		if blocked == category {
			return &Violation{Rule: "blocked_categories", Message: "Engine category blocked: " + category, Fatal: false}
		}
	}

	allowed := false
	for _, pattern := range g.policy.AllowedEngines {
		match, err := doublestar.Match(pattern, name)
		if err == nil && match {
			allowed = true
			break
		}
	}
	if !allowed {
		return &Violation{Rule: "allowed_engines", Message: "Engine not allowed: " + name, Fatal: false}
	}
	return nil
}

// CheckCycleDuration flags a cycle that ran past its deadline.
func (g *Guard) CheckCycleDuration(elapsed time.Duration) *Violation {
	if g.policy.MaxCycleDuration > 0 && elapsed > g.policy.MaxCycleDuration {
		return &Violation{
			Rule:    "max_cycle_duration",
			Message: fmt.Sprintf("Cycle ran %s, limit is %s", elapsed, g.policy.MaxCycleDuration),
			Fatal:   false,
		}
	}
	return nil
}

// Concurrency returns the dispatch width the policy allows.
func (g *Guard) Concurrency() int {
	if g.policy.MaxConcurrent <= 0 {
		return DefaultPolicy.MaxConcurrent
	}
	return g.policy.MaxConcurrent
}
