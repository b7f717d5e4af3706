// Package integration wires the engine fleet behind a single name-keyed
// dispatch surface.
package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/autoearnpro/autoearnpro/internal/engine"
)

// System holds the registered engines for one campaign.
type System struct {
	mu      sync.RWMutex
	engines map[string]engine.Engine
}

func NewSystem() *System {
	return &System{engines: make(map[string]engine.Engine)}
}

// Register adds an engine under its own name. Re-registering a name
// replaces the previous engine.
func (s *System) Register(e engine.Engine) error {
	if e == nil {
		return fmt.Errorf("integration: nil engine")
	}
	name := e.Name()
	if name == "" {
		return fmt.Errorf("integration: engine has empty name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines[name] = e
	return nil
}

// Get returns the engine registered under name.
func (s *System) Get(name string) (engine.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.engines[name]
	if !ok {
		return nil, fmt.Errorf("integration: unknown engine %q", name)
	}
	return e, nil
}

// List returns all registered engine names, sorted.
func (s *System) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs one cycle of the named engine. An unknown name is an
// error, never a panic.
func (s *System) Dispatch(ctx context.Context, name string, task engine.Task) (*engine.Report, error) {
	e, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.IssuedAt.IsZero() {
		task.IssuedAt = time.Now()
	}
	return e.Cycle(ctx, task)
}

// RunAll cycles every registered engine concurrently, at most limit at a
// time, and returns the reports in engine-name order. The first engine
// error cancels the rest.
func (s *System) RunAll(ctx context.Context, directive string, limit int) ([]*engine.Report, error) {
	names := s.List()
	if limit <= 0 {
		limit = len(names)
	}

	reports := make([]*engine.Report, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range names {
		g.Go(func() error {
			task := engine.Task{
				ID:        uuid.New().String(),
				Directive: directive,
				IssuedAt:  time.Now(),
			}
			report, err := s.Dispatch(ctx, name, task)
			if err != nil {
				return fmt.Errorf("engine %s: %w", name, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// DefaultFleet registers the full built-in engine roster.
func DefaultFleet(seed int64) *System {
	s := NewSystem()
	for _, e := range engine.Fleet(seed) {
		_ = s.Register(e)
	}
	return s
}
