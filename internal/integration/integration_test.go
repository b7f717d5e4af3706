package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoearnpro/autoearnpro/internal/engine"
)

type fakeEngine struct {
	name     string
	category string
	err      error
	cycles   int
}

func (f *fakeEngine) Name() string     { return f.name }
func (f *fakeEngine) Category() string { return f.category }

func (f *fakeEngine) Cycle(ctx context.Context, task engine.Task) (*engine.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.cycles++
	return &engine.Report{
		Engine:    f.name,
		TaskID:    task.ID,
		StartedAt: time.Now(),
		Duration:  time.Millisecond,
		Metrics:   map[string]float64{"projected_earnings": 100},
		Success:   true,
	}, nil
}

func TestSystem_Register(t *testing.T) {
	s := NewSystem()

	if err := s.Register(&fakeEngine{name: "alpha"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := s.Register(nil); err == nil {
		t.Error("expected error for nil engine")
	}
	if err := s.Register(&fakeEngine{name: ""}); err == nil {
		t.Error("expected error for empty name")
	}

	// Re-registering replaces
	replacement := &fakeEngine{name: "alpha"}
	if err := s.Register(replacement); err != nil {
		t.Fatalf("re-Register failed: %v", err)
	}
	got, err := s.Get("alpha")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != replacement {
		t.Error("expected replacement engine")
	}
}

func TestSystem_List(t *testing.T) {
	s := NewSystem()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_ = s.Register(&fakeEngine{name: name})
	}

	names := s.List()
	want := []string{"alpha", "bravo", "charlie"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("expected %q at %d, got %q", name, i, names[i])
		}
	}
}

func TestSystem_Dispatch(t *testing.T) {
	s := NewSystem()
	fe := &fakeEngine{name: "alpha"}
	_ = s.Register(fe)

	t.Run("known engine", func(t *testing.T) {
		report, err := s.Dispatch(context.Background(), "alpha", engine.Task{Directive: "earn"})
		if err != nil {
			t.Fatalf("Dispatch failed: %v", err)
		}
		if report.Engine != "alpha" {
			t.Errorf("expected alpha report, got %q", report.Engine)
		}
		if report.TaskID == "" {
			t.Error("expected Dispatch to fill task ID")
		}
	})

	t.Run("unknown engine", func(t *testing.T) {
		if _, err := s.Dispatch(context.Background(), "ghost", engine.Task{}); err == nil {
			t.Error("expected error for unknown engine")
		}
	})
}

func TestSystem_RunAll(t *testing.T) {
	s := NewSystem()
	engines := []*fakeEngine{
		{name: "alpha"}, {name: "bravo"}, {name: "charlie"},
	}
	for _, e := range engines {
		_ = s.Register(e)
	}

	reports, err := s.RunAll(context.Background(), "earn", 2)
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	// Reports come back in name order
	for i, want := range []string{"alpha", "bravo", "charlie"} {
		if reports[i].Engine != want {
			t.Errorf("expected %q at %d, got %q", want, i, reports[i].Engine)
		}
	}
}

func TestSystem_RunAllError(t *testing.T) {
	s := NewSystem()
	boom := errors.New("engine meltdown")
	_ = s.Register(&fakeEngine{name: "alpha"})
	_ = s.Register(&fakeEngine{name: "broken", err: boom})

	if _, err := s.RunAll(context.Background(), "earn", 0); !errors.Is(err, boom) {
		t.Errorf("expected wrapped engine error, got %v", err)
	}
}

func TestDefaultFleet(t *testing.T) {
	s := DefaultFleet(42)
	names := s.List()
	if len(names) != 8 {
		t.Fatalf("expected 8 engines, got %d", len(names))
	}

	report, err := s.Dispatch(context.Background(), "market_oracle", engine.Task{Directive: "earn"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(report.Metrics) == 0 {
		t.Error("expected metrics from built-in engine")
	}
}
