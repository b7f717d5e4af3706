package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/autoearnpro/autoearnpro/internal/mission"
	"github.com/autoearnpro/autoearnpro/internal/observe"
	"github.com/autoearnpro/autoearnpro/internal/store"
)

func TestRunner(t *testing.T) {
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "autoearnpro.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer s.Close()

	o := observe.New(io.Discard, false)
	spec := mission.Spec{
		Objective:   "quick smoke campaign",
		Cycles:      1,
		Engines:     []string{"captcha_breaker"},
		Constraints: []string{"single cycle"},
	}

	r := NewRunner(o, s, spec, 42, nil)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	sessions, err := s.ListSessions(5)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Status != "completed" {
		t.Errorf("Expected completed session, got %q", sessions[0].Status)
	}

	reports, err := s.ListReports(sessions[0].ID)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("Expected 1 report, got %d", len(reports))
	}
}

func TestRunner_InvalidMission(t *testing.T) {
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "autoearnpro.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer s.Close()

	o := observe.New(io.Discard, false)
	r := NewRunner(o, s, mission.Spec{}, 0, nil)
	if err := r.Run(context.Background()); err == nil {
		t.Error("Expected error for invalid mission")
	}
}

func TestCLI_Root(t *testing.T) {
	if len(RootCmd.Commands()) < 5 {
		t.Errorf("Expected at least 5 subcommands (run, engines, memory, sessions, config), got %d", len(RootCmd.Commands()))
	}
}

func TestCLI_Config(t *testing.T) {
	found := false
	for _, cmd := range RootCmd.Commands() {
		if cmd.Name() == "config" {
			found = true
			if len(cmd.Commands()) < 2 {
				t.Errorf("Expected set and get subcommands for config, got %d", len(cmd.Commands()))
			}
		}
	}
	if !found {
		t.Error("config command not found")
	}
}

func TestCLI_Engines(t *testing.T) {
	found := false
	for _, cmd := range RootCmd.Commands() {
		if cmd.Name() == "engines" {
			found = true
			if len(cmd.Commands()) < 2 {
				t.Errorf("Expected list and probe subcommands for engines, got %d", len(cmd.Commands()))
			}
		}
	}
	if !found {
		t.Error("engines command not found")
	}
}
