package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/autoearnpro/autoearnpro/internal/learning"
	"github.com/autoearnpro/autoearnpro/internal/memory"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "autoearnpro.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_Sessions(t *testing.T) {
	s := newTestStore(t)

	session := &Session{
		ID:        "sess-1",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Status:    "initialized",
		Metadata:  map[string]string{"objective": "maximize earnings"},
	}

	t.Run("create and get", func(t *testing.T) {
		if err := s.CreateSession(session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		got, err := s.GetSession("sess-1")
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.Status != "initialized" {
			t.Errorf("expected status initialized, got %q", got.Status)
		}
		if got.Metadata["objective"] != "maximize earnings" {
			t.Errorf("metadata round-trip failed: %v", got.Metadata)
		}
	})

	t.Run("update", func(t *testing.T) {
		session.Status = "completed"
		if err := s.UpdateSession(session); err != nil {
			t.Fatalf("UpdateSession failed: %v", err)
		}
		got, err := s.GetSession("sess-1")
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.Status != "completed" {
			t.Errorf("expected status completed, got %q", got.Status)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		if _, err := s.GetSession("nope"); err == nil {
			t.Error("expected error for missing session")
		}
	})

	t.Run("list", func(t *testing.T) {
		sessions, err := s.ListSessions(10)
		if err != nil {
			t.Fatalf("ListSessions failed: %v", err)
		}
		if len(sessions) != 1 {
			t.Fatalf("expected 1 session, got %d", len(sessions))
		}
	})
}

func TestSQLiteStore_Reports(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateSession(&Session{ID: "sess-r", CreatedAt: time.Now(), UpdatedAt: time.Now(), Status: "running"}); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	records := []*ReportRecord{
		{ID: "rep-2", SessionID: "sess-r", Cycle: 2, Engine: "market_oracle", TaskID: "t2",
			StartedAt: time.Now(), Duration: 120 * time.Millisecond,
			Metrics: map[string]float64{"projected_earnings": 1500}, Notes: []string{"symbol=BTC"}, Success: true},
		{ID: "rep-1", SessionID: "sess-r", Cycle: 1, Engine: "captcha_breaker", TaskID: "t1",
			StartedAt: time.Now(), Duration: 80 * time.Millisecond,
			Metrics: map[string]float64{"captchas_solved": 42}, Success: false},
	}
	for _, r := range records {
		if err := s.SaveReport(r); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}
	}

	got, err := s.ListReports("sess-r")
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(got))
	}
	if got[0].Cycle != 1 {
		t.Errorf("expected cycle order, got cycle %d first", got[0].Cycle)
	}
	if got[1].Metrics["projected_earnings"] != 1500 {
		t.Errorf("metrics round-trip failed: %v", got[1].Metrics)
	}
	if got[1].Duration != 120*time.Millisecond {
		t.Errorf("duration round-trip failed: %v", got[1].Duration)
	}
	if !got[1].Success || got[0].Success {
		t.Error("success flags did not round-trip")
	}
}

func TestSQLiteStore_MemorySnapshots(t *testing.T) {
	s := newTestStore(t)

	first := []memory.Record{
		{ID: "m1", Content: "oracle spiked on BTC", Context: map[string]string{"engine": "market_oracle"},
			Timestamp: time.Now(), Importance: 0.9, Category: "observation", Tags: []string{"btc", "spike"}, AccessCount: 3},
		{ID: "m2", Content: "captcha accuracy dipped", Timestamp: time.Now(), Importance: 0.4, Category: "observation"},
	}
	if err := s.SaveMemories(first); err != nil {
		t.Fatalf("SaveMemories failed: %v", err)
	}

	got, err := s.LoadMemories()
	if err != nil {
		t.Fatalf("LoadMemories failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 memories, got %d", len(got))
	}

	// Save replaces the previous snapshot wholesale
	if err := s.SaveMemories([]memory.Record{first[0]}); err != nil {
		t.Fatalf("SaveMemories failed: %v", err)
	}
	got, err = s.LoadMemories()
	if err != nil {
		t.Fatalf("LoadMemories failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected snapshot replacement, got %d records", len(got))
	}
	if got[0].Context["engine"] != "market_oracle" {
		t.Errorf("context round-trip failed: %v", got[0].Context)
	}
	if len(got[0].Tags) != 2 {
		t.Errorf("tags round-trip failed: %v", got[0].Tags)
	}
}

func TestSQLiteStore_RuleSnapshots(t *testing.T) {
	s := newTestStore(t)

	rules := []learning.Rule{
		{ID: "r1", Condition: "engine=cosmic_intelligence", Action: "prefer_engine:cosmic_intelligence",
			Priority: 2.5, SuccessRate: 0.8, Applications: 12},
		{ID: "r2", Condition: "directive=earn", Action: "boost", Priority: 1, SuccessRate: 0.5},
	}
	if err := s.SaveRules(rules); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}

	got, err := s.LoadRules()
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(got))
	}

	if err := s.SaveRules(nil); err != nil {
		t.Fatalf("SaveRules with empty snapshot failed: %v", err)
	}
	got, err = s.LoadRules()
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty snapshot, got %d rules", len(got))
	}
}

func TestSQLiteStore_Config(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetConfig("default_cycles", "10"); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}
	if err := s.SetConfig("default_cycles", "25"); err != nil {
		t.Fatalf("SetConfig upsert failed: %v", err)
	}

	v, err := s.GetConfig("default_cycles")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if v != "25" {
		t.Errorf("expected upserted value 25, got %q", v)
	}

	v, err = s.GetConfig("missing")
	if err != nil {
		t.Fatalf("GetConfig for missing key failed: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty value for missing key, got %q", v)
	}
}
