package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Config{MaxRecords: 100, HotCacheSize: 16})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestRemember_FillsDefaults(t *testing.T) {
	e := newTestEngine(t)

	id := e.Remember(Record{Content: "first earnings report", Importance: 2.5})
	if id == "" {
		t.Fatal("expected generated ID")
	}

	rec, ok := e.Get(id)
	if !ok {
		t.Fatal("record not found")
	}
	if rec.Timestamp.IsZero() {
		t.Error("expected timestamp to be filled in")
	}
	if rec.Importance != 1 {
		t.Errorf("expected importance clamped to 1, got %f", rec.Importance)
	}
}

func TestGet_BumpsAccessCount(t *testing.T) {
	e := newTestEngine(t)
	id := e.Remember(Record{Content: "hot record"})

	for i := 0; i < 3; i++ {
		if _, ok := e.Get(id); !ok {
			t.Fatal("record not found")
		}
	}

	rec, _ := e.Get(id)
	if rec.AccessCount != 4 {
		t.Errorf("expected access count 4, got %d", rec.AccessCount)
	}

	if _, ok := e.Get("nope"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestSearch_Relevance(t *testing.T) {
	e := newTestEngine(t)
	e.Remember(Record{ID: "a", Content: "captcha batch solved on microhive", Category: "domination", Importance: 0.2})
	e.Remember(Record{ID: "b", Content: "captcha accuracy dropped", Category: "domination", Importance: 0.9})
	e.Remember(Record{ID: "c", Content: "universe creation stable", Category: "cosmic", Importance: 0.9})

	results := e.Search("captcha accuracy", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Record.ID != "b" {
		t.Errorf("expected full-overlap high-importance record first, got %q", results[0].Record.ID)
	}
	if results[0].Score <= results[1].Score {
		t.Error("expected descending score order")
	}

	// Tag and category terms also match
	e.Remember(Record{ID: "d", Content: "routine cycle", Tags: []string{"quantum"}})
	tagged := e.Search("quantum", 10)
	if len(tagged) != 1 || tagged[0].Record.ID != "d" {
		t.Errorf("expected tag match for 'd', got %v", tagged)
	}
}

func TestSearch_EmptyQueryAndLimit(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 5; i++ {
		e.Remember(Record{Content: fmt.Sprintf("earning record %d", i)})
	}

	if got := e.Search("", 10); got != nil {
		t.Errorf("expected nil for empty query, got %d results", len(got))
	}
	if got := e.Search("earning", 2); len(got) != 2 {
		t.Errorf("expected limit 2 respected, got %d", len(got))
	}
}

func TestSearch_DoesNotMutate(t *testing.T) {
	e := newTestEngine(t)
	id := e.Remember(Record{Content: "immutable search target"})

	e.Search("immutable", 5)
	e.Search("immutable", 5)

	rec, _ := e.Get(id)
	if rec.AccessCount != 1 {
		t.Errorf("search mutated access count: got %d", rec.AccessCount)
	}
}

func TestByCategoryAndTag(t *testing.T) {
	e := newTestEngine(t)
	now := time.Now()
	e.Remember(Record{ID: "old", Content: "x", Category: "cosmic", Tags: []string{"t1"}, Timestamp: now.Add(-time.Hour)})
	e.Remember(Record{ID: "new", Content: "y", Category: "cosmic", Tags: []string{"t1", "t2"}, Timestamp: now})

	cat := e.ByCategory("cosmic")
	if len(cat) != 2 {
		t.Fatalf("expected 2 records, got %d", len(cat))
	}
	if cat[0].ID != "new" {
		t.Errorf("expected newest first, got %q", cat[0].ID)
	}

	if got := e.ByTag("t2"); len(got) != 1 || got[0].ID != "new" {
		t.Errorf("expected single t2 record, got %v", got)
	}
	if got := e.ByTag("missing"); got != nil {
		t.Errorf("expected nil for unknown tag, got %v", got)
	}
}

func TestForget(t *testing.T) {
	e := newTestEngine(t)
	id := e.Remember(Record{Content: "to be removed", Category: "tmp", Tags: []string{"x"}})

	if !e.Forget(id) {
		t.Fatal("expected Forget to report existing record")
	}
	if e.Forget(id) {
		t.Error("expected second Forget to report miss")
	}
	if got := e.ByCategory("tmp"); got != nil {
		t.Error("category index not cleaned up")
	}
	if got := e.ByTag("x"); got != nil {
		t.Error("tag index not cleaned up")
	}
}

func TestPrune(t *testing.T) {
	e := newTestEngine(t)
	now := time.Now()
	e.Remember(Record{ID: "keep", Content: "a", Importance: 0.9, Timestamp: now})
	e.Remember(Record{ID: "drop1", Content: "b", Importance: 0.1, Timestamp: now.Add(-40 * 24 * time.Hour)})
	e.Remember(Record{ID: "drop2", Content: "c", Importance: 0.0, Timestamp: now.Add(-50 * 24 * time.Hour)})

	dropped := e.Prune(1)
	if dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", dropped)
	}
	if e.Len() != 1 {
		t.Fatalf("expected 1 record left, got %d", e.Len())
	}
	if _, ok := e.Get("keep"); !ok {
		t.Error("high-retention record was pruned")
	}

	if e.Prune(10) != 0 {
		t.Error("expected no-op prune when under limit")
	}
}

func TestRemember_CapacityPrunes(t *testing.T) {
	e, err := NewEngine(Config{MaxRecords: 3, HotCacheSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		e.Remember(Record{Content: fmt.Sprintf("record %d", i)})
	}
	if e.Len() != 3 {
		t.Errorf("expected capacity 3 enforced, got %d", e.Len())
	}
}

func TestSnapshotRestore(t *testing.T) {
	e := newTestEngine(t)
	e.Remember(Record{ID: "r1", Content: "alpha", Category: "c1", Tags: []string{"t"}})
	e.Remember(Record{ID: "r2", Content: "beta", Category: "c2"})

	snap := e.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected snapshot of 2, got %d", len(snap))
	}

	restored := newTestEngine(t)
	restored.Restore(snap)
	if restored.Len() != 2 {
		t.Fatalf("expected 2 restored, got %d", restored.Len())
	}
	if got := restored.ByCategory("c1"); len(got) != 1 || got[0].ID != "r1" {
		t.Error("indexes not rebuilt on restore")
	}

	// Snapshot copies are detached from the engine
	snap[0].Content = "mutated"
	if rec, _ := restored.Get(snap[0].ID); rec.Content == "mutated" {
		t.Error("restore shares memory with the snapshot slice")
	}
}

func TestStats(t *testing.T) {
	e := newTestEngine(t)
	e.Remember(Record{Content: "a", Category: "c1", Tags: []string{"t1", "t2"}})
	e.Remember(Record{Content: "b", Category: "c2", Tags: []string{"t1"}})

	stats := e.Stats()
	if stats.Records != 2 || stats.Categories != 2 || stats.Tags != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestConcurrentAccess(t *testing.T) {
	e := newTestEngine(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := e.Remember(Record{Content: fmt.Sprintf("concurrent record %d", n)})
			e.Get(id)
			e.Search("concurrent", 5)
		}(i)
	}
	wg.Wait()

	if e.Len() != 20 {
		t.Errorf("expected 20 records, got %d", e.Len())
	}
}
