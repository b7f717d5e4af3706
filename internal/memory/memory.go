// Package memory implements the in-process memory engine: a tagged,
// indexed store of text records with linear relevance scoring. Snapshots
// persist through the store layer; between flushes everything lives in maps
// behind a single RWMutex.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Record is a unit of memory.
type Record struct {
	ID          string
	Content     string
	Context     map[string]string
	Timestamp   time.Time
	Importance  float64
	Category    string
	Tags        []string
	AccessCount int
}

// SearchResult pairs a record copy with its relevance score.
type SearchResult struct {
	Record Record
	Score  float64
}

// Stats holds aggregate counts for the engine.
type Stats struct {
	Records    int
	Categories int
	Tags       int
}

// Config holds engine tuning knobs.
type Config struct {
	MaxRecords   int
	HotCacheSize int
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{MaxRecords: 10000, HotCacheSize: 256}
}

// Engine is the memory store. All access is guarded by one RWMutex; the
// hot cache tracks recently fetched records and feeds a small score boost
// during search.
type Engine struct {
	mu         sync.RWMutex
	records    map[string]*Record
	byCategory map[string]map[string]struct{}
	byTag      map[string]map[string]struct{}
	hot        *lru.Cache[string, int]
	cfg        Config
}

// NewEngine creates an empty memory engine.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = DefaultConfig().MaxRecords
	}
	if cfg.HotCacheSize <= 0 {
		cfg.HotCacheSize = DefaultConfig().HotCacheSize
	}

	hot, err := lru.New[string, int](cfg.HotCacheSize)
	if err != nil {
		return nil, err
	}

	return &Engine{
		records:    make(map[string]*Record),
		byCategory: make(map[string]map[string]struct{}),
		byTag:      make(map[string]map[string]struct{}),
		hot:        hot,
		cfg:        cfg,
	}, nil
}

// Remember stores a record and returns its ID. A missing ID or timestamp
// is filled in; importance is clamped to [0,1]. When the store is over
// capacity the lowest-retention records are pruned.
func (e *Engine) Remember(rec Record) string {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.Importance < 0 {
		rec.Importance = 0
	}
	if rec.Importance > 1 {
		rec.Importance = 1
	}

	e.mu.Lock()
	e.insertLocked(&rec)
	if len(e.records) > e.cfg.MaxRecords {
		e.pruneLocked(e.cfg.MaxRecords)
	}
	e.mu.Unlock()

	return rec.ID
}

func (e *Engine) insertLocked(rec *Record) {
	if old, ok := e.records[rec.ID]; ok {
		e.unindexLocked(old)
	}
	e.records[rec.ID] = rec
	if rec.Category != "" {
		if e.byCategory[rec.Category] == nil {
			e.byCategory[rec.Category] = make(map[string]struct{})
		}
		e.byCategory[rec.Category][rec.ID] = struct{}{}
	}
	for _, tag := range rec.Tags {
		if e.byTag[tag] == nil {
			e.byTag[tag] = make(map[string]struct{})
		}
		e.byTag[tag][rec.ID] = struct{}{}
	}
}

func (e *Engine) unindexLocked(rec *Record) {
	if set, ok := e.byCategory[rec.Category]; ok {
		delete(set, rec.ID)
		if len(set) == 0 {
			delete(e.byCategory, rec.Category)
		}
	}
	for _, tag := range rec.Tags {
		if set, ok := e.byTag[tag]; ok {
			delete(set, rec.ID)
			if len(set) == 0 {
				delete(e.byTag, tag)
			}
		}
	}
}

// Get fetches a record copy by ID and bumps its access count.
func (e *Engine) Get(id string) (Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.records[id]
	if !ok {
		return Record{}, false
	}
	rec.AccessCount++
	e.hot.Add(id, rec.AccessCount)
	return copyRecord(rec), true
}

// Forget removes a record. It reports whether the record existed.
func (e *Engine) Forget(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.records[id]
	if !ok {
		return false
	}
	e.unindexLocked(rec)
	delete(e.records, id)
	e.hot.Remove(id)
	return true
}

// Search scores every record against the query terms and returns the top
// matches. Scoring is linear: term overlap across content, category, and
// tags, weighted by importance, recency, and access frequency. Only the
// access count of fetched records is ever mutated, and Search mutates
// nothing at all.
func (e *Engine) Search(query string, limit int) []SearchResult {
	if limit <= 0 {
		limit = 10
	}
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	now := time.Now()
	var results []SearchResult
	for _, rec := range e.records {
		overlap := overlapScore(rec, terms)
		if overlap == 0 {
			continue
		}

		score := 2.0*overlap +
			0.5*rec.Importance +
			0.3*recencyScore(now, rec.Timestamp) +
			0.2*accessScore(rec.AccessCount)
		if _, hot := e.hot.Peek(rec.ID); hot {
			score += 0.1
		}

		results = append(results, SearchResult{Record: copyRecord(rec), Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Record.ID < results[j].Record.ID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// ByCategory returns copies of all records in a category, newest first.
func (e *Engine) ByCategory(category string) []Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.collectLocked(e.byCategory[category])
}

// ByTag returns copies of all records carrying a tag, newest first.
func (e *Engine) ByTag(tag string) []Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.collectLocked(e.byTag[tag])
}

func (e *Engine) collectLocked(ids map[string]struct{}) []Record {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Record, 0, len(ids))
	for id := range ids {
		if rec, ok := e.records[id]; ok {
			out = append(out, copyRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Prune drops the lowest-retention records until at most max remain.
// It returns the number of records dropped.
func (e *Engine) Prune(max int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pruneLocked(max)
}

func (e *Engine) pruneLocked(max int) int {
	if max < 0 {
		max = 0
	}
	excess := len(e.records) - max
	if excess <= 0 {
		return 0
	}

	type scored struct {
		id    string
		score float64
	}
	now := time.Now()
	all := make([]scored, 0, len(e.records))
	for id, rec := range e.records {
		all = append(all, scored{id: id, score: retentionScore(now, rec)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score < all[j].score
		}
		return all[i].id < all[j].id
	})

	for _, victim := range all[:excess] {
		rec := e.records[victim.id]
		e.unindexLocked(rec)
		delete(e.records, victim.id)
		e.hot.Remove(victim.id)
	}
	return excess
}

// Len returns the number of stored records.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Stats returns aggregate counts.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Records:    len(e.records),
		Categories: len(e.byCategory),
		Tags:       len(e.byTag),
	}
}

// Snapshot returns copies of every record, for persistence.
func (e *Engine) Snapshot() []Record {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Record, 0, len(e.records))
	for _, rec := range e.records {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Restore replaces the engine contents with a snapshot.
func (e *Engine) Restore(records []Record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.records = make(map[string]*Record, len(records))
	e.byCategory = make(map[string]map[string]struct{})
	e.byTag = make(map[string]map[string]struct{})
	e.hot.Purge()
	for i := range records {
		rec := copyRecord(&records[i])
		e.insertLocked(&rec)
	}
	if len(e.records) > e.cfg.MaxRecords {
		e.pruneLocked(e.cfg.MaxRecords)
	}
}

// tokenize lowercases and splits the text into unique alphanumeric terms,
// dropping single characters.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func overlapScore(rec *Record, terms []string) float64 {
	haystack := strings.ToLower(rec.Content + " " + rec.Category + " " + strings.Join(rec.Tags, " "))
	var hits int
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

func recencyScore(now, ts time.Time) float64 {
	age := now.Sub(ts)
	if age <= 0 {
		return 1
	}
	// Linear decay over 30 days
	const horizon = 30 * 24 * time.Hour
	if age >= horizon {
		return 0
	}
	return 1 - float64(age)/float64(horizon)
}

func accessScore(count int) float64 {
	if count >= 10 {
		return 1
	}
	return float64(count) / 10
}

func retentionScore(now time.Time, rec *Record) float64 {
	return rec.Importance + 0.5*recencyScore(now, rec.Timestamp) + 0.2*accessScore(rec.AccessCount)
}

func copyRecord(rec *Record) Record {
	out := *rec
	if rec.Context != nil {
		out.Context = make(map[string]string, len(rec.Context))
		for k, v := range rec.Context {
			out.Context[k] = v
		}
	}
	if rec.Tags != nil {
		out.Tags = append([]string(nil), rec.Tags...)
	}
	return out
}
