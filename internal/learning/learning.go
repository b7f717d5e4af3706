// Package learning implements the adaptive rule system: condition/action
// pairs selected by linear scoring and reinforced from cycle outcomes.
// There is no conflict resolution or chaining; rules are independent.
package learning

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/autoearnpro/autoearnpro/internal/engine"
)

// Rule is a single learned condition/action pair.
type Rule struct {
	ID           string
	Condition    string
	Action       string
	Priority     float64
	SuccessRate  float64
	Applications int
}

// Match pairs a rule copy with its score against a signal.
type Match struct {
	Rule  Rule
	Score float64
}

// Config holds learner tuning knobs.
type Config struct {
	MaxRules int
	// Alpha is the smoothing factor for the success-rate moving average.
	Alpha float64
}

// DefaultConfig returns the defaults used by the runtime.
func DefaultConfig() Config {
	return Config{MaxRules: 500, Alpha: 0.2}
}

// Learner holds the rule set behind a single in-process lock.
type Learner struct {
	mu    sync.RWMutex
	rules map[string]*Rule
	cfg   Config
}

// NewLearner creates an empty learner.
func NewLearner(cfg Config) *Learner {
	if cfg.MaxRules <= 0 {
		cfg.MaxRules = DefaultConfig().MaxRules
	}
	if cfg.Alpha <= 0 || cfg.Alpha > 1 {
		cfg.Alpha = DefaultConfig().Alpha
	}
	return &Learner{rules: make(map[string]*Rule), cfg: cfg}
}

// AddRule stores a rule and returns its ID. Missing IDs are generated;
// success rate is clamped to [0,1]. Over capacity, the lowest-priority
// rules are truncated.
func (l *Learner) AddRule(rule Rule) string {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.SuccessRate < 0 {
		rule.SuccessRate = 0
	}
	if rule.SuccessRate > 1 {
		rule.SuccessRate = 1
	}

	l.mu.Lock()
	l.rules[rule.ID] = &rule
	l.truncateLocked()
	l.mu.Unlock()
	return rule.ID
}

// Match scores every rule against the signal and returns the best matches
// in descending score order. Scoring is linear: the fraction of condition
// terms present in the signal, weighted by priority and success rate.
func (l *Learner) Match(signal map[string]string, limit int) []Match {
	if limit <= 0 {
		limit = 5
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var matches []Match
	for _, rule := range l.rules {
		overlap := conditionOverlap(rule.Condition, signal)
		if overlap == 0 {
			continue
		}
		score := overlap * rule.Priority * (0.5 + 0.5*rule.SuccessRate)
		matches = append(matches, Match{Rule: *rule, Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Rule.ID < matches[j].Rule.ID
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// RecordOutcome reinforces or weakens a rule with an exponential moving
// average over observed outcomes.
func (l *Learner) RecordOutcome(ruleID string, ok bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rule, exists := l.rules[ruleID]
	if !exists {
		return fmt.Errorf("learning: unknown rule %q", ruleID)
	}

	outcome := 0.0
	if ok {
		outcome = 1.0
	}
	rule.SuccessRate = (1-l.cfg.Alpha)*rule.SuccessRate + l.cfg.Alpha*outcome
	rule.Applications++
	return nil
}

// Adapt derives a preference rule from an engine report. A report for an
// engine that already has a derived rule reinforces it instead of adding
// a duplicate. The created or updated rule is returned.
func (l *Learner) Adapt(report *engine.Report) Rule {
	condition := "engine=" + report.Engine
	action := "prefer_engine:" + report.Engine

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rule := range l.rules {
		if rule.Condition == condition && rule.Action == action {
			outcome := 0.0
			if report.Success {
				outcome = 1.0
			}
			rule.SuccessRate = (1-l.cfg.Alpha)*rule.SuccessRate + l.cfg.Alpha*outcome
			rule.Applications++
			return *rule
		}
	}

	rule := &Rule{
		ID:        uuid.NewString(),
		Condition: condition,
		Action:    action,
		Priority:  priorityFor(report),
	}
	if report.Success {
		rule.SuccessRate = 1
	}
	l.rules[rule.ID] = rule
	l.truncateLocked()
	return *rule
}

// Rules returns copies of all rules, highest priority first.
func (l *Learner) Rules() []Rule {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Rule, 0, len(l.rules))
	for _, rule := range l.rules {
		out = append(out, *rule)
	}
	sortRules(out)
	return out
}

// Len returns the number of rules.
func (l *Learner) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rules)
}

// Restore replaces the rule set with a snapshot.
func (l *Learner) Restore(rules []Rule) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rules = make(map[string]*Rule, len(rules))
	for i := range rules {
		rule := rules[i]
		l.rules[rule.ID] = &rule
	}
	l.truncateLocked()
}

// truncateLocked drops the lowest-priority rules until the set fits.
// Ties break on ID so truncation is stable.
func (l *Learner) truncateLocked() {
	excess := len(l.rules) - l.cfg.MaxRules
	if excess <= 0 {
		return
	}

	all := make([]Rule, 0, len(l.rules))
	for _, rule := range l.rules {
		all = append(all, *rule)
	}
	sortRules(all)
	for _, victim := range all[len(all)-excess:] {
		delete(l.rules, victim.ID)
	}
}

func sortRules(rules []Rule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
}

// conditionOverlap returns the fraction of condition terms satisfied by
// the signal. Terms of the form key=value require that exact pair; bare
// terms match any signal value.
func conditionOverlap(condition string, signal map[string]string) float64 {
	terms := strings.Fields(strings.ToLower(condition))
	if len(terms) == 0 || len(signal) == 0 {
		return 0
	}

	var hits int
	for _, term := range terms {
		if key, value, ok := strings.Cut(term, "="); ok {
			if strings.ToLower(signal[key]) == value {
				hits++
			}
			continue
		}
		for _, v := range signal {
			if strings.Contains(strings.ToLower(v), term) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(terms))
}

func priorityFor(report *engine.Report) float64 {
	// Earnings-weighted priority, capped so one lucky cycle cannot pin a
	// rule to the top forever.
	p := report.Projected() / 1000
	if p > 5 {
		p = 5
	}
	if p < 0.1 {
		p = 0.1
	}
	return p
}
