package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/autoearnpro/autoearnpro/internal/engine"
	"github.com/autoearnpro/autoearnpro/internal/executor"
	"github.com/autoearnpro/autoearnpro/internal/guard"
	"github.com/autoearnpro/autoearnpro/internal/integration"
	"github.com/autoearnpro/autoearnpro/internal/learning"
	"github.com/autoearnpro/autoearnpro/internal/memory"
	"github.com/autoearnpro/autoearnpro/internal/mission"
	"github.com/autoearnpro/autoearnpro/internal/observe"
	"github.com/autoearnpro/autoearnpro/internal/store"
	"github.com/autoearnpro/autoearnpro/internal/ui"
)

// Runtime orchestrates the campaign execution loop.
type Runtime struct {
	store   store.Storage
	guard   *guard.Guard
	observe *observe.Observer
	system  *integration.System
	pool    *executor.Pool
	memory  *memory.Engine
	learner *learning.Learner
	state   *StateManager
	bus     *EventBus
	ui      ui.UI
}

func New(s store.Storage, g *guard.Guard, o *observe.Observer, sys *integration.System, mem *memory.Engine, l *learning.Learner) *Runtime {
	return &Runtime{
		store:   s,
		guard:   g,
		observe: o,
		system:  sys,
		pool:    executor.NewPool(g.Concurrency(), 0),
		memory:  mem,
		learner: l,
		state:   NewStateManager(s),
		bus:     NewEventBus(),
		ui:      ui.SilentUI{},
	}
}

func (r *Runtime) SetUI(u ui.UI) {
	if u != nil {
		r.ui = u
	}
}

// Bus exposes the event bus for subscribers such as the TUI.
func (r *Runtime) Bus() *EventBus {
	return r.bus
}

// Pool exposes the executor for stats reporting.
func (r *Runtime) Pool() *executor.Pool {
	return r.pool
}

// ExecuteCampaign runs the main cycle loop for a session.
func (r *Runtime) ExecuteCampaign(ctx context.Context, sessionID string, spec mission.Spec) error {
	ctx, span := r.observe.StartSpan(ctx, "ExecuteCampaign")
	defer span.End()
	defer r.pool.Drain()

	session, err := r.store.GetSession(sessionID)
	if err != nil {
		r.observe.Log().Error().Str("sessionID", sessionID).Err(err).Msg("failed to load session")
		return fmt.Errorf("failed to load session: %w", err)
	}

	r.observe.Log().Info().
		Str("sessionID", session.ID).
		Str("objective", spec.Objective).
		Int("cycles", spec.Cycles).
		Msg("starting campaign execution")

	r.state.InitSession(sessionID)
	r.state.SetStatus(sessionID, "running")
	r.ui.UpdateStatus("running")

	names := r.selectEngines(sessionID, spec)
	if len(names) == 0 {
		r.state.SetStatus(sessionID, "halted")
		_ = r.state.PersistSession(sessionID)
		return fmt.Errorf("no engines pass the mission and policy filters")
	}

	for cycle := 1; cycle <= spec.Cycles; cycle++ {
		r.state.IncrementCycle(sessionID)
		r.ui.UpdateCycle(cycle)
		r.bus.PublishWithData(EventCycleStart, sessionID, map[string]interface{}{"cycle": cycle})
		cycleLog := r.observe.Log().With().Int("cycle", cycle).Logger()

		// Guard check (pre-flight)
		tasksSoFar, _ := r.state.GetUsage(sessionID)
		if v := r.guard.CheckBudget(cycle, tasksSoFar); v != nil {
			cycleLog.Warn().Str("violation", v.Rule).Msg("guard violation, stopping")
			r.bus.PublishWithData(EventGuardViolation, sessionID, map[string]interface{}{"rule": v.Rule})
			r.state.SetStatus(sessionID, "halted")
			_ = r.state.PersistSession(sessionID)
			return fmt.Errorf("guard violation: %s", v.Message)
		}

		cycleStart := time.Now()
		reports, err := r.runCycle(ctx, sessionID, cycle, spec.Objective, names)
		if err != nil {
			cycleLog.Error().Err(err).Msg("cycle failed")
			r.bus.PublishSimple(EventSessionError, sessionID)
			r.state.SetStatus(sessionID, "halted")
			_ = r.state.PersistSession(sessionID)
			return err
		}

		if v := r.guard.CheckCycleDuration(time.Since(cycleStart)); v != nil {
			cycleLog.Warn().Str("violation", v.Rule).Msg(v.Message)
			r.bus.PublishWithData(EventGuardViolation, sessionID, map[string]interface{}{"rule": v.Rule})
		}

		cycleEarnings := r.absorb(sessionID, cycle, reports)
		r.state.AddUsage(sessionID, len(reports), cycleEarnings)
		_, total := r.state.GetUsage(sessionID)

		r.ui.UpdateEarnings(total)
		r.ui.Log(fmt.Sprintf("Cycle %d: %d engines, $%.2f projected (total $%.2f)", cycle, len(reports), cycleEarnings, total))
		r.bus.PublishWithData(EventEarningsUpdate, sessionID, map[string]interface{}{"total": total})
		r.bus.PublishWithData(EventCycleEnd, sessionID, map[string]interface{}{"cycle": cycle, "earnings": cycleEarnings})

		if err := r.state.PersistSession(sessionID); err != nil {
			return err
		}

		if spec.TargetEarnings > 0 && total >= spec.TargetEarnings {
			cycleLog.Info().Float64("total", total).Msg("earnings target reached")
			break
		}
	}

	if err := r.archive(sessionID); err != nil {
		r.observe.Log().Warn().Err(err).Msg("failed to archive session state")
	}

	r.state.SetStatus(sessionID, "completed")
	r.ui.UpdateStatus("completed")
	if err := r.state.PersistSession(sessionID); err != nil {
		return err
	}
	r.bus.PublishSimple(EventSessionComplete, sessionID)
	r.state.CleanupSession(sessionID)
	return nil
}

// selectEngines filters the registry through the mission globs and the
// guard policy.
func (r *Runtime) selectEngines(sessionID string, spec mission.Spec) []string {
	var names []string
	for _, name := range r.system.List() {
		if len(spec.Engines) > 0 && !matchAny(spec.Engines, name) {
			continue
		}

		e, err := r.system.Get(name)
		if err != nil {
			continue
		}
		if v := r.guard.CheckEngine(name, e.Category()); v != nil {
			r.observe.Log().Warn().Str("engine", name).Str("violation", v.Rule).Msg("engine excluded by policy")
			r.bus.PublishWithData(EventGuardViolation, sessionID, map[string]interface{}{"rule": v.Rule, "engine": name})
			continue
		}
		names = append(names, name)
	}
	return names
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// runCycle dispatches one task per engine through the worker pool and
// waits for all of them.
func (r *Runtime) runCycle(ctx context.Context, sessionID string, cycle int, directive string, names []string) ([]*engine.Report, error) {
	var mu sync.Mutex
	reports := make([]*engine.Report, 0, len(names))
	dones := make([]<-chan error, 0, len(names))

	for _, name := range names {
		r.bus.PublishWithData(EventEngineStart, sessionID, map[string]interface{}{"engine": name, "cycle": cycle})

		task := engine.Task{
			ID:        uuid.New().String(),
			Directive: directive,
			IssuedAt:  time.Now(),
		}
		done, err := r.pool.Submit(ctx, executor.Job{
			Name: name,
			Run: func(jobCtx context.Context) error {
				report, err := r.system.Dispatch(jobCtx, name, task)
				if err != nil {
					return err
				}
				mu.Lock()
				reports = append(reports, report)
				mu.Unlock()
				return nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("submit %s: %w", name, err)
		}
		dones = append(dones, done)
	}

	for i, done := range dones {
		if err := <-done; err != nil {
			return nil, fmt.Errorf("engine %s: %w", names[i], err)
		}
		r.bus.PublishWithData(EventEngineEnd, sessionID, map[string]interface{}{"engine": names[i], "cycle": cycle})
	}
	return reports, nil
}

// absorb persists reports and feeds them to the memory and learning
// layers. Returns the cycle's projected earnings.
func (r *Runtime) absorb(sessionID string, cycle int, reports []*engine.Report) float64 {
	var earnings float64
	for _, report := range reports {
		earnings += report.Projected()

		record := &store.ReportRecord{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Cycle:     cycle,
			Engine:    report.Engine,
			TaskID:    report.TaskID,
			StartedAt: report.StartedAt,
			Duration:  report.Duration,
			Metrics:   report.Metrics,
			Notes:     report.Notes,
			Success:   report.Success,
		}
		if err := r.store.SaveReport(record); err != nil {
			r.observe.Log().Warn().Str("engine", report.Engine).Err(err).Msg("failed to persist report")
		}

		_ = r.memory.Remember(memory.Record{
			Content: fmt.Sprintf("%s projected %.2f on cycle %d", report.Engine, report.Projected(), cycle),
			Context: map[string]string{
				"session": sessionID,
				"engine":  report.Engine,
			},
			Importance: importanceFor(report),
			Category:   "cycle_report",
			Tags:       []string{report.Engine},
		})

		rule := r.learner.Adapt(report)
		r.bus.PublishWithData(EventRuleAdapted, sessionID, map[string]interface{}{"rule": rule.ID, "engine": report.Engine})
	}
	return earnings
}

// importanceFor scales report earnings into the memory importance range.
func importanceFor(report *engine.Report) float64 {
	imp := report.Projected() / 10000
	if !report.Success {
		imp /= 2
	}
	if imp < 0.1 {
		imp = 0.1
	}
	if imp > 1 {
		imp = 1
	}
	return imp
}

// archive snapshots memory and learned rules into the store.
func (r *Runtime) archive(sessionID string) error {
	if err := r.store.SaveMemories(r.memory.Snapshot()); err != nil {
		return fmt.Errorf("memories: %w", err)
	}
	if err := r.store.SaveRules(r.learner.Rules()); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	r.bus.PublishSimple(EventMemoryArchived, sessionID)
	return nil
}
