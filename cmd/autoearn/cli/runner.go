package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autoearnpro/autoearnpro/internal/analytics"
	"github.com/autoearnpro/autoearnpro/internal/engine"
	"github.com/autoearnpro/autoearnpro/internal/guard"
	"github.com/autoearnpro/autoearnpro/internal/integration"
	"github.com/autoearnpro/autoearnpro/internal/learning"
	"github.com/autoearnpro/autoearnpro/internal/memory"
	"github.com/autoearnpro/autoearnpro/internal/mission"
	"github.com/autoearnpro/autoearnpro/internal/observe"
	"github.com/autoearnpro/autoearnpro/internal/runtime"
	"github.com/autoearnpro/autoearnpro/internal/store"
	"github.com/autoearnpro/autoearnpro/internal/ui"
)

type Runner struct {
	Observer *observe.Observer
	Store    store.Storage
	Mission  mission.Spec
	Seed     int64
	UI       ui.UI
}

func NewRunner(obs *observe.Observer, s store.Storage, spec mission.Spec, seed int64, u ui.UI) *Runner {
	if u == nil {
		u = ui.SilentUI{}
	}
	return &Runner{
		Observer: obs,
		Store:    s,
		Mission:  spec,
		Seed:     seed,
		UI:       u,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	r.UI.UpdateStatus("Starting AutoEarnPro...")
	r.Observer.Log().Info().Msg("AutoEarnPro: Autonomous Earning Campaign Runtime (Initialized)")

	// Validate mission
	validation := mission.New().Validate(r.Mission)
	for _, w := range validation.Warnings {
		r.Observer.Log().Warn().Str("warning", w).Msg("mission lint")
	}
	if !validation.Valid {
		r.Observer.Log().Error().Str("errors", strings.Join(validation.Errors, ", ")).Msg("Invalid mission")
		return fmt.Errorf("invalid mission")
	}

	g := guard.New(guard.DefaultPolicy)
	sys := integration.DefaultFleet(r.Seed)

	mem, err := memory.NewEngine(memory.Config{})
	if err != nil {
		r.Observer.Log().Error().Err(err).Msg("Failed to init memory")
		return err
	}
	learner := learning.NewLearner(learning.Config{})

	// Restore state from previous campaigns
	if records, err := r.Store.LoadMemories(); err == nil && len(records) > 0 {
		mem.Restore(records)
		r.Observer.Log().Info().Int("count", len(records)).Msg("restored memories")
	}
	if rules, err := r.Store.LoadRules(); err == nil && len(rules) > 0 {
		learner.Restore(rules)
		r.Observer.Log().Info().Int("count", len(rules)).Msg("restored rules")
	}

	rt := runtime.New(r.Store, g, r.Observer, sys, mem, learner)
	rt.SetUI(r.UI)

	// Create session
	sessID := fmt.Sprintf("session-%d", time.Now().Unix())
	session := &store.Session{
		ID:        sessID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Status:    "initialized",
		Metadata:  map[string]string{"objective": r.Mission.Objective},
	}
	if err := r.Store.CreateSession(session); err != nil {
		r.Observer.Log().Error().Err(err).Msg("Failed to create session")
		return err
	}

	r.UI.UpdateStatus("Executing Campaign...")
	if err := rt.ExecuteCampaign(ctx, sessID, r.Mission); err != nil {
		r.UI.UpdateStatus("Campaign Failed")
		r.Observer.Log().Error().Err(err).Msg("Campaign failed")
		return err
	}

	r.UI.UpdateStatus("Completed")
	r.summarize(sessID)
	return nil
}

// summarize prints per-engine totals for the finished session.
func (r *Runner) summarize(sessID string) {
	records, err := r.Store.ListReports(sessID)
	if err != nil {
		r.Observer.Log().Warn().Err(err).Msg("failed to load reports for summary")
		return
	}

	reports := make([]*engine.Report, 0, len(records))
	for _, rec := range records {
		reports = append(reports, &engine.Report{
			Engine:    rec.Engine,
			TaskID:    rec.TaskID,
			StartedAt: rec.StartedAt,
			Duration:  rec.Duration,
			Metrics:   rec.Metrics,
			Notes:     rec.Notes,
			Success:   rec.Success,
		})
	}

	for _, s := range analytics.Summarize(reports) {
		r.Observer.Log().Info().
			Str("engine", s.Engine).
			Int("cycles", s.Cycles).
			Float64("total", s.TotalEarnings).
			Float64("success_rate", s.SuccessRate).
			Msg("engine summary")
	}
	fmt.Printf("Campaign complete: %d reports, $%.2f projected.\n", len(records), analytics.Total(reports))
}
