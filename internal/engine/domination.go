package engine

import (
	"context"
	"time"
)

// PlatformDomination reports market share captured across gig platforms.
type PlatformDomination struct {
	rng       *Rand
	platforms []string
}

func NewPlatformDomination(rng *Rand) *PlatformDomination {
	return &PlatformDomination{
		rng:       rng,
		platforms: []string{"swiftgig", "taskstorm", "cloudwork", "microhive"},
	}
}

func (e *PlatformDomination) Name() string     { return "platform_domination" }
func (e *PlatformDomination) Category() string { return "domination" }

func (e *PlatformDomination) Cycle(ctx context.Context, task Task) (*Report, error) {
	start := time.Now()
	if err := e.rng.Jitter(ctx, 90*time.Millisecond, 450*time.Millisecond); err != nil {
		return nil, err
	}

	platform := e.rng.Choice(e.platforms)
	return &Report{
		Engine:    e.Name(),
		TaskID:    task.ID,
		StartedAt: start,
		Duration:  time.Since(start),
		Metrics: map[string]float64{
			"market_share":       e.rng.Uniform(0.10, 0.60),
			"accounts_active":    float64(5 + e.rng.Intn(45)),
			"success_rate":       e.rng.Uniform(0.70, 0.95),
			"projected_earnings": e.rng.Uniform(250, 4000),
		},
		Notes:   []string{"dominating " + platform},
		Success: true,
	}, nil
}

// MarketOracle reports price movement predictions. No market data is
// ingested; the forecasts are drawn from the same ranges as everything else.
type MarketOracle struct {
	rng     *Rand
	symbols []string
}

func NewMarketOracle(rng *Rand) *MarketOracle {
	return &MarketOracle{
		rng:     rng,
		symbols: []string{"BTC", "ETH", "SOL", "DOGE", "XAU"},
	}
}

func (e *MarketOracle) Name() string     { return "market_oracle" }
func (e *MarketOracle) Category() string { return "domination" }

func (e *MarketOracle) Cycle(ctx context.Context, task Task) (*Report, error) {
	start := time.Now()
	if err := e.rng.Jitter(ctx, 70*time.Millisecond, 380*time.Millisecond); err != nil {
		return nil, err
	}

	symbol := e.rng.Choice(e.symbols)
	direction := e.rng.Choice([]string{"up", "down", "sideways"})
	return &Report{
		Engine:    e.Name(),
		TaskID:    task.ID,
		StartedAt: start,
		Duration:  time.Since(start),
		Metrics: map[string]float64{
			"prediction_confidence": e.rng.Uniform(0.70, 0.95),
			"expected_move_pct":     e.rng.Uniform(-8, 12),
			"signals_analyzed":      float64(100 + e.rng.Intn(900)),
			"projected_earnings":    e.rng.Uniform(150, 2200),
		},
		Notes:   []string{symbol + " trending " + direction},
		Success: true,
	}, nil
}

// CaptchaBreaker reports solve throughput. There is no vision model behind
// it; solve counts and accuracy are simulated.
type CaptchaBreaker struct {
	rng *Rand
}

func NewCaptchaBreaker(rng *Rand) *CaptchaBreaker {
	return &CaptchaBreaker{rng: rng}
}

func (e *CaptchaBreaker) Name() string     { return "captcha_breaker" }
func (e *CaptchaBreaker) Category() string { return "domination" }

func (e *CaptchaBreaker) Cycle(ctx context.Context, task Task) (*Report, error) {
	start := time.Now()
	if err := e.rng.Jitter(ctx, 40*time.Millisecond, 250*time.Millisecond); err != nil {
		return nil, err
	}

	solved := float64(20 + e.rng.Intn(180))
	return &Report{
		Engine:    e.Name(),
		TaskID:    task.ID,
		StartedAt: start,
		Duration:  time.Since(start),
		Metrics: map[string]float64{
			"captchas_solved":    solved,
			"accuracy":           e.rng.Uniform(0.88, 0.99),
			"avg_solve_ms":       e.rng.Uniform(350, 1200),
			"projected_earnings": solved * e.rng.Uniform(0.5, 2.0),
		},
		Notes:   []string{e.rng.Choice([]string{"image grid batch", "text distortion batch", "audio challenge batch"})},
		Success: true,
	}, nil
}
