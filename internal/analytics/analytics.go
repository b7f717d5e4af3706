// Package analytics aggregates engine reports into per-engine summaries
// for session output and the dashboard.
package analytics

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/autoearnpro/autoearnpro/internal/engine"
)

// Summary is the aggregate view of one engine's reports.
type Summary struct {
	Engine        string
	Cycles        int
	SuccessRate   float64
	TotalEarnings float64
	MeanEarnings  float64
	StdDev        float64
	MeanDuration  time.Duration
}

// MetricSeries extracts one metric across reports, skipping reports that
// do not carry it.
func MetricSeries(reports []*engine.Report, key string) []float64 {
	var series []float64
	for _, r := range reports {
		if r == nil || r.Metrics == nil {
			continue
		}
		if v, ok := r.Metrics[key]; ok {
			series = append(series, v)
		}
	}
	return series
}

// Summarize groups reports by engine and computes earnings statistics.
// Results are sorted by total earnings, highest first.
func Summarize(reports []*engine.Report) []Summary {
	grouped := make(map[string][]*engine.Report)
	for _, r := range reports {
		if r == nil {
			continue
		}
		grouped[r.Engine] = append(grouped[r.Engine], r)
	}

	summaries := make([]Summary, 0, len(grouped))
	for name, group := range grouped {
		earnings := MetricSeries(group, "projected_earnings")

		var successes int
		var totalDur time.Duration
		for _, r := range group {
			if r.Success {
				successes++
			}
			totalDur += r.Duration
		}

		s := Summary{
			Engine:      name,
			Cycles:      len(group),
			SuccessRate: float64(successes) / float64(len(group)),
		}
		if len(earnings) > 0 {
			s.TotalEarnings = floats.Sum(earnings)
			s.MeanEarnings = stat.Mean(earnings, nil)
			if len(earnings) > 1 {
				s.StdDev = stat.StdDev(earnings, nil)
			}
		}
		s.MeanDuration = totalDur / time.Duration(len(group))
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalEarnings != summaries[j].TotalEarnings {
			return summaries[i].TotalEarnings > summaries[j].TotalEarnings
		}
		return summaries[i].Engine < summaries[j].Engine
	})
	return summaries
}

// Total sums projected earnings across all reports.
func Total(reports []*engine.Report) float64 {
	return floats.Sum(MetricSeries(reports, "projected_earnings"))
}
