package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// Trends aggregates the user's daily summaries over the last `days`
// calendar days into a read-only trend view. Days without a summary row
// simply do not contribute; the view is computed over what exists.
func (e *Engine) Trends(ctx context.Context, userID string, days int) (*types.MoodTrends, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}

	summaries, err := e.store.ListDailySummaries(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("list daily summaries: %w", err)
	}

	return computeTrends(days, summaries), nil
}

// computeTrends derives the trend view from summaries in any order.
func computeTrends(days int, summaries []*types.DailySummary) *types.MoodTrends {
	trends := &types.MoodTrends{
		Days:         days,
		SummaryCount: len(summaries),
		DominantMood: types.MoodNeutral,
		Distribution: make(map[types.Mood]float64),
		Trend:        types.TrendStable,
	}
	if len(summaries) == 0 {
		return trends
	}

	// Chronological order, oldest first. Dates are YYYY-MM-DD so string
	// order is date order.
	ordered := make([]*types.DailySummary, len(summaries))
	copy(ordered, summaries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	counts := make(map[types.Mood]int)
	lastSeen := make(map[types.Mood]int)
	var intensitySum float64
	for i, s := range ordered {
		intensitySum += s.AverageIntensity
		counts[s.PrimaryMood]++
		lastSeen[s.PrimaryMood] = i
	}
	n := float64(len(ordered))
	trends.AverageIntensity = round2(intensitySum / n)

	for mood, count := range counts {
		trends.Distribution[mood] = round2(float64(count) / n * 100)
		if current := trends.DominantMood; counts[mood] > counts[current] ||
			(counts[mood] == counts[current] && lastSeen[mood] > lastSeen[current]) {
			trends.DominantMood = mood
		}
	}

	trends.Trend = intensityTrend(ordered)
	return trends
}

// intensityTrend compares the first and last week-sized slices of the
// window. A swing under half a point in either direction reads as
// stable.
func intensityTrend(ordered []*types.DailySummary) types.TrendDirection {
	if len(ordered) < 2 {
		return types.TrendStable
	}

	slice := 7
	if slice > len(ordered)/2 {
		slice = len(ordered) / 2
		if slice == 0 {
			slice = 1
		}
	}

	avg := func(part []*types.DailySummary) float64 {
		var sum float64
		for _, s := range part {
			sum += s.AverageIntensity
		}
		return sum / float64(len(part))
	}

	delta := avg(ordered[len(ordered)-slice:]) - avg(ordered[:slice])
	switch {
	case delta >= 0.5:
		return types.TrendImproving
	case delta <= -0.5:
		return types.TrendDeclining
	default:
		return types.TrendStable
	}
}
