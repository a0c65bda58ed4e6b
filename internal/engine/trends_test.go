package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/solacehq/solace/pkg/types"
)

func summaryOn(date string, mood types.Mood, intensity float64) *types.DailySummary {
	return &types.DailySummary{
		UserID:           "u1",
		Date:             date,
		PrimaryMood:      mood,
		AverageIntensity: intensity,
		AnalysisCount:    1,
		UpdatedAt:        time.Now(),
	}
}

func augustDay(day int) string {
	return fmt.Sprintf("2026-08-%02d", day)
}

func TestComputeTrendsEmpty(t *testing.T) {
	trends := computeTrends(30, nil)

	assert.Equal(t, 30, trends.Days)
	assert.Equal(t, 0, trends.SummaryCount)
	assert.Equal(t, types.MoodNeutral, trends.DominantMood)
	assert.Equal(t, types.TrendStable, trends.Trend)
	assert.Empty(t, trends.Distribution)
}

func TestComputeTrendsDistribution(t *testing.T) {
	summaries := []*types.DailySummary{
		summaryOn(augustDay(1), types.MoodAnxious, 6),
		summaryOn(augustDay(2), types.MoodAnxious, 6),
		summaryOn(augustDay(3), types.MoodHappy, 7),
		summaryOn(augustDay(4), types.MoodNeutral, 5),
	}

	trends := computeTrends(30, summaries)

	assert.Equal(t, 4, trends.SummaryCount)
	assert.Equal(t, types.MoodAnxious, trends.DominantMood)
	assert.Equal(t, 6.0, trends.AverageIntensity)
	assert.Equal(t, 50.0, trends.Distribution[types.MoodAnxious])
	assert.Equal(t, 25.0, trends.Distribution[types.MoodHappy])
}

func TestComputeTrendsImproving(t *testing.T) {
	var summaries []*types.DailySummary
	for day := 1; day <= 7; day++ {
		summaries = append(summaries, summaryOn(augustDay(day), types.MoodSad, 4))
	}
	for day := 8; day <= 14; day++ {
		summaries = append(summaries, summaryOn(augustDay(day), types.MoodHappy, 6))
	}

	trends := computeTrends(14, summaries)
	assert.Equal(t, types.TrendImproving, trends.Trend)
}

func TestComputeTrendsDeclining(t *testing.T) {
	var summaries []*types.DailySummary
	for day := 1; day <= 7; day++ {
		summaries = append(summaries, summaryOn(augustDay(day), types.MoodHappy, 7))
	}
	for day := 8; day <= 14; day++ {
		summaries = append(summaries, summaryOn(augustDay(day), types.MoodSad, 5))
	}

	trends := computeTrends(14, summaries)
	assert.Equal(t, types.TrendDeclining, trends.Trend)
}

func TestComputeTrendsSmallSwingIsStable(t *testing.T) {
	var summaries []*types.DailySummary
	for day := 1; day <= 7; day++ {
		summaries = append(summaries, summaryOn(augustDay(day), types.MoodNeutral, 5))
	}
	for day := 8; day <= 14; day++ {
		summaries = append(summaries, summaryOn(augustDay(day), types.MoodNeutral, 5.4))
	}

	trends := computeTrends(14, summaries)
	assert.Equal(t, types.TrendStable, trends.Trend, "under half a point is noise")
}

func TestComputeTrendsAcceptsNewestFirstInput(t *testing.T) {
	// Stores return summaries newest first; the trend must not flip.
	var summaries []*types.DailySummary
	for day := 14; day >= 8; day-- {
		summaries = append(summaries, summaryOn(augustDay(day), types.MoodHappy, 7))
	}
	for day := 7; day >= 1; day-- {
		summaries = append(summaries, summaryOn(augustDay(day), types.MoodSad, 4))
	}

	trends := computeTrends(14, summaries)
	assert.Equal(t, types.TrendImproving, trends.Trend)
}

func TestWeekStartIsMonday(t *testing.T) {
	// 2026-08-27 is a Thursday.
	assert.Equal(t, "2026-08-24", weekStart(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)))
	// Monday maps to itself.
	assert.Equal(t, "2026-08-24", weekStart(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)))
	// Sunday belongs to the preceding Monday.
	assert.Equal(t, "2026-08-24", weekStart(time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)))
}
