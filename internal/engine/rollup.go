package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// RecomputeDaily rebuilds the daily summary for (user, date) from all
// mood analyses recorded that day and upserts it. A day with no
// analyses still gets a placeholder row so downstream trend queries see
// a continuous series. The operation is idempotent: recomputing the
// same day always converges to the same row.
func (e *Engine) RecomputeDaily(ctx context.Context, userID, date string) (*types.DailySummary, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}

	analyses, err := e.store.ListAnalysesByDay(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list analyses for %s: %w", date, err)
	}

	summary := buildDailySummary(userID, date, analyses)
	if err := e.store.UpsertDailySummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("upsert daily summary for %s: %w", date, err)
	}

	e.mu.RLock()
	callback := e.onSummaryUpdated
	e.mu.RUnlock()
	if callback != nil {
		callback(userID, date)
	}

	return summary, nil
}

// buildDailySummary aggregates one day's analyses into a summary row.
func buildDailySummary(userID, date string, analyses []*types.MoodAnalysis) *types.DailySummary {
	now := time.Now()

	if len(analyses) == 0 {
		return &types.DailySummary{
			ID:                uuid.NewString(),
			UserID:            userID,
			Date:              date,
			PrimaryMood:       types.MoodNeutral,
			AverageIntensity:  5,
			OverallConfidence: 0.1,
			Reasoning:         "No mood data recorded for this day.",
			AnalysisCount:     0,
			UpdatedAt:         now,
		}
	}

	var intensitySum, confidenceSum float64
	for _, a := range analyses {
		intensitySum += float64(a.Intensity)
		confidenceSum += a.Confidence
	}
	n := float64(len(analyses))

	primary, secondary := dominantMoods(analyses)

	return &types.DailySummary{
		ID:                uuid.NewString(),
		UserID:            userID,
		Date:              date,
		PrimaryMood:       primary,
		SecondaryMood:     secondary,
		AverageIntensity:  round2(intensitySum / n),
		OverallConfidence: round2(confidenceSum / n),
		Reasoning:         summaryReasoning(primary, len(analyses)),
		KeyEmotions:       mergeEmotions(analyses),
		AnalysisCount:     len(analyses),
		UpdatedAt:         now,
	}
}

// dominantMoods returns the most and second-most frequent primary moods
// of the day. Frequency ties go to the mood seen in the most recent
// analysis, so the day's summary tracks where the user ended up rather
// than where they started.
func dominantMoods(analyses []*types.MoodAnalysis) (types.Mood, types.Mood) {
	counts := make(map[types.Mood]int)
	lastSeen := make(map[types.Mood]int)
	for i, a := range analyses {
		counts[a.PrimaryMood]++
		lastSeen[a.PrimaryMood] = i
	}

	better := func(m, than types.Mood) bool {
		if counts[m] != counts[than] {
			return counts[m] > counts[than]
		}
		return lastSeen[m] > lastSeen[than]
	}

	var primary, secondary types.Mood
	for mood := range counts {
		switch {
		case primary == "" || better(mood, primary):
			secondary = primary
			primary = mood
		case secondary == "" || better(mood, secondary):
			secondary = mood
		}
	}
	return primary, secondary
}

// mergeEmotions unions the key emotions of the day in first-seen order,
// capped at types.MaxSummaryEmotions.
func mergeEmotions(analyses []*types.MoodAnalysis) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range analyses {
		for _, emotion := range a.KeyEmotions {
			if emotion == "" || seen[emotion] {
				continue
			}
			seen[emotion] = true
			out = append(out, emotion)
			if len(out) == types.MaxSummaryEmotions {
				return out
			}
		}
	}
	return out
}

func summaryReasoning(primary types.Mood, count int) string {
	if count == 1 {
		return fmt.Sprintf("Based on 1 mood reading, the day's overall tone was %s.", primary)
	}
	return fmt.Sprintf("Based on %d mood readings, the day's overall tone was %s.", count, primary)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
