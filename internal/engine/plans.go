package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// planLookbackDays is how much mood history feeds plan generation.
const planLookbackDays = 14

// GeneratePlan builds a weekly wellness plan from the user's recent mood
// pattern and persists it. The gateway guarantees a usable plan even
// when the model is down, so the only failure modes are storage errors.
func (e *Engine) GeneratePlan(ctx context.Context, userID string) (*types.WeeklyPlan, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}

	pattern, err := e.moodPattern(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan := e.gateway.GeneratePlan(ctx, pattern)

	now := time.Now()
	plan.ID = uuid.NewString()
	plan.UserID = userID
	plan.WeekStart = weekStart(now)
	plan.CreatedAt = now
	for i := range plan.Exercises {
		plan.Exercises[i].ID = uuid.NewString()
		plan.Exercises[i].PlanID = plan.ID
		plan.Exercises[i].Completed = false
	}

	if err := e.store.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("persist plan: %w", err)
	}
	return plan, nil
}

// moodPattern condenses recent daily summaries into the pattern the
// plan prompt is built from. A user with no history gets a neutral
// pattern, which maps to the general-wellness template downstream.
func (e *Engine) moodPattern(ctx context.Context, userID string) (ai.MoodPattern, error) {
	trends, err := e.Trends(ctx, userID, planLookbackDays)
	if err != nil {
		return ai.MoodPattern{}, err
	}

	pattern := ai.MoodPattern{
		DominantMood:     trends.DominantMood,
		AverageIntensity: trends.AverageIntensity,
		Trend:            trends.Trend,
	}

	summaries, err := e.store.ListDailySummaries(ctx, userID, planLookbackDays)
	if err != nil {
		return ai.MoodPattern{}, fmt.Errorf("list daily summaries: %w", err)
	}
	seen := make(map[string]bool)
	for _, s := range summaries {
		for _, emotion := range s.KeyEmotions {
			if emotion == "" || seen[emotion] {
				continue
			}
			seen[emotion] = true
			pattern.KeyEmotions = append(pattern.KeyEmotions, emotion)
			if len(pattern.KeyEmotions) == types.MaxSummaryEmotions {
				return pattern, nil
			}
		}
	}
	return pattern, nil
}

// weekStart returns the Monday of the week containing t, as YYYY-MM-DD.
func weekStart(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}
