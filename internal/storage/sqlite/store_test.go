package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/internal/storage/sqlite"
	"github.com/solacehq/solace/pkg/types"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteJournalLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := &types.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    "user-1",
		Title:     "First",
		Content:   "Some body text.",
		MoodTag:   types.MoodHappy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.CreateJournalEntry(ctx, entry))

	got, err := store.GetJournalEntry(ctx, "user-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Title, got.Title)
	assert.Equal(t, types.MoodHappy, got.MoodTag)

	got.Content = "Edited body."
	require.NoError(t, store.UpdateJournalEntry(ctx, got))

	got, err = store.GetJournalEntry(ctx, "user-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited body.", got.Content)

	// Rows are invisible to other identities.
	_, err = store.GetJournalEntry(ctx, "user-2", entry.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.DeleteJournalEntry(ctx, "user-1", entry.ID))
	_, err = store.GetJournalEntry(ctx, "user-1", entry.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteDeleteConversationCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conversation := &types.Conversation{
		ID:        uuid.NewString(),
		UserID:    "user-1",
		Title:     "Thread",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.CreateConversation(ctx, conversation))
	require.NoError(t, store.CreateMessage(ctx, &types.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		UserID:         "user-1",
		Role:           types.RoleUser,
		Content:        "hello",
		CreatedAt:      time.Now(),
	}))

	require.NoError(t, store.DeleteConversation(ctx, "user-1", conversation.ID))

	messages, err := store.ListMessages(ctx, "user-1", conversation.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSQLiteDailySummaryUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	summary := &types.DailySummary{
		UserID:           "user-1",
		Date:             "2026-08-20",
		PrimaryMood:      types.MoodSad,
		AverageIntensity: 6.5,
		AnalysisCount:    2,
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, store.UpsertDailySummary(ctx, summary))

	summary.PrimaryMood = types.MoodPeaceful
	summary.AnalysisCount = 3
	require.NoError(t, store.UpsertDailySummary(ctx, summary))

	got, err := store.GetDailySummary(ctx, "user-1", "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, types.MoodPeaceful, got.PrimaryMood)
	assert.Equal(t, 3, got.AnalysisCount)

	// Still exactly one row for the day.
	summaries, err := store.ListDailySummaries(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestSQLiteCheckInDateRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2026-08-01", "2026-08-10", "2026-08-25"} {
		require.NoError(t, store.CreateCheckIn(ctx, &types.DailyCheckIn{
			ID:         uuid.NewString(),
			UserID:     "user-1",
			Date:       date,
			MoodRating: 5,
			CreatedAt:  time.Now(),
		}))
	}

	checkIns, err := store.ListCheckIns(ctx, "user-1", "2026-08-05", "2026-08-15")
	require.NoError(t, err)
	require.Len(t, checkIns, 1)
	assert.Equal(t, "2026-08-10", checkIns[0].Date)
}

func TestSQLitePlanRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	plan := &types.WeeklyPlan{
		ID:         uuid.NewString(),
		UserID:     "user-1",
		Title:      "Gentle week",
		TargetArea: "stress reduction",
		Insights:   []string{"mornings are hardest"},
		WeekStart:  "2026-08-24",
		CreatedAt:  time.Now(),
	}
	for i := 0; i < 3; i++ {
		plan.Exercises = append(plan.Exercises, types.PlanExercise{
			ID:              uuid.NewString(),
			PlanID:          plan.ID,
			Title:           "Breathing practice",
			Type:            types.ExerciseBreathing,
			DurationMinutes: 10,
			Difficulty:      types.DifficultyEasy,
		})
	}
	require.NoError(t, store.CreatePlan(ctx, plan))

	got, err := store.GetPlan(ctx, "user-1", plan.ID)
	require.NoError(t, err)
	assert.Len(t, got.Exercises, 3)
	assert.Equal(t, []string{"mornings are hardest"}, got.Insights)

	exerciseID := plan.Exercises[1].ID
	require.NoError(t, store.SetExerciseCompleted(ctx, "user-1", exerciseID, true))

	got, err = store.GetPlan(ctx, "user-1", plan.ID)
	require.NoError(t, err)
	completed := 0
	for _, ex := range got.Exercises {
		if ex.Completed {
			completed++
			assert.Equal(t, exerciseID, ex.ID)
		}
	}
	assert.Equal(t, 1, completed)

	// Completion updates for another identity's exercise fail.
	err = store.SetExerciseCompleted(ctx, "user-2", exerciseID, true)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteAnalysesByDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	for i, mood := range []types.Mood{types.MoodAnxious, types.MoodNeutral} {
		require.NoError(t, store.CreateAnalysis(ctx, &types.MoodAnalysis{
			ID:          uuid.NewString(),
			UserID:      "user-1",
			Source:      types.SourceJournal,
			SourceID:    uuid.NewString(),
			PrimaryMood: mood,
			Intensity:   5,
			Confidence:  0.7,
			CreatedAt:   day.Add(time.Duration(i) * time.Hour),
		}))
	}
	// A different day's analysis stays out of the slice.
	require.NoError(t, store.CreateAnalysis(ctx, &types.MoodAnalysis{
		ID:          uuid.NewString(),
		UserID:      "user-1",
		Source:      types.SourceChat,
		SourceID:    uuid.NewString(),
		PrimaryMood: types.MoodHappy,
		Intensity:   7,
		Confidence:  0.9,
		CreatedAt:   day.AddDate(0, 0, 1),
	}))

	analyses, err := store.ListAnalysesByDay(ctx, "user-1", "2026-08-20")
	require.NoError(t, err)
	assert.Len(t, analyses, 2)
}
