package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

func TestConversationLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	conv := &types.Conversation{ID: "c1", UserID: "u1", Title: "First chat", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateConversation(ctx, conv))

	got, err := s.GetConversation(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "First chat", got.Title)

	// Other users cannot see it.
	_, err = s.GetConversation(ctx, "u2", "c1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.UpdateConversationTitle(ctx, "u1", "c1", "Renamed"))
	got, err = s.GetConversation(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	msg := &types.Message{ID: "m1", ConversationID: "c1", UserID: "u1", Role: types.RoleUser, Content: "hi", CreatedAt: now}
	require.NoError(t, s.CreateMessage(ctx, msg))

	require.NoError(t, s.DeleteConversation(ctx, "u1", "c1"))
	_, err = s.ListMessages(ctx, "u1", "c1")
	assert.ErrorIs(t, err, storage.ErrNotFound, "messages should go with the conversation")
}

func TestMissingIdentityRejected(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.CreateJournalEntry(ctx, &types.JournalEntry{ID: "j1"})
	assert.ErrorIs(t, err, storage.ErrNoIdentity)

	_, err = s.ListDailySummaries(ctx, "", 10)
	assert.ErrorIs(t, err, storage.ErrNoIdentity)
}

func TestDailySummaryUpsertIsIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	sum := &types.DailySummary{
		ID:               "s1",
		UserID:           "u1",
		Date:             "2026-08-27",
		PrimaryMood:      types.MoodAnxious,
		AverageIntensity: 6,
		AnalysisCount:    2,
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, s.UpsertDailySummary(ctx, sum))

	sum.PrimaryMood = types.MoodPeaceful
	sum.AnalysisCount = 3
	require.NoError(t, s.UpsertDailySummary(ctx, sum))

	got, err := s.GetDailySummary(ctx, "u1", "2026-08-27")
	require.NoError(t, err)
	assert.Equal(t, types.MoodPeaceful, got.PrimaryMood)
	assert.Equal(t, 3, got.AnalysisCount)

	list, err := s.ListDailySummaries(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1, "upsert must not append duplicates")
}

func TestListJournalEntriesPagination(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		e := &types.JournalEntry{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			Content:   "entry",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.CreateJournalEntry(ctx, e))
	}

	page, err := s.ListJournalEntries(ctx, "u1", storage.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "e", page[0].ID, "newest first")

	page, err = s.ListJournalEntries(ctx, "u1", storage.ListOptions{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].ID)
}

func TestStoredValuesAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	e := &types.JournalEntry{ID: "j1", UserID: "u1", Title: "before", Content: "text", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, s.CreateJournalEntry(ctx, e))

	e.Title = "after"
	got, err := s.GetJournalEntry(ctx, "u1", "j1")
	require.NoError(t, err)
	assert.Equal(t, "before", got.Title, "mutating the caller's value must not touch the stored copy")

	got.Title = "mutated read"
	again, err := s.GetJournalEntry(ctx, "u1", "j1")
	require.NoError(t, err)
	assert.Equal(t, "before", again.Title)
}

func TestPlanRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	p := &types.WeeklyPlan{
		ID:     "p1",
		UserID: "u1",
		Title:  "Calm week",
		Exercises: []types.PlanExercise{
			{ID: "e1", PlanID: "p1", Title: "Morning breathing", Type: types.ExerciseBreathing, DurationMinutes: 10, Difficulty: types.DifficultyEasy},
			{ID: "e2", PlanID: "p1", Title: "Evening journal", Type: types.ExerciseJournaling, DurationMinutes: 15, Difficulty: types.DifficultyMedium, DayOfWeek: 3},
		},
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreatePlan(ctx, p))

	require.NoError(t, s.SetExerciseCompleted(ctx, "u1", "e2", true))
	err := s.SetExerciseCompleted(ctx, "u1", "nope", true)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := s.GetPlan(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Len(t, got.Exercises, 2)

	var completed int
	for _, ex := range got.Exercises {
		if ex.Completed {
			completed++
			assert.Equal(t, "e2", ex.ID)
		}
	}
	assert.Equal(t, 1, completed)
}

func TestCheckInDateRange(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	dates := []string{"2026-08-20", "2026-08-22", "2026-08-25"}
	for i, d := range dates {
		c := &types.DailyCheckIn{ID: d, UserID: "u1", Date: d, MoodRating: i + 3, CreatedAt: time.Now()}
		require.NoError(t, s.CreateCheckIn(ctx, c))
	}

	got, err := s.ListCheckIns(ctx, "u1", "2026-08-21", "2026-08-25")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-08-22", got[0].Date)
	assert.Equal(t, "2026-08-25", got[1].Date)

	all, err := s.ListCheckIns(ctx, "u1", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAnalysesGroupedByDay(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	day := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

	for i, mood := range []types.Mood{types.MoodSad, types.MoodAnxious} {
		a := &types.MoodAnalysis{
			ID:          string(rune('x' + i)),
			UserID:      "u1",
			Source:      types.SourceJournal,
			PrimaryMood: mood,
			Intensity:   5,
			Confidence:  0.8,
			CreatedAt:   day.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, s.CreateAnalysis(ctx, a))
	}
	other := &types.MoodAnalysis{
		ID: "z", UserID: "u1", Source: types.SourceChat,
		PrimaryMood: types.MoodHappy, Intensity: 7, Confidence: 0.9,
		CreatedAt: day.AddDate(0, 0, 1),
	}
	require.NoError(t, s.CreateAnalysis(ctx, other))

	got, err := s.ListAnalysesByDay(ctx, "u1", "2026-08-27")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.MoodSad, got[0].PrimaryMood, "creation order within the day")

	_, err = s.GetDailySummary(ctx, "u1", "2026-08-28")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
