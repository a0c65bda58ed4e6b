package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/pkg/types"
	"github.com/solacehq/solace/web/handlers"
)

func seedAnalysis(t *testing.T, fx *fixture, mood types.Mood, intensity int, at time.Time) {
	t.Helper()
	err := fx.store.CreateAnalysis(context.Background(), &types.MoodAnalysis{
		ID:          uuid.NewString(),
		UserID:      testUser,
		Source:      types.SourceJournal,
		SourceID:    uuid.NewString(),
		PrimaryMood: mood,
		Intensity:   intensity,
		Confidence:  0.8,
		CreatedAt:   at,
	})
	require.NoError(t, err)
	_, err = fx.engine.RecomputeDaily(context.Background(), testUser, at.Format("2006-01-02"))
	require.NoError(t, err)
}

func TestMoodTodayEmptyState(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewMoodHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Today, http.MethodGet, "/api/mood/today", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[map[string]any](t, w)
	assert.Nil(t, body["summary"])
	assert.Equal(t, time.Now().Format("2006-01-02"), body["date"])
}

func TestMoodTodayAfterClassification(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewMoodHandlers(fx.store, fx.engine)
	seedAnalysis(t, fx, types.MoodHappy, 7, time.Now())

	w := doJSON(t, h.Today, http.MethodGet, "/api/mood/today", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[struct {
		Summary *types.DailySummary `json:"summary"`
	}](t, w)
	require.NotNil(t, body.Summary)
	assert.Equal(t, types.MoodHappy, body.Summary.PrimaryMood)
}

func TestMoodSummariesNewestFirst(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewMoodHandlers(fx.store, fx.engine)

	now := time.Now()
	seedAnalysis(t, fx, types.MoodSad, 6, now.AddDate(0, 0, -2))
	seedAnalysis(t, fx, types.MoodHappy, 7, now)

	w := doJSON(t, h.ListSummaries, http.MethodGet, "/api/mood/summaries?limit=10", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	summaries := decodeBody[[]*types.DailySummary](t, w)
	require.Len(t, summaries, 2)
	assert.Equal(t, now.Format("2006-01-02"), summaries[0].Date)
}

func TestMoodTrendsReflectSeededHistory(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewMoodHandlers(fx.store, fx.engine)

	now := time.Now()
	seedAnalysis(t, fx, types.MoodAnxious, 8, now.AddDate(0, 0, -1))
	seedAnalysis(t, fx, types.MoodAnxious, 7, now)

	w := doJSON(t, h.Trends, http.MethodGet, "/api/mood/trends?days=7", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	trends := decodeBody[types.MoodTrends](t, w)
	assert.Equal(t, 7, trends.Days)
	assert.Equal(t, 2, trends.SummaryCount)
	assert.Equal(t, types.MoodAnxious, trends.DominantMood)
}

func TestMoodRecomputeValidatesDate(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewMoodHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Recompute, http.MethodPost, "/api/mood/recompute?date=not-a-date", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoodRecomputeEmptyDayWritesPlaceholder(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewMoodHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Recompute, http.MethodPost, "/api/mood/recompute?date=2026-08-01", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeBody[types.DailySummary](t, w)
	assert.Equal(t, types.MoodNeutral, summary.PrimaryMood)
	assert.Equal(t, 0, summary.AnalysisCount)
}
