package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/pkg/types"
	"github.com/solacehq/solace/web/handlers"
)

func TestJournalCreateClassifiesEntry(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewJournalHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Create, http.MethodPost, "/api/journal", map[string]string{
		"title":   "Evening walk",
		"content": "Walked by the river and felt settled for the first time this week.",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody[struct {
		Entry    *types.JournalEntry `json:"entry"`
		Analysis *types.MoodAnalysis `json:"analysis"`
	}](t, w)
	require.NotNil(t, body.Entry)
	require.NotNil(t, body.Analysis)
	assert.Equal(t, types.MoodPeaceful, body.Analysis.PrimaryMood)
	assert.Equal(t, types.SourceJournal, body.Analysis.Source)
	assert.Equal(t, body.Entry.ID, body.Analysis.SourceID)

	// The daily rollup exists immediately after the synchronous path.
	summary, err := fx.store.GetDailySummary(context.Background(), testUser, body.Analysis.Day())
	require.NoError(t, err)
	assert.Equal(t, types.MoodPeaceful, summary.PrimaryMood)
	assert.Equal(t, 1, summary.AnalysisCount)
}

func TestJournalCreateDegradedGatewayStillSaves(t *testing.T) {
	fx := newFixture(t)
	fx.gateway.unavailable = true
	h := handlers.NewJournalHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Create, http.MethodPost, "/api/journal", map[string]string{
		"content": "Some text nobody can classify right now.",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody[struct {
		Analysis *types.MoodAnalysis `json:"analysis"`
	}](t, w)
	require.NotNil(t, body.Analysis)
	assert.Equal(t, types.MoodNeutral, body.Analysis.PrimaryMood)
	assert.InDelta(t, 0.3, body.Analysis.Confidence, 0.001)
}

func TestJournalCreateRequiresContent(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewJournalHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Create, http.MethodPost, "/api/journal", map[string]string{
		"title": "no body",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJournalGetUnknownEntry(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewJournalHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Get, http.MethodGet, "/api/journal/missing", nil, map[string]string{"id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJournalUpdateAndDelete(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewJournalHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Create, http.MethodPost, "/api/journal", map[string]string{
		"content": "Original text.",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[struct {
		Entry *types.JournalEntry `json:"entry"`
	}](t, w)
	id := created.Entry.ID

	w = doJSON(t, h.Update, http.MethodPatch, "/api/journal/"+id, map[string]string{
		"title":    "Renamed",
		"mood_tag": "happy",
	}, map[string]string{"id": id})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[types.JournalEntry](t, w)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, types.MoodHappy, updated.MoodTag)
	assert.Equal(t, "Original text.", updated.Content)

	w = doJSON(t, h.Delete, http.MethodDelete, "/api/journal/"+id, nil, map[string]string{"id": id})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, h.Get, http.MethodGet, "/api/journal/"+id, nil, map[string]string{"id": id})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJournalRelatedWithoutVectorSearch(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewJournalHandlers(fx.store, fx.engine)

	w := doJSON(t, h.Related, http.MethodGet, "/api/journal/any/related", nil, map[string]string{"id": "any"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestJournalListPagination(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewJournalHandlers(fx.store, fx.engine)

	for i := 0; i < 3; i++ {
		w := doJSON(t, h.Create, http.MethodPost, "/api/journal", map[string]string{
			"content": "Entry body text.",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, h.List, http.MethodGet, "/api/journal?limit=2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeBody[[]*types.JournalEntry](t, w)
	assert.Len(t, entries, 2)
}
