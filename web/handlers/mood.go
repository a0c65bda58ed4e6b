package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/solacehq/solace/internal/engine"
	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// MoodHandlers serves the mood history routes: daily summaries and the
// rolling trend analysis derived from them.
type MoodHandlers struct {
	store  storage.Store
	engine *engine.Engine
}

// NewMoodHandlers creates the mood route handlers.
func NewMoodHandlers(store storage.Store, eng *engine.Engine) *MoodHandlers {
	return &MoodHandlers{store: store, engine: eng}
}

// ListSummaries handles GET /api/mood/summaries?limit=N.
func (h *MoodHandlers) ListSummaries(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 30)
	if limit < 1 || limit > 365 {
		limit = 30
	}
	summaries, err := h.store.ListDailySummaries(r.Context(), UserID(r), limit)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	if summaries == nil {
		summaries = []*types.DailySummary{}
	}
	respondJSON(w, http.StatusOK, summaries)
}

// Today handles GET /api/mood/today. When no rollup exists yet the
// response is 200 with a null summary rather than 404, so the client
// can render an empty state without special-casing.
func (h *MoodHandlers) Today(w http.ResponseWriter, r *http.Request) {
	date := time.Now().Format("2006-01-02")
	summary, err := h.store.GetDailySummary(r.Context(), UserID(r), date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondJSON(w, http.StatusOK, map[string]any{"date": date, "summary": nil})
			return
		}
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"date": date, "summary": summary})
}

// Trends handles GET /api/mood/trends?days=N.
func (h *MoodHandlers) Trends(w http.ResponseWriter, r *http.Request) {
	days := parseInt(r.URL.Query().Get("days"), 30)
	trends, err := h.engine.Trends(r.Context(), UserID(r), days)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trends)
}

// Recompute handles POST /api/mood/recompute?date=YYYY-MM-DD, forcing a
// rollup rebuild for one day. Intended for repairing a summary after a
// manual data fix.
func (h *MoodHandlers) Recompute(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
		return
	}

	summary, err := h.engine.RecomputeDaily(r.Context(), UserID(r), date)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
