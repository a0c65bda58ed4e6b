package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/engine"
	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// JournalHandlers serves the journal CRUD routes. Entry creation runs a
// synchronous mood classification so the response can carry the result.
type JournalHandlers struct {
	store  storage.Store
	engine *engine.Engine
}

// NewJournalHandlers creates the journal route handlers.
func NewJournalHandlers(store storage.Store, eng *engine.Engine) *JournalHandlers {
	return &JournalHandlers{store: store, engine: eng}
}

type journalEntryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	MoodTag string `json:"mood_tag"`
}

type journalEntryResponse struct {
	Entry    *types.JournalEntry `json:"entry"`
	Analysis *types.MoodAnalysis `json:"analysis,omitempty"`
}

// Create handles POST /api/journal.
func (h *JournalHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r)

	var req journalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "content is required", nil)
		return
	}

	now := time.Now()
	entry := &types.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.MoodTag != "" {
		entry.MoodTag = types.ParseMood(req.MoodTag)
	}
	if err := h.store.CreateJournalEntry(r.Context(), entry); err != nil {
		respondStorageError(w, err)
		return
	}

	// Classification is best-effort: the entry is already saved, and the
	// gateway falls back internally, so only a storage failure can leave
	// the analysis out of the response.
	analysis, err := h.engine.Classify(r.Context(), userID, types.SourceJournal, entry.ID, entry.Content)
	if err != nil {
		log.Printf("journal entry %s: classification not persisted: %v", entry.ID, err)
	}

	respondJSON(w, http.StatusCreated, journalEntryResponse{Entry: entry, Analysis: analysis})
}

// List handles GET /api/journal.
func (h *JournalHandlers) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListJournalEntries(r.Context(), UserID(r), listOptions(r))
	if err != nil {
		respondStorageError(w, err)
		return
	}
	if entries == nil {
		entries = []*types.JournalEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Get handles GET /api/journal/{id}.
func (h *JournalHandlers) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.GetJournalEntry(r.Context(), UserID(r), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// Update handles PATCH /api/journal/{id}. The stored mood analyses are
// not re-run; edits only change the entry text.
func (h *JournalHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r)
	id := r.PathValue("id")

	entry, err := h.store.GetJournalEntry(r.Context(), userID, id)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	var req journalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}
	if req.Title != "" {
		entry.Title = req.Title
	}
	if strings.TrimSpace(req.Content) != "" {
		entry.Content = req.Content
	}
	if req.MoodTag != "" {
		entry.MoodTag = types.ParseMood(req.MoodTag)
	}
	entry.UpdatedAt = time.Now()

	if err := h.store.UpdateJournalEntry(r.Context(), entry); err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/journal/{id}.
func (h *JournalHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteJournalEntry(r.Context(), UserID(r), r.PathValue("id")); err != nil {
		respondStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Related handles GET /api/journal/{id}/related. Engines without vector
// search return an empty list.
func (h *JournalHandlers) Related(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 5)
	related, err := h.engine.RelatedEntries(r.Context(), UserID(r), r.PathValue("id"), limit)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, related)
}
