package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// CheckInHandlers serves the daily check-in routes. Check-ins are
// self-reported ratings and are never run through the classifier.
type CheckInHandlers struct {
	store storage.Store
}

// NewCheckInHandlers creates the check-in route handlers.
func NewCheckInHandlers(store storage.Store) *CheckInHandlers {
	return &CheckInHandlers{store: store}
}

type checkInRequest struct {
	MoodRating int    `json:"mood_rating"`
	Note       string `json:"note"`
	Date       string `json:"date"` // optional, defaults to today
}

// Create handles POST /api/checkins.
func (h *CheckInHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}
	if req.MoodRating < 1 || req.MoodRating > 10 {
		respondError(w, http.StatusBadRequest, "mood_rating must be between 1 and 10", nil)
		return
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
		return
	}

	checkIn := &types.DailyCheckIn{
		ID:         uuid.NewString(),
		UserID:     UserID(r),
		Date:       date,
		MoodRating: req.MoodRating,
		Note:       req.Note,
		CreatedAt:  time.Now(),
	}
	if err := h.store.CreateCheckIn(r.Context(), checkIn); err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, checkIn)
}

// List handles GET /api/checkins?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Defaults to the last 30 days.
func (h *CheckInHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := q.Get("from")
	to := q.Get("to")
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}
	if from == "" {
		from = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}

	checkIns, err := h.store.ListCheckIns(r.Context(), UserID(r), from, to)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	if checkIns == nil {
		checkIns = []*types.DailyCheckIn{}
	}
	respondJSON(w, http.StatusOK, checkIns)
}
