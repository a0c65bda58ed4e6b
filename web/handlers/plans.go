package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/solacehq/solace/internal/engine"
	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// PlanHandlers serves the weekly wellness plan routes.
type PlanHandlers struct {
	store   storage.Store
	engine  *engine.Engine
	enabled bool
}

// NewPlanHandlers creates the plan route handlers. When enabled is
// false, generation is rejected but stored plans stay readable.
func NewPlanHandlers(store storage.Store, eng *engine.Engine, enabled bool) *PlanHandlers {
	return &PlanHandlers{store: store, engine: eng, enabled: enabled}
}

// Generate handles POST /api/plans. The plan content comes from the
// user's recent mood pattern; with the model unavailable a curated
// template plan is stored instead, so the call still succeeds.
func (h *PlanHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		respondError(w, http.StatusServiceUnavailable, "plan generation is disabled", nil)
		return
	}
	plan, err := h.engine.GeneratePlan(r.Context(), UserID(r))
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, plan)
}

// List handles GET /api/plans.
func (h *PlanHandlers) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.store.ListPlans(r.Context(), UserID(r), listOptions(r))
	if err != nil {
		respondStorageError(w, err)
		return
	}
	if plans == nil {
		plans = []*types.WeeklyPlan{}
	}
	respondJSON(w, http.StatusOK, plans)
}

// Get handles GET /api/plans/{id}.
func (h *PlanHandlers) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.store.GetPlan(r.Context(), UserID(r), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// SetExerciseCompleted handles PATCH /api/plans/exercises/{id}.
func (h *PlanHandlers) SetExerciseCompleted(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}
	if err := h.store.SetExerciseCompleted(r.Context(), UserID(r), r.PathValue("id"), req.Completed); err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"exercise_id": r.PathValue("id"),
		"completed":   req.Completed,
	})
}
